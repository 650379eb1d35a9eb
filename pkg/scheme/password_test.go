package scheme

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestSplitScheme tests stored-password tag extraction.
func TestSplitScheme(t *testing.T) {
	tests := []struct {
		name          string
		stored        string
		wantName      string
		wantRemainder string
		wantOK        bool
	}{
		{
			name:          "bracketed",
			stored:        "{SSHA}base64data",
			wantName:      "SSHA",
			wantRemainder: "base64data",
			wantOK:        true,
		},
		{
			name:          "bracketed with encoding suffix",
			stored:        "{SHA1.hex}deadbeef",
			wantName:      "SHA1.hex",
			wantRemainder: "deadbeef",
			wantOK:        true,
		},
		{
			name:          "bracketed empty remainder",
			stored:        "{PLAIN}",
			wantName:      "PLAIN",
			wantRemainder: "",
			wantOK:        true,
		},
		{
			name:          "legacy crypt with trailing segment",
			stored:        "$1$abcd1234$somehashvalue$ignored",
			wantName:      "MD5-CRYPT",
			wantRemainder: "$1$abcd1234$somehashvalue",
			wantOK:        true,
		},
		{
			name:          "legacy crypt with two trailing segments",
			stored:        "$1$salt$hash$extra$more",
			wantName:      "MD5-CRYPT",
			wantRemainder: "$1$salt$hash",
			wantOK:        true,
		},
		{
			name:   "legacy crypt without closing dollar",
			stored: "$1$abcd1234$somehashvalue",
			wantOK: false,
		},
		{
			name:   "legacy crypt without salt terminator",
			stored: "$1$abcd1234",
			wantOK: false,
		},
		{
			name:   "no tag",
			stored: "plainpassword",
			wantOK: false,
		},
		{
			name:   "unclosed bracket",
			stored: "{SSHA",
			wantOK: false,
		},
		{
			name:   "empty",
			stored: "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, remainder, ok := SplitScheme(tt.stored)
			if ok != tt.wantOK {
				t.Fatalf("SplitScheme(%q) ok = %v, want %v", tt.stored, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if name != tt.wantName {
				t.Errorf("SplitScheme(%q) name = %q, want %q", tt.stored, name, tt.wantName)
			}
			if remainder != tt.wantRemainder {
				t.Errorf("SplitScheme(%q) remainder = %q, want %q",
					tt.stored, remainder, tt.wantRemainder)
			}
		})
	}
}

// TestRoundTrip generates, encodes, decodes and verifies a password under
// every built-in scheme.
func TestRoundTrip(t *testing.T) {
	const (
		plaintext = "correct horse battery staple"
		user      = "joe@example.com"
	)

	reg := newTestRegistry(t)
	for name := range reg.List() {
		t.Run(name, func(t *testing.T) {
			encoded, err := reg.GenerateEncoded(plaintext, user, name)
			if err != nil {
				t.Fatalf("GenerateEncoded: %v", err)
			}

			raw, err := reg.Decode(encoded, name)
			if err != nil {
				t.Fatalf("Decode(%q): %v", encoded, err)
			}

			match, err := reg.Verify(plaintext, user, name, raw)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if !match {
				t.Errorf("Verify = false for its own generated password %q", encoded)
			}

			match, err = reg.Verify("wrong password", user, name, raw)
			if err != nil {
				t.Fatalf("Verify(wrong): %v", err)
			}
			if match {
				t.Error("Verify matched the wrong password")
			}
		})
	}
}

// TestRoundTripWithSuffix tests that an explicit encoding suffix applies to
// both generate and decode.
func TestRoundTripWithSuffix(t *testing.T) {
	const plaintext = "secret"

	reg := newTestRegistry(t)
	for _, tag := range []string{"SHA1.hex", "SHA1.b64", "PLAIN-MD5.base64"} {
		encoded, err := reg.GenerateEncoded(plaintext, "", tag)
		if err != nil {
			t.Fatalf("GenerateEncoded(%s): %v", tag, err)
		}
		if strings.HasSuffix(tag, ".hex") && len(encoded) != 40 {
			t.Errorf("%s: encoded length = %d, want 40", tag, len(encoded))
		}

		raw, err := reg.Decode(encoded, tag)
		if err != nil {
			t.Fatalf("Decode(%s): %v", tag, err)
		}
		match, err := reg.Verify(plaintext, "", tag, raw)
		if err != nil || !match {
			t.Errorf("Verify(%s) = (%v, %v), want match", tag, match, err)
		}
	}
}

// TestDecodeAutodetect tests hex/base64 detection for fixed-length schemes
// when the tag carries no encoding suffix.
func TestDecodeAutodetect(t *testing.T) {
	reg := newTestRegistry(t)

	// PLAIN-MD5 has a raw length of 16: a 32-character string decodes as hex.
	hexText := "00112233445566778899aabbccddeeff"
	raw, err := reg.Decode(hexText, "PLAIN-MD5")
	if err != nil {
		t.Fatalf("Decode(hex): %v", err)
	}
	if len(raw) != 16 || raw[0] != 0x00 || raw[15] != 0xff {
		t.Errorf("Decode(hex) = %x", raw)
	}

	// Any other length decodes as base64.
	b64Text := EncodingBase64.Encode([]byte("1234567890abcdef"))
	raw, err = reg.Decode(b64Text, "PLAIN-MD5")
	if err != nil {
		t.Fatalf("Decode(base64): %v", err)
	}
	if !bytes.Equal(raw, []byte("1234567890abcdef")) {
		t.Errorf("Decode(base64) = %q", raw)
	}

	// A base64 string decoding to the wrong length is rejected.
	short := EncodingBase64.Encode([]byte("too short"))
	if _, err := reg.Decode(short, "PLAIN-MD5"); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Decode(short) error = %v, want %v", err, ErrInvalidLength)
	}

	// An explicit suffix disables autodetection.
	if _, err := reg.Decode(hexText, "PLAIN-MD5.b64"); err == nil {
		t.Error("Decode with .b64 suffix accepted hex-length input as hex")
	}
}

// TestVerifyErrors tests the failure modes of Verify.
func TestVerifyErrors(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Verify("p", "", "NO-SUCH", nil); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Verify unknown scheme error = %v, want %v", err, ErrUnknownScheme)
	}
	if _, err := reg.Verify("p", "", "SHA1.bogus", nil); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Verify bad suffix error = %v, want %v", err, ErrUnknownEncoding)
	}
}

// TestVerifyPlain tests that the generic compare path matches exactly the
// plaintext bytes.
func TestVerifyPlain(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		raw  []byte
		want bool
	}{
		{[]byte("secret"), true},
		{[]byte("Secret"), false},
		{[]byte("secret "), false},
		{[]byte("secre"), false},
		{[]byte{}, false},
	}
	for _, tt := range tests {
		match, err := reg.Verify("secret", "", "PLAIN", tt.raw)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if match != tt.want {
			t.Errorf("Verify(PLAIN, %q) = %v, want %v", tt.raw, match, tt.want)
		}
	}
}

// TestGenerateUnknownScheme tests lookup failures on the generate path.
func TestGenerateUnknownScheme(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Generate("p", "", "NO-SUCH"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("Generate error = %v, want %v", err, ErrUnknownScheme)
	}
	if _, err := reg.GenerateEncoded("p", "", "NO-SUCH"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("GenerateEncoded error = %v, want %v", err, ErrUnknownScheme)
	}
}

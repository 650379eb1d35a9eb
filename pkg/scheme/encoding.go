package scheme

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Encoding identifies the textual representation of raw hash bytes.
type Encoding int

const (
	// EncodingNone stores the raw bytes verbatim as text.
	EncodingNone Encoding = iota
	// EncodingHex stores the raw bytes as lowercase hexadecimal.
	EncodingHex
	// EncodingBase64 stores the raw bytes as standard base64.
	EncodingBase64
)

// String returns the encoding suffix form of e.
func (e Encoding) String() string {
	switch e {
	case EncodingNone:
		return "none"
	case EncodingHex:
		return "hex"
	case EncodingBase64:
		return "base64"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Decode converts encoded text back into raw bytes. A nonzero expectedLen is
// enforced against the decoded result and fails with ErrInvalidLength.
// Invalid hex or base64 input fails with ErrMalformed.
func (e Encoding) Decode(text string, expectedLen int) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch e {
	case EncodingNone:
		raw = []byte(text)
	case EncodingHex:
		raw, err = hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case EncodingBase64:
		raw, err = base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, e)
	}

	if expectedLen != 0 && len(raw) != expectedLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidLength, len(raw), expectedLen)
	}
	return raw, nil
}

// Encode converts raw bytes into their textual form. For EncodingNone the
// bytes are assumed to already be valid text; that is part of the scheme
// contract and is not checked here.
func (e Encoding) Encode(raw []byte) string {
	switch e {
	case EncodingHex:
		return hex.EncodeToString(raw)
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(raw)
	default:
		return string(raw)
	}
}

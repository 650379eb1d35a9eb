package scheme

import (
	"bytes"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"log/slog"
	"strings"
	"unicode/utf16"

	"github.com/GehirnInc/crypt/md5_crypt"
	"github.com/digitive/crypt"
	"golang.org/x/crypto/md4"

	"github.com/jeremyhahn/go-passwd/pkg/cram"
	"github.com/jeremyhahn/go-passwd/pkg/ntlm"
	"github.com/jeremyhahn/go-passwd/pkg/otp"
)

// saltAlphabet is the traditional crypt(3) salt character set.
const saltAlphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	cryptSaltLen    = 2
	md5CryptSaltLen = 8
	smd5SaltLen     = 4
	sshaSaltLen     = 4
)

// builtinSchemes returns the built-in scheme catalog in its fixed order.
// Schemes that denote the same algorithm under different labels share a
// single generator value, which is what IsAlias compares.
func builtinSchemes(log *slog.Logger) []Scheme {
	cryptGen := cryptScheme{}
	md5CryptGen := md5CryptScheme{}
	sha1Gen := sha1Scheme{}
	plainGen := plainScheme{}
	cramGen := cramMD5Scheme{}
	plainMD5Gen := plainMD5Scheme{}

	return []Scheme{
		{Name: "CRYPT", DefaultEncoding: EncodingNone, Generator: cryptGen},
		{Name: "MD5", DefaultEncoding: EncodingNone, Generator: md5CryptGen},
		{Name: "MD5-CRYPT", DefaultEncoding: EncodingNone, Generator: md5CryptGen},
		{Name: "SHA", DefaultEncoding: EncodingBase64, RawLen: sha1.Size, Generator: sha1Gen},
		{Name: "SHA1", DefaultEncoding: EncodingBase64, RawLen: sha1.Size, Generator: sha1Gen},
		{Name: "SMD5", DefaultEncoding: EncodingBase64, Generator: smd5Scheme{log: log}},
		{Name: "SSHA", DefaultEncoding: EncodingBase64, Generator: sshaScheme{log: log}},
		{Name: "PLAIN", DefaultEncoding: EncodingNone, Generator: plainGen},
		{Name: "CLEARTEXT", DefaultEncoding: EncodingNone, Generator: plainGen},
		{Name: "CRAM-MD5", DefaultEncoding: EncodingHex, Generator: cramGen},
		{Name: "HMAC-MD5", DefaultEncoding: EncodingHex, RawLen: cram.ContextLen, Generator: cramGen},
		{Name: "DIGEST-MD5", DefaultEncoding: EncodingHex, RawLen: md5.Size, Generator: digestMD5Scheme{}},
		{Name: "PLAIN-MD4", DefaultEncoding: EncodingHex, RawLen: md4.Size, Generator: plainMD4Scheme{}},
		{Name: "PLAIN-MD5", DefaultEncoding: EncodingHex, RawLen: md5.Size, Generator: plainMD5Gen},
		{Name: "LDAP-MD5", DefaultEncoding: EncodingBase64, RawLen: md5.Size, Generator: plainMD5Gen},
		{Name: "LANMAN", DefaultEncoding: EncodingHex, RawLen: ntlm.HashSize, Generator: lanmanScheme{}},
		{Name: "NTLM", DefaultEncoding: EncodingHex, RawLen: ntlm.HashSize, Generator: ntlmScheme{}},
		{Name: "OTP", DefaultEncoding: EncodingNone, Generator: otpScheme{algo: otp.AlgorithmSHA1}},
		{Name: "SKEY", DefaultEncoding: EncodingNone, Generator: otpScheme{algo: otp.AlgorithmMD4}},
		{Name: "RPA", DefaultEncoding: EncodingHex, RawLen: md5.Size, Generator: rpaScheme{}},
	}
}

// randomSalt returns n random characters from the crypt(3) salt alphabet.
func randomSalt(n int) []byte {
	salt := make([]byte, n)
	if _, err := rand.Read(salt); err != nil {
		panic("scheme: secure random source failed: " + err.Error())
	}
	for i := range salt {
		salt[i] = saltAlphabet[int(salt[i])%len(saltAlphabet)]
	}
	return salt
}

// cryptScheme implements classic DES crypt(3). The stored value is the full
// crypt output with the two-character salt embedded.
type cryptScheme struct{}

func (cryptScheme) Generate(plaintext, _ string) []byte {
	out, err := crypt.Crypt(plaintext, string(randomSalt(cryptSaltLen)))
	if err != nil {
		panic("scheme: crypt failed: " + err.Error())
	}
	return []byte(out)
}

func (cryptScheme) Verify(plaintext, _ string, raw []byte) bool {
	if len(raw) == 0 {
		// crypt with an empty salt would report a match for any input.
		return false
	}
	stored := string(raw)
	out, err := crypt.Crypt(plaintext, stored)
	return err == nil && out == stored
}

// md5CryptScheme implements the $1$ MD5-crypt transform. Registered as both
// MD5 and MD5-CRYPT.
type md5CryptScheme struct{}

func (md5CryptScheme) Generate(plaintext, _ string) []byte {
	salt := append([]byte("$1$"), randomSalt(md5CryptSaltLen)...)
	out, err := md5_crypt.New().Generate([]byte(plaintext), salt)
	if err != nil {
		panic("scheme: md5-crypt failed: " + err.Error())
	}
	return []byte(out)
}

func (md5CryptScheme) Verify(plaintext, _ string, raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	return md5_crypt.New().Verify(string(raw), []byte(plaintext)) == nil
}

// sha1Scheme is the unsalted SHA1 digest, registered as SHA and SHA1.
type sha1Scheme struct{}

func (sha1Scheme) Generate(plaintext, _ string) []byte {
	sum := sha1.Sum([]byte(plaintext))
	return sum[:]
}

// smd5Scheme is the salted MD5 digest. Stored layout: <digest><salt>.
type smd5Scheme struct {
	log *slog.Logger
}

func (s smd5Scheme) Generate(plaintext, _ string) []byte {
	salt := make([]byte, smd5SaltLen)
	if _, err := rand.Read(salt); err != nil {
		panic("scheme: secure random source failed: " + err.Error())
	}
	h := md5.New()
	h.Write([]byte(plaintext))
	h.Write(salt)
	return append(h.Sum(nil), salt...)
}

func (s smd5Scheme) Verify(plaintext, user string, raw []byte) bool {
	if len(raw) <= md5.Size {
		s.log.Error("SMD5 password too short", "user", user, "len", len(raw))
		return false
	}
	h := md5.New()
	h.Write([]byte(plaintext))
	h.Write(raw[md5.Size:])
	return bytes.Equal(h.Sum(nil), raw[:md5.Size])
}

// sshaScheme is the salted SHA1 digest. Stored layout: <digest><salt>.
type sshaScheme struct {
	log *slog.Logger
}

func (s sshaScheme) Generate(plaintext, _ string) []byte {
	salt := make([]byte, sshaSaltLen)
	if _, err := rand.Read(salt); err != nil {
		panic("scheme: secure random source failed: " + err.Error())
	}
	h := sha1.New()
	h.Write([]byte(plaintext))
	h.Write(salt)
	return append(h.Sum(nil), salt...)
}

func (s sshaScheme) Verify(plaintext, user string, raw []byte) bool {
	if len(raw) <= sha1.Size {
		s.log.Error("SSHA password too short", "user", user, "len", len(raw))
		return false
	}
	h := sha1.New()
	h.Write([]byte(plaintext))
	h.Write(raw[sha1.Size:])
	return bytes.Equal(h.Sum(nil), raw[:sha1.Size])
}

// plainScheme stores the plaintext verbatim, registered as PLAIN and
// CLEARTEXT.
type plainScheme struct{}

func (plainScheme) Generate(plaintext, _ string) []byte {
	return []byte(plaintext)
}

// cramMD5Scheme stores the keyed HMAC-MD5 intermediate context, registered
// as CRAM-MD5 and HMAC-MD5.
type cramMD5Scheme struct{}

func (cramMD5Scheme) Generate(plaintext, _ string) []byte {
	return cram.MD5Context([]byte(plaintext))
}

// digestMD5Scheme binds the account identity into the hash:
// MD5("name:realm:password") with the realm taken from a "name@realm" user.
type digestMD5Scheme struct{}

func (digestMD5Scheme) Generate(plaintext, user string) []byte {
	if user == "" {
		panic("scheme: DIGEST-MD5 requires a username")
	}
	name, realm, _ := strings.Cut(user, "@")
	sum := md5.Sum([]byte(name + ":" + realm + ":" + plaintext))
	return sum[:]
}

type plainMD4Scheme struct{}

func (plainMD4Scheme) Generate(plaintext, _ string) []byte {
	h := md4.New()
	h.Write([]byte(plaintext))
	return h.Sum(nil)
}

// plainMD5Scheme is the unsalted MD5 digest, registered as PLAIN-MD5 and
// LDAP-MD5.
type plainMD5Scheme struct{}

func (plainMD5Scheme) Generate(plaintext, _ string) []byte {
	sum := md5.Sum([]byte(plaintext))
	return sum[:]
}

type lanmanScheme struct{}

func (lanmanScheme) Generate(plaintext, _ string) []byte {
	return ntlm.LMHash(plaintext)
}

type ntlmScheme struct{}

func (ntlmScheme) Generate(plaintext, _ string) []byte {
	return ntlm.NTHash(plaintext)
}

// otpScheme derives RFC 2289 one-time-password credentials. OTP and SKEY
// differ only in hash kind, so they are distinct values of the same type and
// never report as aliases. Verification treats the stored value as the
// challenge seed and compares case-insensitively.
type otpScheme struct {
	algo otp.Algorithm
}

func (s otpScheme) Generate(plaintext, _ string) []byte {
	return []byte(otp.NewState(s.algo).Derive(plaintext))
}

func (s otpScheme) Verify(plaintext, _ string, raw []byte) bool {
	stored := string(raw)
	state, err := otp.ParseState(stored)
	if err != nil {
		return false
	}
	return strings.EqualFold(state.Derive(plaintext), stored)
}

// rpaScheme is the CompuServe RPA one-way hash: MD5 over the UCS-2
// big-endian form of the password.
type rpaScheme struct{}

func (rpaScheme) Generate(plaintext, _ string) []byte {
	units := utf16.Encode([]rune(plaintext))
	wide := make([]byte, 0, len(units)*2)
	for _, u := range units {
		wide = append(wide, byte(u>>8), byte(u))
	}
	sum := md5.Sum(wide)
	return sum[:]
}

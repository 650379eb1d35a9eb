package scheme

import "log/slog"

// Generator produces the raw stored form of a password. The user argument
// carries the account identity for schemes that bind it into the hash; most
// schemes ignore it.
type Generator interface {
	Generate(plaintext, user string) []byte
}

// Verifier is implemented by generators whose stored form embeds
// per-credential state (a salt or challenge seed) that the generic
// generate-and-compare path cannot reproduce. Verify reports whether
// plaintext matches the raw stored bytes.
type Verifier interface {
	Verify(plaintext, user string, raw []byte) bool
}

// Scheme describes a registered password scheme. A Scheme is immutable once
// registered.
type Scheme struct {
	// Name identifies the scheme. Lookups match it case-insensitively.
	Name string

	// DefaultEncoding is the textual encoding used when the scheme tag
	// carries no encoding suffix.
	DefaultEncoding Encoding

	// RawLen is the expected decoded byte length of a stored password.
	// Zero accepts any length. A nonzero value is enforced after decoding
	// and enables hex/base64 autodetection.
	RawLen int

	// Generator produces the raw stored form. If it also implements
	// Verifier, that verification replaces the generic compare path.
	Generator Generator
}

// Config holds registry configuration.
type Config struct {
	// Logger receives diagnostics about malformed stored credentials.
	// Nil selects slog.Default().
	Logger *slog.Logger
}

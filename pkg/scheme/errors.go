package scheme

import "errors"

// Common errors returned by registry operations. All of them mean the
// credential cannot be validated; none of them indicate a match.
var (
	// ErrUnknownScheme indicates the scheme tag does not name a registered scheme.
	ErrUnknownScheme = errors.New("scheme: unknown scheme")
	// ErrUnknownEncoding indicates the scheme tag carries an unrecognized
	// encoding suffix.
	ErrUnknownEncoding = errors.New("scheme: unrecognized encoding suffix")
	// ErrMalformed indicates the encoded password text is not valid in its
	// encoding.
	ErrMalformed = errors.New("scheme: malformed encoded password")
	// ErrInvalidLength indicates the decoded password does not have the
	// length the scheme expects.
	ErrInvalidLength = errors.New("scheme: decoded password has invalid length")
	// ErrInvalidScheme indicates a scheme definition passed to Register is
	// incomplete.
	ErrInvalidScheme = errors.New("scheme: invalid scheme definition")
)

package scheme

import (
	"fmt"
	"iter"
	"log/slog"
	"reflect"
	"strings"
)

// Registry is the ordered catalog of known password schemes and the
// dispatcher for all generate/verify/decode operations.
//
// Registration order is significant: built-ins come first, then externally
// registered schemes, and lookups return the first case-insensitive name
// match. A later registration with a duplicate name is shadowed by the scan
// order, never removed.
//
// A Registry is built once, single-threaded, during an initialization phase.
// After that it is immutable and safe for concurrent use without locking.
type Registry struct {
	schemes []Scheme
	log     *slog.Logger
}

// NewRegistry returns a registry pre-populated with the built-in schemes.
func NewRegistry(cfg Config) *Registry {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		schemes: builtinSchemes(log),
		log:     log,
	}
}

// Register appends an externally supplied scheme to the registry. It must
// only be called during the initialization phase, before the registry is
// shared with concurrent callers.
func (r *Registry) Register(s Scheme) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidScheme)
	}
	if s.Generator == nil {
		return fmt.Errorf("%w: %q has no generator", ErrInvalidScheme, s.Name)
	}
	r.schemes = append(r.schemes, s)
	return nil
}

// Lookup resolves a scheme tag to its scheme and encoding. The tag is split
// at the first '.'; the prefix is matched case-insensitively against
// registered names and the suffix, if present, overrides the scheme's
// default encoding ("b64"/"base64" or "hex"). An unrecognized suffix fails
// with ErrUnknownEncoding; callers treat that the same as an unknown scheme.
func (r *Registry) Lookup(tag string) (*Scheme, Encoding, error) {
	base, suffix, hasSuffix := strings.Cut(tag, ".")

	s := r.find(base)
	if s == nil {
		return nil, EncodingNone, fmt.Errorf("%w: %q", ErrUnknownScheme, base)
	}

	enc := s.DefaultEncoding
	if hasSuffix {
		switch {
		case strings.EqualFold(suffix, "b64"), strings.EqualFold(suffix, "base64"):
			enc = EncodingBase64
		case strings.EqualFold(suffix, "hex"):
			enc = EncodingHex
		default:
			return nil, EncodingNone, fmt.Errorf("%w: %q", ErrUnknownEncoding, suffix)
		}
	}
	return s, enc, nil
}

// List returns a fresh sequence over the registered scheme names in
// registration order. Each call yields an independent, restartable
// iteration.
func (r *Registry) List() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range r.schemes {
			if !yield(s.Name) {
				return
			}
		}
	}
}

// IsAlias reports whether two scheme names denote the identical underlying
// algorithm, e.g. "SHA" and "SHA1". Encoding suffixes are ignored.
//
// Distinct names alias when their schemes share the same generator value.
// Generators of an uncomparable dynamic type never report as aliases under
// a different name.
func (r *Registry) IsAlias(name1, name2 string) bool {
	name1, _, _ = strings.Cut(name1, ".")
	name2, _, _ = strings.Cut(name2, ".")

	if strings.EqualFold(name1, name2) {
		return true
	}

	s1 := r.find(name1)
	s2 := r.find(name2)

	// Schemes with the same generator are equivalent.
	return s1 != nil && s2 != nil && generatorsEqual(s1.Generator, s2.Generator)
}

// generatorsEqual compares generator identity without panicking on
// uncomparable dynamic types.
func generatorsEqual(g1, g2 Generator) bool {
	t1 := reflect.TypeOf(g1)
	if t1 == nil || t1 != reflect.TypeOf(g2) || !t1.Comparable() {
		return false
	}
	return g1 == g2
}

// find returns the first registered scheme whose name matches, or nil.
func (r *Registry) find(name string) *Scheme {
	for i := range r.schemes {
		if strings.EqualFold(r.schemes[i].Name, name) {
			return &r.schemes[i]
		}
	}
	return nil
}

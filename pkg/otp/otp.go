package otp

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/md4"
)

// Algorithm identifies the hash family used for one-time-password
// derivation.
type Algorithm int

const (
	// AlgorithmMD4 is the hash kind used by the SKEY scheme.
	AlgorithmMD4 Algorithm = iota
	// AlgorithmMD5 is the default RFC 2289 hash kind.
	AlgorithmMD5
	// AlgorithmSHA1 is the hash kind used by the OTP scheme.
	AlgorithmSHA1
)

// String returns the algorithm name as it appears in stored state data.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmMD4:
		return "md4"
	case AlgorithmMD5:
		return "md5"
	case AlgorithmSHA1:
		return "sha1"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm resolves an algorithm name from stored state data.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch {
	case strings.EqualFold(name, "md4"):
		return AlgorithmMD4, nil
	case strings.EqualFold(name, "md5"):
		return AlgorithmMD5, nil
	case strings.EqualFold(name, "sha1"):
		return AlgorithmSHA1, nil
	default:
		return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidState, name)
	}
}

const (
	// ResultLen is the length in bytes of a folded one-time password.
	ResultLen = 8
	// DefaultSequence is the sequence number assigned to freshly generated
	// credentials.
	DefaultSequence = 1024
	// MaxSeedLen is the longest seed accepted in stored state data.
	MaxSeedLen = 16

	newSeedLen     = 8
	seedAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	minStateFields = 3
)

// ErrInvalidState indicates stored one-time-password state data could not
// be parsed.
var ErrInvalidState = errors.New("otp: invalid state data")

// State holds one-time-password credentials: the hash algorithm, the
// remaining sequence count and the seed.
type State struct {
	Algorithm Algorithm
	Sequence  uint
	Seed      string
}

// NewState returns fresh credentials for algo with a random seed and the
// default sequence number.
func NewState(algo Algorithm) State {
	seed := make([]byte, newSeedLen)
	if _, err := rand.Read(seed); err != nil {
		panic("otp: secure random source failed: " + err.Error())
	}
	for i := range seed {
		seed[i] = seedAlphabet[int(seed[i])%len(seedAlphabet)]
	}
	return State{
		Algorithm: algo,
		Sequence:  DefaultSequence,
		Seed:      string(seed),
	}
}

// ParseState parses stored state data of the form
// "<algorithm> <sequence> <seed> [...]". Fields beyond the seed, such as a
// previously derived digest, are ignored.
func ParseState(data string) (State, error) {
	fields := strings.Fields(data)
	if len(fields) < minStateFields {
		return State{}, fmt.Errorf("%w: expected at least %d fields, got %d",
			ErrInvalidState, minStateFields, len(fields))
	}

	algo, err := ParseAlgorithm(fields[0])
	if err != nil {
		return State{}, err
	}

	seq, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return State{}, fmt.Errorf("%w: bad sequence %q", ErrInvalidState, fields[1])
	}

	seed := fields[2]
	if len(seed) > MaxSeedLen {
		return State{}, fmt.Errorf("%w: seed longer than %d characters",
			ErrInvalidState, MaxSeedLen)
	}
	for _, c := range seed {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return State{}, fmt.Errorf("%w: seed is not alphanumeric", ErrInvalidState)
		}
	}

	return State{Algorithm: algo, Sequence: uint(seq), Seed: seed}, nil
}

// Derive computes the one-time password for the passphrase under this state
// and returns its printable form, "<algorithm> <sequence> <seed> <hex>".
func (s State) Derive(passphrase string) string {
	digest := s.hash([]byte(strings.ToLower(s.Seed) + passphrase))
	for i := uint(0); i < s.Sequence; i++ {
		digest = s.hash(digest)
	}
	return fmt.Sprintf("%s %d %s %x", s.Algorithm, s.Sequence, s.Seed, digest)
}

// hash digests in and folds the result to ResultLen bytes.
func (s State) hash(in []byte) []byte {
	switch s.Algorithm {
	case AlgorithmSHA1:
		sum := sha1.Sum(in)
		return foldSHA1(sum[:])
	case AlgorithmMD4:
		h := md4.New()
		h.Write(in)
		return fold128(h.Sum(nil))
	default:
		sum := md5.Sum(in)
		return fold128(sum[:])
	}
}

// fold128 XORs the two halves of a 16-byte digest.
func fold128(digest []byte) []byte {
	out := make([]byte, ResultLen)
	for i := range out {
		out[i] = digest[i] ^ digest[i+ResultLen]
	}
	return out
}

// foldSHA1 folds a 20-byte digest by XORing its five 32-bit words down to
// two. The digest bytes carry big-endian words; the folded result is
// stored little-endian per RFC 2289 appendix A.
func foldSHA1(digest []byte) []byte {
	w0 := binary.BigEndian.Uint32(digest[0:])
	w1 := binary.BigEndian.Uint32(digest[4:])
	w2 := binary.BigEndian.Uint32(digest[8:])
	w3 := binary.BigEndian.Uint32(digest[12:])
	w4 := binary.BigEndian.Uint32(digest[16:])

	out := make([]byte, ResultLen)
	binary.LittleEndian.PutUint32(out[0:], w0^w2^w4)
	binary.LittleEndian.PutUint32(out[4:], w1^w3)
	return out
}

// Package otp implements the one-time-password derivation of RFC 2289 as
// used by the OTP and SKEY password schemes.
//
// A credential is a State: a hash algorithm, a sequence number and a seed.
// Deriving the one-time password hashes the lowercased seed concatenated
// with the passphrase, folds the digest to 64 bits, and re-hashes and folds
// the result once per sequence step. The printable form of a derived
// credential is
//
//	<algorithm> <sequence> <seed> <hex digest>
//
// which doubles as the stored password value and as the challenge for
// re-derivation:
//
//	state := otp.NewState(otp.AlgorithmSHA1)
//	stored := state.Derive(passphrase)
//
//	// later, verifying against the stored value:
//	state, err := otp.ParseState(stored)
//	if err == nil && strings.EqualFold(state.Derive(candidate), stored) {
//	    // match
//	}
//
// All functions are pure apart from the random seed selection in NewState;
// the package holds no state and is safe for concurrent use.
package otp

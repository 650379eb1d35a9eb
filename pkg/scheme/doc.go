// Package scheme normalizes the stored representation of hashed credentials
// across legacy and modern password schemes and provides uniform
// generate/verify/decode operations over them.
//
// A stored password carries a scheme tag, either bracketed or in the legacy
// crypt form:
//
//	{SSHA}base64data
//	{SHA1.hex}hexdata
//	$1$salt$hash
//
// The tag names one of the registered schemes, optionally followed by an
// encoding suffix (".hex", ".b64" or ".base64") that overrides the scheme's
// default encoding for that lookup.
//
// # Basic Usage
//
// Construct a registry once during startup and share it across workers:
//
//	reg := scheme.NewRegistry(scheme.Config{})
//
//	name, remainder, ok := scheme.SplitScheme(stored)
//	if !ok {
//	    name, remainder = "PLAIN", stored // site default
//	}
//
//	raw, err := reg.Decode(remainder, name)
//	if err != nil {
//	    // credential cannot be validated
//	}
//
//	match, err := reg.Verify(plaintext, user, name, raw)
//
// New password hashes are produced with GenerateEncoded:
//
//	encoded, err := reg.GenerateEncoded(plaintext, user, "SSHA")
//	stored := "{SSHA}" + encoded
//
// # Extension Schemes
//
// Additional schemes are registered during the initialization phase, before
// the registry is shared:
//
//	reg.Register(scheme.Scheme{
//	    Name:            "MY-SCHEME",
//	    DefaultEncoding: scheme.EncodingBase64,
//	    Generator:       myHandler{},
//	})
//
// A Generator that also implements Verifier takes over verification for its
// scheme; otherwise verification generates a fresh hash and compares bytes.
//
// # Thread Safety
//
// A Registry is read-only after the initialization phase and may be used by
// any number of goroutines concurrently. Register must not be called once
// the registry is shared.
package scheme

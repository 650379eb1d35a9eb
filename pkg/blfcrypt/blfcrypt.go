// Package blfcrypt provides a bcrypt-backed password scheme ("BLF-CRYPT")
// as an extension to the scheme registry.
//
// It is not a built-in: callers opt in during the initialization phase:
//
//	reg := scheme.NewRegistry(scheme.Config{})
//	if err := reg.Register(blfcrypt.Scheme()); err != nil {
//	    // ...
//	}
//
//	encoded, err := reg.GenerateEncoded(password, user, "BLF-CRYPT")
package blfcrypt

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jeremyhahn/go-passwd/pkg/scheme"
)

// Name is the scheme name this package registers under.
const Name = "BLF-CRYPT"

// maxPasswordLen is bcrypt's input limit; longer passwords are truncated
// rather than rejected, since the generator interface has no error path.
const maxPasswordLen = 72

// Scheme returns the BLF-CRYPT scheme definition with the default bcrypt
// cost.
func Scheme() scheme.Scheme {
	return SchemeWithCost(bcrypt.DefaultCost)
}

// SchemeWithCost returns the BLF-CRYPT scheme definition with an explicit
// bcrypt cost. Costs outside bcrypt's supported range fall back to the
// default.
func SchemeWithCost(cost int) scheme.Scheme {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return scheme.Scheme{
		Name:            Name,
		DefaultEncoding: scheme.EncodingNone,
		Generator:       handler{cost: cost},
	}
}

type handler struct {
	cost int
}

func (h handler) Generate(plaintext, _ string) []byte {
	secret := []byte(plaintext)
	if len(secret) > maxPasswordLen {
		secret = secret[:maxPasswordLen]
	}
	out, err := bcrypt.GenerateFromPassword(secret, h.cost)
	if err != nil {
		panic("blfcrypt: bcrypt failed: " + err.Error())
	}
	return out
}

func (h handler) Verify(plaintext, _ string, raw []byte) bool {
	secret := []byte(plaintext)
	if len(secret) > maxPasswordLen {
		secret = secret[:maxPasswordLen]
	}
	return bcrypt.CompareHashAndPassword(raw, secret) == nil
}

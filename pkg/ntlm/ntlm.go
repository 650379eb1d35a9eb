// Package ntlm implements the legacy LAN Manager and NT one-way password
// hashes used by the LANMAN and NTLM password schemes.
//
// Both hashes are unsalted and fixed-length; neither should be used for new
// deployments. They exist to validate credentials migrated from Windows and
// Samba password databases.
package ntlm

import (
	"crypto/des"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/md4"
)

// HashSize is the length in bytes of both the LM and NT hashes.
const HashSize = 16

// lmMagic is the fixed plaintext each DES half-key encrypts in the LM hash.
var lmMagic = []byte("KGS!@#$%")

// LMHash returns the LAN Manager hash of password. The password is
// uppercased and truncated to 14 bytes, split into two 7-byte halves, and
// each half keys a DES encryption of a fixed 8-byte constant.
func LMHash(password string) []byte {
	var buf [14]byte
	upper := strings.ToUpper(password)
	if len(upper) > len(buf) {
		upper = upper[:len(buf)]
	}
	copy(buf[:], upper)

	out := make([]byte, 0, HashSize)
	for _, half := range [][]byte{buf[:7], buf[7:]} {
		block, err := des.NewCipher(expandDESKey(half))
		if err != nil {
			// The expanded key is always 8 bytes.
			panic("ntlm: " + err.Error())
		}
		var enc [8]byte
		block.Encrypt(enc[:], lmMagic)
		out = append(out, enc[:]...)
	}
	return out
}

// NTHash returns the NT hash of password: MD4 over its UTF-16LE encoding.
func NTHash(password string) []byte {
	units := utf16.Encode([]rune(password))
	wide := make([]byte, 0, len(units)*2)
	for _, u := range units {
		wide = append(wide, byte(u), byte(u>>8))
	}

	h := md4.New()
	h.Write(wide)
	return h.Sum(nil)
}

// expandDESKey spreads a 7-byte key over 8 bytes, leaving the low bit of
// each output byte for the DES parity position.
func expandDESKey(key7 []byte) []byte {
	key := make([]byte, 8)
	key[0] = key7[0]
	key[1] = key7[0]<<7 | key7[1]>>1
	key[2] = key7[1]<<6 | key7[2]>>2
	key[3] = key7[2]<<5 | key7[3]>>3
	key[4] = key7[3]<<4 | key7[4]>>4
	key[5] = key7[4]<<3 | key7[5]>>5
	key[6] = key7[5]<<2 | key7[6]>>6
	key[7] = key7[6] << 1
	return key
}

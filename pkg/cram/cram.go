// Package cram derives the keyed intermediate MD5 context used by the
// CRAM-MD5 and HMAC-MD5 password schemes.
//
// The context is not a digest of the password: it is the pair of inner and
// outer MD5 states of an HMAC-MD5 keyed with the password, captured after
// the first (key pad) block. Storing the context instead of the plaintext
// lets a server answer CRAM-MD5 challenges without keeping the password
// itself, since HMAC computation can resume from these states for any
// challenge.
package cram

import (
	"crypto/md5"
	"encoding"
	"encoding/binary"
)

// ContextLen is the length in bytes of a CRAM-MD5 context: the four inner
// and four outer MD5 state words, each stored little-endian.
const ContextLen = 32

// MD5Context returns the CRAM-MD5 intermediate context for secret. A secret
// longer than the MD5 block size is first reduced to its digest, matching
// HMAC key handling.
func MD5Context(secret []byte) []byte {
	if len(secret) > md5.BlockSize {
		sum := md5.Sum(secret)
		secret = sum[:]
	}

	var ipad, opad [md5.BlockSize]byte
	copy(ipad[:], secret)
	copy(opad[:], secret)
	for i := 0; i < md5.BlockSize; i++ {
		ipad[i] ^= 0x36
		opad[i] ^= 0x5c
	}

	out := make([]byte, 0, ContextLen)
	out = appendStateWords(out, ipad[:])
	out = appendStateWords(out, opad[:])
	return out
}

// appendStateWords hashes one block and appends the four resulting MD5 state
// words to dst in little-endian order. The words are recovered through the
// digest's binary marshaling, which lays out the magic "md5\x01" followed by
// the state words big-endian; that format is covered by the Go 1
// compatibility promise.
func appendStateWords(dst, block []byte) []byte {
	h := md5.New()
	h.Write(block)

	state, err := h.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		// The stdlib MD5 marshaler does not fail.
		panic("cram: " + err.Error())
	}

	const magicLen = 4
	for i := 0; i < 4; i++ {
		word := binary.BigEndian.Uint32(state[magicLen+4*i:])
		dst = binary.LittleEndian.AppendUint32(dst, word)
	}
	return dst
}

// Package kdf derives AEAD keys for Waterscape envelopes: a
// point-to-point key via X25519 + HKDF-SHA256, and a group key via a
// single SHA-256 bound to the group's creator and name. Grounded on the
// teacher's HKDF usage in its X3DH and Double Ratchet derivations
// (golang.org/x/crypto/hkdf), simplified to the single-shared-secret
// case spec.md's envelope needs.
package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// pointToPointInfo is the exact HKDF info byte string, no null
// terminator, per spec.md §4.3.
const pointToPointInfo = "waterscape-v1-encrypt"

// PointToPoint expands a raw X25519 shared secret into a 32-byte AEAD
// key with an empty salt and the fixed info string.
func PointToPoint(sharedSecret [32]byte) ([]byte, error) {
	r := hkdf.New(sha256.New, sharedSecret[:], nil, []byte(pointToPointInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Group derives the symmetric group key directly as
// SHA-256(creatorSigningPub || groupName), with no HKDF step and no
// per-message ephemeral key, per spec.md §4.3. groupName is hashed as
// its exact UTF-8 bytes, unnormalised.
func Group(creatorSigningPub [32]byte, groupName string) [32]byte {
	h := sha256.New()
	h.Write(creatorSigningPub[:])
	h.Write([]byte(groupName))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

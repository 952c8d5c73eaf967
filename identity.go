package waterscape

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/curve25519"

	"github.com/dylankamski/waterscape/internal/memzero"
)

// Identity holds the long-term key material for one party: an Ed25519
// signing pair and an X25519 key-agreement pair, plus a display name.
// The private halves never leave the owning process; PublicIdentity is
// the shareable projection.
type Identity struct {
	Name string

	edPriv ed25519.PrivateKey
	edPub  ed25519.PublicKey

	xPriv [32]byte
	xPub  [32]byte
}

// PublicIdentity is the freely shareable, round-trippable half of an
// Identity: a name plus the two public keys.
type PublicIdentity struct {
	Name        string   `json:"name"`
	SigningKey  [32]byte `json:"signing_key"`  // Ed25519 public key
	ExchangeKey [32]byte `json:"exchange_key"` // X25519 public key
}

// NewIdentity draws a fresh Ed25519 signing pair and X25519 exchange pair
// from a cryptographically secure source. It fails only if the
// randomness source fails.
func NewIdentity(name string) (*Identity, error) {
	return newIdentity(name, rand.Reader)
}

// newIdentity is the randomness-injectable constructor used by tests
// needing determinism (spec.md §9, "randomness as ambient dependency").
func newIdentity(name string, rng io.Reader) (*Identity, error) {
	edPub, edPriv, err := ed25519.GenerateKey(rng)
	if err != nil {
		return nil, newError(KindRngFailure, err)
	}

	xPriv, xPub, err := generateX25519Pair(rng)
	if err != nil {
		return nil, err
	}

	id := &Identity{Name: name, edPriv: edPriv, edPub: edPub}
	id.xPriv = xPriv
	id.xPub = xPub
	return id, nil
}

// generateX25519Pair draws a clamped X25519 private key from rng and
// derives its public key. Used both for long-term identity keys and for
// per-message ephemeral keys.
func generateX25519Pair(rng io.Reader) (priv, pub [32]byte, err error) {
	if _, err = io.ReadFull(rng, priv[:]); err != nil {
		return priv, pub, newError(KindRngFailure, err)
	}
	clampX25519(&priv)

	pubBytes, derr := curve25519.X25519(priv[:], curve25519.Basepoint)
	if derr != nil {
		return priv, pub, newError(KindRngFailure, derr)
	}
	copy(pub[:], pubBytes)
	return priv, pub, nil
}

func clampX25519(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

// dhRaw computes X25519(priv, pub) without requiring an Identity, used
// for ephemeral per-message keys. See Identity.DH for the zero-output
// policy this follows.
func dhRaw(priv, pub [32]byte) ([32]byte, error) {
	secret, err := curve25519.X25519(priv[:], pub[:])
	var out [32]byte
	if err != nil {
		return out, newError(KindInvalidIdentity, err)
	}
	copy(out[:], secret)
	return out, nil
}

// Public projects the Identity down to its shareable PublicIdentity.
func (id *Identity) Public() PublicIdentity {
	var pub PublicIdentity
	pub.Name = id.Name
	copy(pub.SigningKey[:], id.edPub)
	pub.ExchangeKey = id.xPub
	return pub
}

// Fingerprint returns the 16-character lowercase hex encoding of the
// first 8 bytes of the Ed25519 public key.
func (id *Identity) Fingerprint() string {
	return fingerprintOf(id.edPub)
}

// Fingerprint returns the same fingerprint as Identity.Fingerprint, computed
// from the public signing key.
func (pub PublicIdentity) Fingerprint() string {
	return fingerprintOf(pub.SigningKey[:])
}

func fingerprintOf(signingPub []byte) string {
	return hex.EncodeToString(signingPub[:8])
}

// Sign signs msg with the Ed25519 private key.
func (id *Identity) Sign(msg []byte) []byte {
	return ed25519.Sign(id.edPriv, msg)
}

// Verify checks sig over msg against an Ed25519 public key.
func Verify(pub [32]byte, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}

// DH computes the X25519 shared secret between id's exchange private key
// and theirExchangePub. golang.org/x/crypto/curve25519.X25519 returns an
// error when the output is all zero (a low-order input point); that
// error is returned as KindInvalidIdentity, so an all-zero shared secret
// never reaches the caller's KDF. This code adds no check of its own.
// Implementations that interoperate with this one must agree on
// rejecting zero outputs.
func (id *Identity) DH(theirExchangePub [32]byte) ([32]byte, error) {
	return dhRaw(id.xPriv, theirExchangePub)
}

// ExchangePublic returns the X25519 public key.
func (id *Identity) ExchangePublic() [32]byte { return id.xPub }

// SigningPublic returns the raw 32-byte Ed25519 public key.
func (id *Identity) SigningPublic() [32]byte {
	var out [32]byte
	copy(out[:], id.edPub)
	return out
}

// Zero best-effort wipes the Identity's private key material. Name and
// the public keys are left intact, but Sign and DH afterwards operate on
// the zeroed private keys and no longer act for this identity; it exists
// for callers that are done with the Identity and want to shrink its
// lifetime in memory, per spec.md §5.
func (id *Identity) Zero() {
	memzero.Zero(id.edPriv)
	memzero.Zero(id.xPriv[:])
}

package waterscape

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/dylankamski/waterscape/internal/wire"
)

// ProtocolVersion is the only envelope version this implementation
// produces or accepts.
const ProtocolVersion uint8 = 1

// Envelope is the immutable wire record binding a ciphertext to a
// sender and (implicitly) a receiver. Field order matches spec.md §3;
// JSON field order on the wire is not significant (spec.md §4.5).
type Envelope struct {
	Version      uint8
	Nonce        [12]byte
	SenderKey    [32]byte // sender's Ed25519 public key
	EphemeralKey [32]byte // sender's ephemeral X25519 public key; all-zero in group mode
	Ciphertext   []byte
	Signature    [64]byte // detached Ed25519 signature over Ciphertext
}

// MarshalBinary serialises the envelope to its canonical JSON wire form.
func (e Envelope) MarshalBinary() ([]byte, error) {
	return wire.MarshalEnvelope(e.Version, e.Nonce, e.SenderKey, e.EphemeralKey, e.Ciphertext, e.Signature)
}

// UnmarshalEnvelope parses data into an Envelope, rejecting unknown
// fields (spec.md §4.5).
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	version, nonce, senderKey, ephemeralKey, ciphertext, signature, err := wire.UnmarshalEnvelope(data)
	if err != nil {
		return Envelope{}, newError(KindMalformedEnvelope, err)
	}
	return Envelope{
		Version:      version,
		Nonce:        nonce,
		SenderKey:    senderKey,
		EphemeralKey: ephemeralKey,
		Ciphertext:   ciphertext,
		Signature:    signature,
	}, nil
}

// sealEnvelope implements spec.md §4.4 Encrypt: serialise payload,
// AEAD-seal it with key under a fresh random nonce, then sign the
// ciphertext (not the plaintext) exactly as it appears on the wire.
func sealEnvelope(rng io.Reader, key []byte, payload Payload, sender *Identity, ephemeralPub [32]byte) (Envelope, error) {
	plaintext, err := wire.MarshalPayload(payload.Content, payload.Timestamp, payload.Metadata)
	if err != nil {
		return Envelope{}, newError(KindMalformedPayload, err)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return Envelope{}, newError(KindDecryptFailed, err)
	}

	var nonce [12]byte
	if _, err := io.ReadFull(rng, nonce[:]); err != nil {
		return Envelope{}, newError(KindRngFailure, err)
	}

	ciphertext := aead.Seal(nil, nonce[:], plaintext, nil)
	signature := sender.Sign(ciphertext)

	env := Envelope{
		Version:      ProtocolVersion,
		Nonce:        nonce,
		SenderKey:    sender.SigningPublic(),
		EphemeralKey: ephemeralPub,
		Ciphertext:   ciphertext,
	}
	copy(env.Signature[:], signature)
	return env, nil
}

// verifyEnvelope implements spec.md §4.4 Decrypt steps 1-3: version,
// declared-sender, and signature checks. It does no key agreement or AEAD
// work, so callers can reject tampered or unauthenticated envelopes before
// spending a scalar multiplication or opening a cipher on attacker-
// controlled bytes (spec.md §4.4's ordering rationale).
func verifyEnvelope(env Envelope, expectedSender *[32]byte) error {
	if env.Version != ProtocolVersion {
		return newError(KindUnsupportedVersion, nil)
	}
	if expectedSender != nil && *expectedSender != env.SenderKey {
		return newError(KindSenderMismatch, nil)
	}
	if !Verify(env.SenderKey, env.Ciphertext, env.Signature[:]) {
		return newError(KindBadSignature, nil)
	}
	return nil
}

// decryptEnvelope implements spec.md §4.4 Decrypt steps 4-6, given the
// already-derived AEAD key (point-to-point vs group derivation happens in
// the caller, since the key material differs). Callers must call
// verifyEnvelope first.
func decryptEnvelope(env Envelope, key []byte) (Payload, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return Payload{}, newError(KindDecryptFailed, err)
	}
	plaintext, err := aead.Open(nil, env.Nonce[:], env.Ciphertext, nil)
	if err != nil {
		return Payload{}, newError(KindDecryptFailed, err)
	}

	content, timestamp, metadata, err := wire.UnmarshalPayload(plaintext)
	if err != nil {
		return Payload{}, newError(KindMalformedPayload, err)
	}
	return Payload{Content: content, Timestamp: timestamp, Metadata: metadata}, nil
}

// openEnvelope verifies then decrypts in one call, for callers that
// already have the AEAD key before any version/sender/signature checks
// are meaningful to them (e.g. GroupSession.Decode, where the key is
// known up front and not derived from envelope-carried material).
func openEnvelope(env Envelope, expectedSender *[32]byte, key []byte) (Payload, error) {
	if err := verifyEnvelope(env, expectedSender); err != nil {
		return Payload{}, err
	}
	return decryptEnvelope(env, key)
}

// defaultRand is the production randomness source; tests inject a
// deterministic io.Reader instead (spec.md §9).
var defaultRand io.Reader = rand.Reader

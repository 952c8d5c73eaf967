package waterscape

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dylankamski/waterscape/internal/kdf"
	"github.com/dylankamski/waterscape/internal/wslog"
	"github.com/dylankamski/waterscape/internal/zw"
)

// Encode implements spec.md §4.6: derive a point-to-point AEAD key via
// X3DH-less ephemeral ECDH, seal and sign a Payload carrying secret,
// serialise it, and embed the result into cover.
func Encode(sender *Identity, recipient PublicIdentity, cover, secret string) (string, error) {
	return encode(defaultRand, sender, recipient, cover, secret)
}

func encode(rng io.Reader, sender *Identity, recipient PublicIdentity, cover, secret string) (string, error) {
	logger := wslog.Log.WithFields(logrus.Fields{
		"func":      "Encode",
		"sender":    sender.Fingerprint(),
		"recipient": recipient.Fingerprint(),
	})

	ephPriv, ephPub, err := generateX25519Pair(rng)
	if err != nil {
		logger.WithError(err).Debug("ephemeral key generation failed")
		return "", err
	}

	shared, err := dhRaw(ephPriv, recipient.ExchangeKey)
	if err != nil {
		logger.WithError(err).Debug("ephemeral ECDH failed")
		return "", err
	}
	key, err := kdf.PointToPoint(shared)
	if err != nil {
		logger.WithError(err).Debug("key derivation failed")
		return "", newError(KindRngFailure, err)
	}

	payload := Payload{Content: secret, Timestamp: uint64(time.Now().Unix())}
	env, err := sealEnvelope(rng, key, payload, sender, ephPub)
	if err != nil {
		logger.WithError(err).Debug("envelope seal failed")
		return "", err
	}

	data, err := env.MarshalBinary()
	if err != nil {
		logger.WithError(err).Debug("envelope marshal failed")
		return "", newError(KindMalformedEnvelope, err)
	}

	stego, err := zw.Embed(cover, data)
	if err != nil {
		logger.WithError(err).Debug("zw embed failed")
		if err == zw.ErrCoverTooShort {
			return "", newError(KindCoverTooShort, nil)
		}
		return "", newError(KindMalformedStream, err)
	}
	logger.Debug("encoded message")
	return stego, nil
}

// Decode implements spec.md §4.6: extract the embedded envelope,
// deserialise it, derive the point-to-point key from the receiver's
// identity and the envelope's ephemeral key, and decrypt.
//
// senderPub, when non-nil, pins the expected sender; when nil the
// envelope's own sender_key is trusted at face value (the caller is
// responsible for deciding whether that's appropriate).
func Decode(receiver *Identity, senderPub *PublicIdentity, stego string) (string, error) {
	payload, err := decode(receiver, senderPub, stego)
	if err != nil {
		return "", err
	}
	return payload.Content, nil
}

func decode(receiver *Identity, senderPub *PublicIdentity, stego string) (Payload, error) {
	logger := wslog.Log.WithFields(logrus.Fields{
		"func":     "Decode",
		"receiver": receiver.Fingerprint(),
	})

	if !zw.HasHidden(stego) {
		logger.Debug("no hidden message")
		return Payload{}, newError(KindNoHiddenMessage, nil)
	}
	data, err := zw.Extract(stego)
	if err != nil {
		logger.WithError(err).Debug("zw extract failed")
		return Payload{}, newError(KindMalformedStream, err)
	}

	env, err := UnmarshalEnvelope(data)
	if err != nil {
		logger.WithError(err).Debug("envelope unmarshal failed")
		return Payload{}, err
	}

	// Reject a tampered or unauthenticated envelope before spending the
	// ECDH and AEAD work below on attacker-controlled bytes (spec.md
	// §4.4 steps 1-3 before steps 4-6).
	var expected *[32]byte
	if senderPub != nil {
		sk := senderPub.SigningKey
		expected = &sk
	}
	if err := verifyEnvelope(env, expected); err != nil {
		logger.WithError(err).Debug("envelope verification failed")
		return Payload{}, err
	}

	shared, err := receiver.DH(env.EphemeralKey)
	if err != nil {
		logger.WithError(err).Debug("ECDH failed")
		return Payload{}, err
	}
	key, err := kdf.PointToPoint(shared)
	if err != nil {
		logger.WithError(err).Debug("key derivation failed")
		return Payload{}, newError(KindDecryptFailed, err)
	}

	payload, err := decryptEnvelope(env, key)
	if err != nil {
		logger.WithError(err).Debug("decrypt failed")
		return Payload{}, err
	}
	logger.Debug("decoded message")
	return payload, nil
}

// HasHiddenMessage reports whether text contains a complete START/END
// marker pair (spec.md §4.2).
func HasHiddenMessage(text string) bool {
	return zw.HasHidden(text)
}

// VisibleText returns text with every zero-width alphabet code point
// removed (spec.md §4.2).
func VisibleText(text string) string {
	return zw.VisibleText(text)
}

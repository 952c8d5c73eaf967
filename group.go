package waterscape

import (
	"io"
	"time"

	"github.com/dylankamski/waterscape/internal/kdf"
	"github.com/dylankamski/waterscape/internal/zw"
)

// GroupSession is the shared-key variant of the pipeline: every message
// is encrypted with a symmetric key that is a pure function of the
// creator's Ed25519 signing public key and the group name (spec.md
// §4.3, §4.7). Membership is advisory; holding the key is the only
// cryptographic gate, and the construction is explicitly not
// forward-secret (spec.md §9) — this is inherited from the
// specification, not fixed here.
type GroupSession struct {
	Name    string
	Creator PublicIdentity
	Members []PublicIdentity

	key [32]byte
}

// NewGroupSession is called by the group's creator.
func NewGroupSession(name string, creator *Identity, members []PublicIdentity) *GroupSession {
	return &GroupSession{
		Name:    name,
		Creator: creator.Public(),
		Members: members,
		key:     kdf.Group(creator.SigningPublic(), name),
	}
}

// JoinGroupSession is called by a member who was told the creator's
// PublicIdentity and the group name out of band; it derives the
// identical key without needing the creator's private material.
func JoinGroupSession(name string, creator PublicIdentity, members []PublicIdentity) *GroupSession {
	return &GroupSession{
		Name:    name,
		Creator: creator,
		Members: members,
		key:     kdf.Group(creator.SigningKey, name),
	}
}

// Encode encrypts secret into cover using the group key. The ephemeral
// key field is zeroed and ignored on decrypt; metadata is set to the
// group name so recipients can confirm the message belongs to this
// group before trusting the decryption (spec.md §4.7).
func (g *GroupSession) Encode(sender *Identity, cover, secret string) (string, error) {
	return g.encode(defaultRand, sender, cover, secret)
}

func (g *GroupSession) encode(rngArg io.Reader, sender *Identity, cover, secret string) (string, error) {
	name := g.Name
	payload := Payload{Content: secret, Timestamp: uint64(time.Now().Unix()), Metadata: &name}

	var zeroEphemeral [32]byte
	env, err := sealEnvelope(rngArg, g.key[:], payload, sender, zeroEphemeral)
	if err != nil {
		return "", err
	}

	data, err := env.MarshalBinary()
	if err != nil {
		return "", newError(KindMalformedEnvelope, err)
	}

	stego, err := zw.Embed(cover, data)
	if err != nil {
		if err == zw.ErrCoverTooShort {
			return "", newError(KindCoverTooShort, nil)
		}
		return "", newError(KindMalformedStream, err)
	}
	return stego, nil
}

// Decode recovers and decrypts a group message. The sender is whoever
// signed the envelope; the caller does not pre-declare them (spec.md
// §4.7). It rejects envelopes whose metadata doesn't name this group or
// whose ephemeral key isn't all-zero.
func (g *GroupSession) Decode(stego string) (string, error) {
	if !zw.HasHidden(stego) {
		return "", newError(KindNoHiddenMessage, nil)
	}
	data, err := zw.Extract(stego)
	if err != nil {
		return "", newError(KindMalformedStream, err)
	}

	env, err := UnmarshalEnvelope(data)
	if err != nil {
		return "", err
	}

	var zeroEphemeral [32]byte
	if env.EphemeralKey != zeroEphemeral {
		return "", newError(KindNotAGroupMessage, nil)
	}

	payload, err := openEnvelope(env, nil, g.key[:])
	if err != nil {
		return "", err
	}
	if payload.Metadata == nil || *payload.Metadata != g.Name {
		return "", newError(KindNotAGroupMessage, nil)
	}
	return payload.Content, nil
}

package waterscape

import (
	"bytes"
	"testing"
)

func TestSealOpenEnvelope_RoundTrip(t *testing.T) {
	sender, err := NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	key := bytes.Repeat([]byte{0x42}, 32)
	payload := Payload{Content: "meet at dawn", Timestamp: 100}

	env, err := sealEnvelope(defaultRand, key, payload, sender, sender.ExchangePublic())
	if err != nil {
		t.Fatalf("sealEnvelope: %v", err)
	}

	got, err := openEnvelope(env, nil, key)
	if err != nil {
		t.Fatalf("openEnvelope: %v", err)
	}
	if got.Content != payload.Content || got.Timestamp != payload.Timestamp {
		t.Fatalf("payload mismatch: got %+v want %+v", got, payload)
	}
}

func TestOpenEnvelope_WrongKey_Fails(t *testing.T) {
	sender, err := NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	key := bytes.Repeat([]byte{0x01}, 32)
	wrongKey := bytes.Repeat([]byte{0x02}, 32)

	env, err := sealEnvelope(defaultRand, key, Payload{Content: "x"}, sender, sender.ExchangePublic())
	if err != nil {
		t.Fatalf("sealEnvelope: %v", err)
	}
	if _, err := openEnvelope(env, nil, wrongKey); !IsKind(err, KindDecryptFailed) {
		t.Fatalf("want KindDecryptFailed, got %v", err)
	}
}

func TestOpenEnvelope_TamperedCiphertext_FailsSignature(t *testing.T) {
	sender, err := NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	key := bytes.Repeat([]byte{0x01}, 32)

	env, err := sealEnvelope(defaultRand, key, Payload{Content: "x"}, sender, sender.ExchangePublic())
	if err != nil {
		t.Fatalf("sealEnvelope: %v", err)
	}
	env.Ciphertext[0] ^= 0xFF

	if _, err := openEnvelope(env, nil, key); !IsKind(err, KindBadSignature) {
		t.Fatalf("want KindBadSignature, got %v", err)
	}
}

func TestOpenEnvelope_SenderMismatch(t *testing.T) {
	sender, err := NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	other, err := NewIdentity("mallory")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	key := bytes.Repeat([]byte{0x01}, 32)

	env, err := sealEnvelope(defaultRand, key, Payload{Content: "x"}, sender, sender.ExchangePublic())
	if err != nil {
		t.Fatalf("sealEnvelope: %v", err)
	}
	expected := other.SigningPublic()
	if _, err := openEnvelope(env, &expected, key); !IsKind(err, KindSenderMismatch) {
		t.Fatalf("want KindSenderMismatch, got %v", err)
	}
}

func TestOpenEnvelope_UnsupportedVersion(t *testing.T) {
	sender, err := NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	key := bytes.Repeat([]byte{0x01}, 32)

	env, err := sealEnvelope(defaultRand, key, Payload{Content: "x"}, sender, sender.ExchangePublic())
	if err != nil {
		t.Fatalf("sealEnvelope: %v", err)
	}
	env.Version = 99

	if _, err := openEnvelope(env, nil, key); !IsKind(err, KindUnsupportedVersion) {
		t.Fatalf("want KindUnsupportedVersion, got %v", err)
	}
}

func TestEnvelope_MarshalUnmarshal_RoundTrip(t *testing.T) {
	sender, err := NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	key := bytes.Repeat([]byte{0x01}, 32)
	env, err := sealEnvelope(defaultRand, key, Payload{Content: "hi", Timestamp: 5}, sender, sender.ExchangePublic())
	if err != nil {
		t.Fatalf("sealEnvelope: %v", err)
	}

	data, err := env.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	got, err := UnmarshalEnvelope(data)
	if err != nil {
		t.Fatalf("UnmarshalEnvelope: %v", err)
	}
	if got.Version != env.Version || got.SenderKey != env.SenderKey || !bytes.Equal(got.Ciphertext, env.Ciphertext) {
		t.Fatalf("envelope mismatch after round trip")
	}
}

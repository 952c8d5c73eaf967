// Package wire serialises Waterscape envelopes and payloads to and from
// a self-describing JSON document (spec.md §4.5). Byte-array fields are
// encoded as arrays of unsigned bytes 0..255 rather than relying on
// encoding/json's default base64 []byte encoding, for interoperability
// with non-Go implementations that decode the field names literally.
// Decoding rejects unknown top-level fields, mirroring the teacher's
// strict round-trip JSON helpers in internal/store.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelopeDoc is the on-wire shape of an Envelope.
type envelopeDoc struct {
	Version      uint8 `json:"version"`
	Nonce        []int `json:"nonce"`
	SenderKey    []int `json:"sender_key"`
	EphemeralKey []int `json:"ephemeral_key"`
	Ciphertext   []int `json:"ciphertext"`
	Signature    []int `json:"signature"`
}

// payloadDoc is the on-wire shape of a Payload.
type payloadDoc struct {
	Content   string  `json:"content"`
	Timestamp uint64  `json:"timestamp"`
	Metadata  *string `json:"metadata,omitempty"`
}

// MarshalEnvelope serialises the envelope fields in spec.md §3's
// declared order's byte contents (field order in the JSON object itself
// is not significant per spec.md §4.5).
func MarshalEnvelope(version uint8, nonce [12]byte, senderKey, ephemeralKey [32]byte, ciphertext []byte, signature [64]byte) ([]byte, error) {
	doc := envelopeDoc{
		Version:      version,
		Nonce:        toInts(nonce[:]),
		SenderKey:    toInts(senderKey[:]),
		EphemeralKey: toInts(ephemeralKey[:]),
		Ciphertext:   toInts(ciphertext),
		Signature:    toInts(signature[:]),
	}
	return json.Marshal(doc)
}

// UnmarshalEnvelope parses data produced by MarshalEnvelope (or any
// conformant implementation's equivalent) back into its fields.
func UnmarshalEnvelope(data []byte) (version uint8, nonce [12]byte, senderKey, ephemeralKey [32]byte, ciphertext []byte, signature [64]byte, err error) {
	var doc envelopeDoc
	if err = decodeStrict(data, &doc); err != nil {
		return
	}
	version = doc.Version
	if err = fromIntsExact(doc.Nonce, nonce[:]); err != nil {
		return
	}
	if err = fromIntsExact(doc.SenderKey, senderKey[:]); err != nil {
		return
	}
	if err = fromIntsExact(doc.EphemeralKey, ephemeralKey[:]); err != nil {
		return
	}
	if err = fromIntsExact(doc.Signature, signature[:]); err != nil {
		return
	}
	ciphertext, err = fromInts(doc.Ciphertext)
	return
}

// MarshalPayload serialises a Payload. metadata is omitted when nil.
func MarshalPayload(content string, timestamp uint64, metadata *string) ([]byte, error) {
	return json.Marshal(payloadDoc{Content: content, Timestamp: timestamp, Metadata: metadata})
}

// UnmarshalPayload parses data produced by MarshalPayload.
func UnmarshalPayload(data []byte) (content string, timestamp uint64, metadata *string, err error) {
	var doc payloadDoc
	if err = decodeStrict(data, &doc); err != nil {
		return
	}
	return doc.Content, doc.Timestamp, doc.Metadata, nil
}

// decodeStrict rejects unknown top-level fields, per spec.md §4.5.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON document")
	}
	return nil
}

func toInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

// fromInts validates every element is a byte value and returns the
// decoded slice.
func fromInts(ints []int) ([]byte, error) {
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("byte value %d out of range at index %d", v, i)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// fromIntsExact validates ints decodes to exactly len(dst) bytes and
// copies it into dst.
func fromIntsExact(ints []int, dst []byte) error {
	b, err := fromInts(ints)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

// Package waterscape hides authenticated, confidential messages inside the
// invisible whitespace of ordinary cover text.
//
// A sender encrypts a payload with an ephemeral X25519 key exchange (or a
// shared group key), signs the ciphertext with their Ed25519 identity key,
// serialises the result into a compact envelope, and embeds that envelope
// into a cover string using zero-width Unicode code points. The visible
// text is untouched; only a reader stripping zero-width characters, and
// holding the right key material, can recover the secret.
//
// # Layers
//
//   - internal/zw embeds and extracts an arbitrary byte string from a host
//     string using the zero-width alphabet.
//   - internal/kdf derives AEAD keys, point-to-point via X25519+HKDF or for
//     a group via a key bound to the creator and the group name.
//   - internal/wire serialises envelopes and payloads to and from JSON.
//
// The three layers compose into the public surface below: Encode, Decode,
// HasHiddenMessage, VisibleText, and the Identity / GroupSession types.
package waterscape

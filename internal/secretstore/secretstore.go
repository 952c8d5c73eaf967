// Package secretstore encrypts arbitrary plaintext at rest behind a
// passphrase, for persisting an Identity's private key material between
// process invocations (spec.md SPEC_FULL §3, C8). Grounded directly on
// the teacher's internal/store/crypto_envelope.go: scrypt for the
// passphrase KDF, chacha20poly1305 for the AEAD, a small versioned JSON
// blob on disk.
package secretstore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const blobFormatVersion = 1

// ErrWrongPassphrase is returned when the passphrase is incorrect or
// the ciphertext has been modified or corrupted; the two cases are
// deliberately indistinguishable.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted identity")

// blob is the on-disk JSON structure holding ciphertext and KDF
// parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_n"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// scryptParamsDefault mirrors the teacher's tunables.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// Encrypt derives a key from passphrase and seals plaintext into a JSON
// blob.
func Encrypt(passphrase string, plaintext []byte) ([]byte, error) {
	N, r, p := scryptParamsDefault()

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	// The nonce rides along inside the ciphertext field; scrypt's random
	// salt already guarantees a fresh AEAD key per blob, so a random
	// per-encryption nonce on top is simple belt-and-braces.
	ct := aead.Seal(nonce, nonce, plaintext, salt)

	return json.Marshal(blob{V: blobFormatVersion, Salt: salt, N: N, R: r, P: p, Cipher: ct})
}

// Decrypt opens a JSON blob produced by Encrypt using a key derived
// from passphrase.
func Decrypt(passphrase string, data []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(data, &bl); err != nil {
		return nil, fmt.Errorf("parse keystore blob: %w", err)
	}
	if bl.V > blobFormatVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", bl.V)
	}

	key, err := scrypt.Key([]byte(passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(bl.Cipher) < chacha20poly1305.NonceSize {
		return nil, ErrWrongPassphrase
	}
	nonce, ct := bl.Cipher[:chacha20poly1305.NonceSize], bl.Cipher[chacha20poly1305.NonceSize:]
	pt, err := aead.Open(nil, nonce, ct, bl.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// SaveToFile encrypts plaintext and writes it via a temp file then
// rename, the same atomic-write idiom the teacher's file store uses.
func SaveToFile(path, passphrase string, plaintext []byte) error {
	blobBytes, err := Encrypt(passphrase, plaintext)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(blobBytes); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// LoadFromFile reads and decrypts a blob written by SaveToFile.
func LoadFromFile(path, passphrase string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decrypt(passphrase, data)
}

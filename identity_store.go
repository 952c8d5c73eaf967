package waterscape

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dylankamski/waterscape/internal/secretstore"
)

const minPassphraseLength = 12

// ErrWeakPassphrase is returned by SaveIdentityFile when the passphrase
// fails the strength policy: at least minPassphraseLength characters,
// with upper, lower, digit, and symbol classes all represented.
var ErrWeakPassphrase = fmt.Errorf(
	"passphrase is too weak (must be at least %d characters and include upper, lower, number, and symbol)",
	minPassphraseLength,
)

func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if utf8.RuneCountInString(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// identityDTO is the plaintext serialisation of an Identity's private
// key material, sealed at rest by SaveIdentityFile (spec.md SPEC_FULL
// §3, C8). It never touches disk unencrypted.
type identityDTO struct {
	Name   string `json:"name"`
	EdPriv []byte `json:"ed_priv"`
	EdPub  []byte `json:"ed_pub"`
	XPriv  []byte `json:"x_priv"`
	XPub   []byte `json:"x_pub"`
}

// SaveIdentityFile encrypts id's private key material under passphrase
// and writes it to path, grounded on the teacher's key-file store.
func SaveIdentityFile(path, passphrase string, id *Identity) error {
	if !isSecurePassphrase(passphrase) {
		return ErrWeakPassphrase
	}
	dto := identityDTO{
		Name:   id.Name,
		EdPriv: []byte(id.edPriv),
		EdPub:  []byte(id.edPub),
		XPriv:  id.xPriv[:],
		XPub:   id.xPub[:],
	}
	plaintext, err := json.Marshal(dto)
	if err != nil {
		return newError(KindInvalidIdentity, err)
	}
	if err := secretstore.SaveToFile(path, passphrase, plaintext); err != nil {
		return newError(KindInvalidIdentity, err)
	}
	return nil
}

// LoadIdentityFile decrypts and parses an Identity previously written by
// SaveIdentityFile. A wrong passphrase and a corrupted file are
// indistinguishable, matching secretstore.ErrWrongPassphrase.
func LoadIdentityFile(path, passphrase string) (*Identity, error) {
	plaintext, err := secretstore.LoadFromFile(path, passphrase)
	if err != nil {
		return nil, newError(KindInvalidIdentity, err)
	}

	var dto identityDTO
	if err := json.Unmarshal(plaintext, &dto); err != nil {
		return nil, newError(KindInvalidIdentity, err)
	}
	if len(dto.XPriv) != 32 || len(dto.XPub) != 32 {
		return nil, newError(KindInvalidIdentity, nil)
	}

	id := &Identity{
		Name:   dto.Name,
		edPriv: ed25519.PrivateKey(dto.EdPriv),
		edPub:  ed25519.PublicKey(dto.EdPub),
	}
	copy(id.xPriv[:], dto.XPriv)
	copy(id.xPub[:], dto.XPub)
	return id, nil
}

package secretstore_test

import (
	"path/filepath"
	"testing"

	"github.com/dylankamski/waterscape/internal/secretstore"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	plaintext := []byte("super secret identity bytes")

	blob, err := secretstore.Encrypt("correct horse", plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	got, err := secretstore.Decrypt("correct horse", blob)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(got) != string(plaintext) {
		t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestDecrypt_WrongPassphrase_Fails(t *testing.T) {
	blob, err := secretstore.Encrypt("correct horse", []byte("data"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := secretstore.Decrypt("incorrect horse", blob); err != secretstore.ErrWrongPassphrase {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestSaveLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	plaintext := []byte("file-backed secret")

	if err := secretstore.SaveToFile(path, "pw", plaintext); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	got, err := secretstore.LoadFromFile(path, "pw")
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if string(got) != string(plaintext) {
		t.Fatalf("round trip mismatch: got %q want %q", got, plaintext)
	}
}

func TestLoadFromFile_WrongPassphrase_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	if err := secretstore.SaveToFile(path, "pw", []byte("data")); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	if _, err := secretstore.LoadFromFile(path, "wrong"); err != secretstore.ErrWrongPassphrase {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

package waterscape_test

import (
	"path/filepath"
	"testing"

	"github.com/dylankamski/waterscape"
)

func TestSaveLoadIdentityFile_RoundTrip(t *testing.T) {
	id, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	path := filepath.Join(t.TempDir(), "identity.json")

	if err := waterscape.SaveIdentityFile(path, "Correct-Horse-9-Battery", id); err != nil {
		t.Fatalf("SaveIdentityFile: %v", err)
	}

	got, err := waterscape.LoadIdentityFile(path, "Correct-Horse-9-Battery")
	if err != nil {
		t.Fatalf("LoadIdentityFile: %v", err)
	}
	if got.Fingerprint() != id.Fingerprint() {
		t.Fatalf("fingerprint mismatch after reload: got %s want %s", got.Fingerprint(), id.Fingerprint())
	}
	if got.ExchangePublic() != id.ExchangePublic() {
		t.Fatal("exchange public key mismatch after reload")
	}
}

func TestSaveIdentityFile_WeakPassphrase_Rejected(t *testing.T) {
	id, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	path := filepath.Join(t.TempDir(), "identity.json")

	if err := waterscape.SaveIdentityFile(path, "short", id); err != waterscape.ErrWeakPassphrase {
		t.Fatalf("want ErrWeakPassphrase, got %v", err)
	}
}

func TestLoadIdentityFile_WrongPassphrase_Fails(t *testing.T) {
	id, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	path := filepath.Join(t.TempDir(), "identity.json")

	if err := waterscape.SaveIdentityFile(path, "Correct-Horse-9-Battery", id); err != nil {
		t.Fatalf("SaveIdentityFile: %v", err)
	}
	if _, err := waterscape.LoadIdentityFile(path, "Wrong-Horse-9-Battery"); !waterscape.IsKind(err, waterscape.KindInvalidIdentity) {
		t.Fatalf("want KindInvalidIdentity, got %v", err)
	}
}

func TestReloadedIdentity_CanDecodeMessagesToOriginal(t *testing.T) {
	alice, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	bob, err := waterscape.NewIdentity("bob")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bob.json")
	if err := waterscape.SaveIdentityFile(path, "Correct-Horse-9-Battery", bob); err != nil {
		t.Fatalf("SaveIdentityFile: %v", err)
	}

	stego, err := waterscape.Encode(alice, bob.Public(), "an uneventful day by the shore", "the package is ready")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	reloadedBob, err := waterscape.LoadIdentityFile(path, "Correct-Horse-9-Battery")
	if err != nil {
		t.Fatalf("LoadIdentityFile: %v", err)
	}
	got, err := waterscape.Decode(reloadedBob, nil, stego)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "the package is ready" {
		t.Fatalf("decoded secret mismatch: got %q", got)
	}
}

package waterscape_test

import (
	"testing"

	"github.com/dylankamski/waterscape"
)

func TestGroupSession_RoundTrip(t *testing.T) {
	creator, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	member, err := waterscape.NewIdentity("bob")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	members := []waterscape.PublicIdentity{creator.Public(), member.Public()}

	creatorSession := waterscape.NewGroupSession("book-club", creator, members)
	memberSession := waterscape.JoinGroupSession("book-club", creator.Public(), members)

	stego, err := creatorSession.Encode(creator, "the weather has been pleasant lately", "next meeting Thursday")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := memberSession.Decode(stego)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "next meeting Thursday" {
		t.Fatalf("decoded secret mismatch: got %q", got)
	}
}

func TestGroupSession_AnyMemberCanPost(t *testing.T) {
	creator, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	member, err := waterscape.NewIdentity("bob")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	members := []waterscape.PublicIdentity{creator.Public(), member.Public()}

	memberSession := waterscape.JoinGroupSession("book-club", creator.Public(), members)

	stego, err := memberSession.Encode(member, "a quiet afternoon for reading", "bring the sequel")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	creatorSession := waterscape.NewGroupSession("book-club", creator, members)
	got, err := creatorSession.Decode(stego)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "bring the sequel" {
		t.Fatalf("decoded secret mismatch: got %q", got)
	}
}

func TestGroupSession_WrongGroupName_Fails(t *testing.T) {
	creator, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	members := []waterscape.PublicIdentity{creator.Public()}

	bookClub := waterscape.NewGroupSession("book-club", creator, members)
	chessClub := waterscape.JoinGroupSession("chess-club", creator.Public(), members)

	stego, err := bookClub.Encode(creator, "a pleasant afternoon outside", "page 42")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := chessClub.Decode(stego); err == nil {
		t.Fatal("expected decode under a different group name to fail")
	}
}

func TestGroupSession_NotAGroupMessage(t *testing.T) {
	creator, err := waterscape.NewIdentity("alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	other, err := waterscape.NewIdentity("bob")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}

	session := waterscape.NewGroupSession("book-club", creator, []waterscape.PublicIdentity{creator.Public()})

	directStego, err := waterscape.Encode(creator, other.Public(), "the garden needs watering soon", "point-to-point message")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := session.Decode(directStego); !waterscape.IsKind(err, waterscape.KindDecryptFailed) && !waterscape.IsKind(err, waterscape.KindNotAGroupMessage) {
		t.Fatalf("expected a group-mismatch or decrypt failure, got %v", err)
	}
}

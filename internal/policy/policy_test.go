package policy

import (
	"testing"

	"github.com/streamvault/watchlist-api/internal/auth"
)

var (
	anon   *auth.Identity
	member = &auth.Identity{UserID: "user-1", Username: "alice"}
	admin  = &auth.Identity{UserID: "user-2", Username: "root", Admin: true}
)

func TestCatalogWrite(t *testing.T) {
	if err := CatalogWrite(anon); err != ErrUnauthenticated {
		t.Fatalf("anonymous: got %v, want ErrUnauthenticated", err)
	}
	if err := CatalogWrite(member); err != ErrForbidden {
		t.Fatalf("member: got %v, want ErrForbidden", err)
	}
	if err := CatalogWrite(admin); err != nil {
		t.Fatalf("admin: got %v, want nil", err)
	}
}

func TestReviewCreate(t *testing.T) {
	if err := ReviewCreate(anon); err != ErrUnauthenticated {
		t.Fatalf("anonymous: got %v, want ErrUnauthenticated", err)
	}
	if err := ReviewCreate(member); err != nil {
		t.Fatalf("member: got %v, want nil", err)
	}
	if err := ReviewCreate(admin); err != nil {
		t.Fatalf("admin: got %v, want nil", err)
	}
}

func TestReviewWrite(t *testing.T) {
	const authorID = "user-1"

	if err := ReviewWrite(anon, authorID); err != ErrUnauthenticated {
		t.Fatalf("anonymous: got %v, want ErrUnauthenticated", err)
	}
	if err := ReviewWrite(member, authorID); err != nil {
		t.Fatalf("author: got %v, want nil", err)
	}
	if err := ReviewWrite(admin, authorID); err != nil {
		t.Fatalf("admin: got %v, want nil", err)
	}

	other := &auth.Identity{UserID: "user-3", Username: "mallory"}
	if err := ReviewWrite(other, authorID); err != ErrForbidden {
		t.Fatalf("non-author: got %v, want ErrForbidden", err)
	}
}

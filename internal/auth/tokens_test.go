package auth

import (
	"testing"
	"time"

	"github.com/streamvault/watchlist-api/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	user := domain.User{ID: "user-1", Username: "alice", Admin: true}
	token, err := mgr.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, err := mgr.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.UserID != "user-1" || id.Username != "alice" || !id.Admin {
		t.Fatalf("resolved identity = %+v", id)
	}
}

func TestResolveRejectsGarbage(t *testing.T) {
	mgr, _ := NewTokenManager("test-secret", time.Hour)
	if _, err := mgr.Resolve("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("Resolve(garbage) error = %v, want ErrInvalidToken", err)
	}
}

func TestResolveRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(domain.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Resolve(token); err != ErrInvalidToken {
		t.Fatalf("Resolve error = %v, want ErrInvalidToken", err)
	}
}

func TestResolveRejectsExpired(t *testing.T) {
	mgr, _ := NewTokenManager("test-secret", -time.Minute)
	token, err := mgr.Issue(domain.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := mgr.Resolve(token); err != ErrInvalidToken {
		t.Fatalf("Resolve(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Password@123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "Password@123") {
		t.Fatal("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("CheckPassword accepted a wrong password")
	}
}

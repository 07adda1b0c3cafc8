package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	s := NewTokenSigner("secret", time.Hour)
	id := uuid.New()

	token, expires, err := s.Sign(id, "admin")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("Expected expiry in the future, got %v", expires)
	}

	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.SessionID != id.String() || claims.Username != "admin" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestTokenSignerRejects(t *testing.T) {
	s := NewTokenSigner("secret", time.Hour)
	token, _, _ := s.Sign(uuid.New(), "admin")

	other := NewTokenSigner("other-secret", time.Hour)
	if _, err := other.Parse(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}

	expired := NewTokenSigner("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Sign(uuid.New(), "admin")
	if _, err := s.Parse(old); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := s.Parse("garbage"); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for garbage, got %v", err)
	}
}

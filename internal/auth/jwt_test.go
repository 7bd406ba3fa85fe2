package auth

import (
	"errors"
	"testing"
	"time"
)

func testTokenManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(TokenConfig{
		Secret: "test-secret",
		TTL:    ttl,
		Issuer: "linkmeet-test",
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := testTokenManager(time.Hour)

	token, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Verify() userID = %q, want %q", userID, "user-1")
	}
}

func TestTokenExpired(t *testing.T) {
	m := testTokenManager(-time.Minute)

	token, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := m.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := testTokenManager(time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	other := NewTokenManager(TokenConfig{Secret: "other-secret", TTL: time.Hour, Issuer: "linkmeet-test"})
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	m := testTokenManager(time.Hour)
	if _, err := m.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

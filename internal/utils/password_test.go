package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("topspin-forever", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "topspin-forever") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hash, "flat-serve") {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	tok, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(tok.Raw) != 96 {
		t.Fatalf("raw token length = %d, want 96", len(tok.Raw))
	}
	if HashRefreshRaw(tok.Raw) != HashRefreshRaw(tok.Raw) {
		t.Fatal("hashing the same token twice must agree")
	}
	if HashRefreshRaw(tok.Raw) == tok.Raw {
		t.Fatal("stored hash must differ from the raw token")
	}
}

package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "Sup3rSecret!")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "Sup3rSecret!" {
		t.Fatal("hash should not equal the plaintext")
	}

	ok, err := h.Verify(ctx, "Sup3rSecret!", hash)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("correct password should verify")
	}

	ok, err = h.Verify(ctx, "WrongPassword1!", hash)
	if err != nil {
		t.Fatalf("Verify() with wrong password error = %v", err)
	}
	if ok {
		t.Error("wrong password should not verify")
	}
}

func TestHasherMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	if _, err := h.Verify(context.Background(), "anything", "not-a-bcrypt-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
}

func TestHasherCancelledContext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	// Occupy the single gate slot so acquire must wait
	h.gate <- struct{}{}
	defer func() { <-h.gate }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "Sup3rSecret!"); err != context.Canceled {
		t.Errorf("Hash() error = %v, want context.Canceled", err)
	}
	if _, err := h.Verify(ctx, "Sup3rSecret!", "hash"); err != context.Canceled {
		t.Errorf("Verify() error = %v, want context.Canceled", err)
	}
}

func TestNewHasherClampsInputs(t *testing.T) {
	h := NewHasher(99, 0)
	if h.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, bcrypt.DefaultCost)
	}
	if cap(h.gate) != 1 {
		t.Errorf("gate capacity = %d, want 1", cap(h.gate))
	}
}

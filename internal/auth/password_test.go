package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal plaintext")
	}

	if !h.Verify("secret123", hash) {
		t.Fatal("correct password rejected")
	}
	if h.Verify("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
	if h.Verify("secret123", "not-a-bcrypt-hash") {
		t.Fatal("garbage hash accepted")
	}
}

func TestPasswordHasherCostClamped(t *testing.T) {
	t.Parallel()

	for _, cost := range []int{-1, 0, 99} {
		h := NewPasswordHasher(cost)
		if h.cost != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected fallback to default, got %d", cost, h.cost)
		}
	}
}

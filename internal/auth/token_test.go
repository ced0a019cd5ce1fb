package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"messagely/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("super-secret"), 0)
	tok, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "alice")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenCodec([]byte("right"), 0).Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = NewTokenCodec([]byte("wrong"), 0).Verify(tok)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenTampered(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), 0)
	tok, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// swap the payload segment for one asserting a different subject
	other, err := codec.Issue("mallory")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(tok, ".")
	otherParts := strings.Split(other, ".")
	forged := strings.Join([]string{parts[0], otherParts[1], parts[2]}, ".")

	if _, err := codec.Verify(forged); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered subject, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), -time.Minute)
	tok, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := codec.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), 0)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := codec.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"messagely/internal/domain"
)

// TokenCodec signs and verifies stateless session tokens. The only claim the
// application cares about is the subject (username); expiry is optional and
// enforced by the JWT library when a TTL is configured.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec from the shared signing secret. A zero ttl
// issues non-expiring tokens.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// Issue signs a token asserting the given username.
func (c *TokenCodec) Issue(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  username,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(c.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token, returning the asserted username.
// Malformed encoding, a bad signature, an unexpected signing method and expiry
// all fail closed with domain.ErrInvalidToken.
func (c *TokenCodec) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

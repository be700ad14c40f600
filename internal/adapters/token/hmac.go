package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

var (
	ErrMissingSubject = errors.New("token has no subject")
	ErrEmptySecret    = errors.New("signing secret is empty")
)

// HMAC signs and verifies HS256 access tokens whose subject is the caller
// address.
type HMAC struct {
	secret []byte
	now    func() time.Time
}

func NewHMAC(secret []byte) *HMAC {
	return &HMAC{secret: secret, now: time.Now}
}

var (
	_ ports.TokenVerifier = (*HMAC)(nil)
	_ ports.TokenIssuer   = (*HMAC)(nil)
)

func (h *HMAC) Issue(caller domain.Address, ttl time.Duration) (string, error) {
	if len(h.secret) == 0 {
		return "", ErrEmptySecret
	}
	if caller == "" {
		return "", ErrMissingSubject
	}
	now := h.now()
	claims := jwt.MapClaims{
		"sub": string(caller),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

// Verify refuses every token when the secret is empty.
func (h *HMAC) Verify(_ context.Context, tokenString string) (domain.Address, error) {
	if len(h.secret) == 0 {
		return "", ErrEmptySecret
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid token subject: %w", err)
	}
	if sub == "" {
		return "", ErrMissingSubject
	}
	return domain.Address(sub), nil
}

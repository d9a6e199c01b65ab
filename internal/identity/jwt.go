// Package identity issues and verifies the bearer tokens that gate
// checkout and the admin panel.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nikolayk812/storefront/internal/port"
)

const issuer = "storefront"

var ErrInvalidToken = errors.New("invalid token")

// Tokens signs and verifies HS256 tokens with a shared secret. Keys stay
// at this adapter level so the rest of the service never touches the
// crypto library.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

type storefrontClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (t *Tokens) Sign(subject, role string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, storefrontClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}

func (t *Tokens) Verify(tokenString string) (port.IdentityClaims, error) {
	var claims storefrontClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return port.IdentityClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return port.IdentityClaims{}, ErrInvalidToken
	}

	return port.IdentityClaims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

var ErrBadCredentials = errors.New("bad credentials")

// Login checks the supplied admin password against the configured bcrypt
// hash and issues a token on success.
type Login struct {
	passwordHash string
	tokens       *Tokens
}

func NewLogin(passwordHash string, tokens *Tokens) *Login {
	return &Login{
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

func (l *Login) Authenticate(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(l.passwordHash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}

	token, err := l.tokens.Sign(username, RoleAdmin)
	if err != nil {
		return "", err
	}

	return token, nil
}

// HashPassword is a helper for generating config-ready password hashes.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

package port

import "time"

type IdentityClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// TokenVerifier turns a bearer token into identity claims. The cart core
// only ever needs the boolean outcome (a nil error means authenticated).
type TokenVerifier interface {
	Verify(token string) (IdentityClaims, error)
}

package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Guard errors.
var (
	// ErrUnauthenticated means no usable credential is held.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden means the credential does not carry admin claims.
	ErrForbidden = errors.New("admin access required")
)

// Claims is the storefront token payload.
type Claims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// DecodeClaims decodes the claims segment of a bearer token WITHOUT
// verifying its signature. This is a pre-render latency shortcut, not a
// security boundary: the server verifies the token on every API call, and
// that check is the authoritative one.
func DecodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}
	return claims, nil
}

// Guard gates access to protected surfaces based on the held credential.
type Guard struct {
	token func() string
}

// NewGuard creates a Guard reading the credential from token.
func NewGuard(token func() string) *Guard {
	return &Guard{token: token}
}

// RequireUser permits user-only surfaces (profile, checkout). Presence of a
// decodable credential suffices.
func (g *Guard) RequireUser() error {
	token := g.token()
	if token == "" {
		return ErrUnauthenticated
	}
	if _, err := DecodeClaims(token); err != nil {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin permits admin surfaces only when the claims carry
// is_admin == true. A malformed claims segment denies access (fail closed).
func (g *Guard) RequireAdmin() error {
	token := g.token()
	if token == "" {
		return ErrUnauthenticated
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		return ErrForbidden
	}
	if !claims.IsAdmin {
		return ErrForbidden
	}
	return nil
}

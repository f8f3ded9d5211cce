// Package auth supplies the bearer credential for API calls and derives
// the caller's role from it. Token issuance and storage live outside this
// module; the server re-checks the role on every admin operation.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Roles known to the platform.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrNoToken = errors.New("no auth token configured")

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource holding a fixed token string.
type StaticToken string

// Token returns the token, or ErrNoToken when empty.
func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

type roleClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Role extracts the role claim from a bearer token without verifying the
// signature. It only gates which commands the client offers; the server
// enforces the real check. Returns "" for anything unparseable.
func Role(token string) string {
	claims := &roleClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	return claims.Role
}

// IsAdmin reports whether the token carries the admin role.
func IsAdmin(token string) bool {
	return Role(token) == RoleAdmin
}

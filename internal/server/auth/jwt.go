// Package auth mints and parses gateway API keys: HS256 JWTs carrying a
// role claim, in the style of a hosted backend's anon and service keys.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arcaives/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Role is the privilege carried by an API key.
type Role string

const (
	RoleAnon    Role = "anon"
	RoleService Role = "service_role"
)

const issuer = "arcaives"

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAnon, RoleService:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Claims includes the registered claims and the key's role.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// GenerateKey signs an API key for role. A zero validity produces a key
// without expiry.
func GenerateKey(role Role, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	rc := jwt.RegisteredClaims{
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if validity != 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: rc, Role: role})
	return token.SignedString(secretKey)
}

// RoleFromKey verifies tokenString and returns its role.
func RoleFromKey(tokenString string, secretKey []byte) (Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	role, err := ParseRole(string(claims.Role))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return role, nil
}

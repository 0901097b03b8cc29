// Package auth issues and verifies the HS256 bearer tokens that guard
// the API. Tokens carry a caller-chosen subject name and, optionally,
// the admin role; there are no other roles and no user accounts behind
// them. The /get-token endpoint that hands these out exists for
// demos and local testing, not production identity.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin is the only role the API distinguishes. Its presence in
// the role claim unlocks mutating endpoints.
const RoleAdmin = "admin"

// DemoTokenTTL is how long issued demo tokens stay valid.
const DemoTokenTTL = 365 * 24 * time.Hour

var (
	// ErrMissingToken signals an absent or malformed Authorization header.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken signals a token that failed signature, expiry or
	// issuer checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the verified content of a bearer token.
type Identity struct {
	Name    string // sub claim, caller-chosen display name
	TokenID string // jti claim, unique per issued token
	Admin   bool   // role claim equals RoleAdmin
}

// Issue builds and signs a token for name. Each token gets a fresh
// jti so that rate limiting and auditing can tell two tokens for the
// same name apart.
func Issue(secret, issuer, name string, admin bool, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": name,
		"jti": uuid.NewString(),
		"iss": issuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if admin {
		claims["role"] = RoleAdmin
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify parses and validates raw, returning the identity it encodes.
// Any failure collapses into ErrInvalidToken; callers never need to
// distinguish a bad signature from an expired token.
func Verify(secret, issuer, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	var id Identity
	if v, ok := claims["sub"].(string); ok {
		id.Name = v
	}
	if v, ok := claims["jti"].(string); ok {
		id.TokenID = v
	}
	if v, ok := claims["role"].(string); ok && v == RoleAdmin {
		id.Admin = true
	}
	return id, nil
}

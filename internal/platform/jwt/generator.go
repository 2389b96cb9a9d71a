// Package jwtmw issues and verifies the bearer tokens that guard owner-only routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret names the environment variable holding the HMAC secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// DefaultExpiration is the validity window of a login token.
const DefaultExpiration = 30 * 24 * time.Hour

// Generator signs HS256 tokens carrying a user id.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a Generator. A non-positive expiration uses DefaultExpiration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed token whose subject is userID.
func (g *Generator) GenerateToken(userID, email string) (string, error) {
	if len(g.secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := g.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"id":    userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

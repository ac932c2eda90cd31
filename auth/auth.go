// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is the lifetime of an issued bearer token
const DefaultTokenTTL = 30 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrRevokedToken       = errors.New("token revoked")
)

// GenerateID returns a new random UUID string for accounts and matches
func GenerateID() string {
	return uuid.NewString()
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password
func CheckPassword(hash, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Claims is the verified content of a bearer token
type Claims struct {
	TokenID   string `json:"jti"`
	UserID    string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

// Expiry returns the expiry as a time.Time
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// Tokens issues and verifies HS256 JWT bearer tokens carrying jti, sub and exp
type Tokens struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

// NewTokens creates a token service. A nil revoker disables logout revocation.
func NewTokens(secret string, ttl time.Duration, revoker Revoker) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}
}

// Issue creates a token for userID that expires after the configured TTL
func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates signature and expiry and returns the claims.
// It does not consult the revocation store; use Verify for that.
func (t *Tokens) Parse(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &rc,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpiredToken
	case err != nil:
		return Claims{}, ErrInvalidToken
	}
	if rc.Subject == "" || rc.ID == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{TokenID: rc.ID, UserID: rc.Subject, ExpiresAt: rc.ExpiresAt.Unix()}, nil
}

// Verify parses the token and rejects it if it has been revoked
func (t *Tokens) Verify(ctx context.Context, token string) (Claims, error) {
	claims, err := t.Parse(token)
	if err != nil {
		return Claims{}, err
	}
	if t.revoker == nil {
		return claims, nil
	}
	revoked, err := t.revoker.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return Claims{}, ErrRevokedToken
	}
	return claims, nil
}

// Revoke invalidates the token until its natural expiry
func (t *Tokens) Revoke(ctx context.Context, claims Claims) error {
	if t.revoker == nil {
		return nil
	}
	return t.revoker.Revoke(ctx, claims.TokenID, claims.Expiry())
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" {
		return "", ErrMissingToken
	}
	if !strings.HasPrefix(header, prefix) {
		return "", ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

type claimsContextKey struct{}

// WithClaims stores verified claims in the context
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

// ClaimsFromContext returns the claims stored by WithClaims
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsContextKey{}).(Claims)
	return c, ok
}

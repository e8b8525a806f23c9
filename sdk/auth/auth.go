// Package auth supplies request authentication for the backend client.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Authenticator interface for different auth methods
type Authenticator interface {
	// GetAuthHeader returns the Authorization header value
	GetAuthHeader() string
	// IsExpired checks if the credentials are past their expiry
	IsExpired() bool
	// Refresh obtains fresh credentials if possible
	Refresh() error
}

// ExpiryBuffer is how long before the real expiry a token counts as expired.
const ExpiryBuffer = time.Minute

// JWTAuth implements bearer token authentication
type JWTAuth struct {
	Token       string
	ExpiresAt   time.Time
	RefreshFunc func() (string, error)
}

// NewJWTAuth wraps a token issued by /api/auth/signin. The expiry is read
// from the token's exp claim without verifying the signature; the client
// only needs to know when to sign in again. A token without a readable exp
// never expires.
func NewJWTAuth(token string) *JWTAuth {
	return &JWTAuth{Token: token, ExpiresAt: TokenExpiry(token)}
}

// TokenExpiry returns the exp claim of token, or the zero time.
func TokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// GetAuthHeader returns the bearer header value
func (a *JWTAuth) GetAuthHeader() string {
	if a.Token == "" {
		return ""
	}
	return fmt.Sprintf("Bearer %s", a.Token)
}

// IsExpired checks if the JWT token is expired
func (a *JWTAuth) IsExpired() bool {
	if a.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(a.ExpiresAt.Add(-ExpiryBuffer))
}

// Refresh signs in again through RefreshFunc
func (a *JWTAuth) Refresh() error {
	if a.RefreshFunc == nil {
		return fmt.Errorf("no refresh function configured")
	}

	token, err := a.RefreshFunc()
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	a.Token = token
	a.ExpiresAt = TokenExpiry(token)
	return nil
}

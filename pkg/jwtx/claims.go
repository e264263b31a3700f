package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wirraway/authgate/pkg/idx"
)

const (
	// DefaultSessionTTL is the default lifetime for session tokens.
	// Matches the upstream default of one day.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultLeeway is the clock-skew tolerance applied when validating
	// exp/nbf. Time sync is never perfect.
	DefaultLeeway = 15 * time.Second
)

// Claims are the session-token claims embedded in every issued token.
// The subject is the provider-assigned external user id; roles and tenant
// come from the directory at mint time and are immutable until the token
// expires. Keep changes additive.
type Claims struct {
	jwt.RegisteredClaims

	// Email the provider asserted for the user. Advisory only, may be empty.
	Email string `json:"email,omitempty"`

	// Provider that authenticated the user ("google", "github", "oidc",
	// "credentials").
	Provider string `json:"provider,omitempty"`

	// Roles granted by the directory, e.g. ["admin", "user"].
	Roles []string `json:"roles,omitempty"`

	// Tenant the user belongs to. Empty means no tenant assigned.
	TenantID   string `json:"tenant_id,omitempty"`
	TenantName string `json:"tenant_name,omitempty"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(
	subject, email, provider string,
	roles []string,
	tenantID, tenantName string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		Email:      email,
		Provider:   provider,
		Roles:      roles,
		TenantID:   tenantID,
		TenantName: tenantName,
	}
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiryWithLeeway validates exp/nbf allowing a small grace period
// for clock skew. A token is still valid at exactly exp+leeway; it expires
// the instant after.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}

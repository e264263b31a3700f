package service

import (
	"fmt"
	"time"

	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/pkg/jwtx"
)

// TokenService mints session tokens. Claims are immutable once signed:
// there is no update-in-place, role or tenant changes require a fresh
// login. Verification lives in jwtx; the gate consumes it directly.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
}

// TokenResult is what a successful login produces.
type TokenResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	Identity    domain.Identity
	Claims      jwtx.Claims
}

// Issue signs a session token for the identity with the roles and tenant
// from the resolved directory record.
func (s *TokenService) Issue(identity domain.Identity, record domain.DirectoryRecord) (TokenResult, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		identity.ExternalID,
		identity.Email,
		string(identity.Provider),
		record.Roles,
		record.TenantID,
		record.TenantName,
		ttl,
		s.Issuer,
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return TokenResult{}, fmt.Errorf("sign session token: %w", err)
	}

	return TokenResult{
		AccessToken: token,
		ExpiresIn:   ttl,
		Identity:    identity,
		Claims:      claims,
	}, nil
}

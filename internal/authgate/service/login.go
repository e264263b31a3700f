package service

import (
	"context"
	"errors"

	"github.com/wirraway/authgate/internal/authgate/directory"
	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/internal/authgate/provider"
	"github.com/wirraway/authgate/pkg/slogx"
)

var (
	// ErrUnauthorized is the single failure surfaced to login callers.
	// Provider, code, and normalization failures all collapse into it so
	// the login endpoint can't be used as an oracle.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDirectoryUnavailable means the directory lookup itself failed.
	// Deliberately distinct from ErrUnauthorized: defaulting to user
	// privileges during an outage would be a silent privilege decision.
	ErrDirectoryUnavailable = errors.New("directory unavailable")
)

// LoginService runs the login pipeline: exchange the authorization code,
// normalize the profile, resolve roles and tenant, mint a session token.
type LoginService struct {
	Providers *provider.Registry
	Directory directory.Resolver
	Tokens    *TokenService
}

// Login exchanges an authorization code with the named provider and issues
// a session token. redirectURI empty means the provider's configured
// callback URL is used.
func (s *LoginService) Login(
	ctx context.Context,
	name domain.ProviderName,
	code, redirectURI string,
) (TokenResult, error) {
	log := slogx.FromContext(ctx)

	p, err := s.Providers.Get(name)
	if err != nil {
		log.Info("login for unknown provider", "provider", name)
		return TokenResult{}, ErrUnauthorized
	}

	identity, err := p.Exchange(ctx, code, redirectURI)
	if err != nil {
		// Log with provider context but never hand the raw provider error
		// to the caller.
		log.Warn("provider exchange failed", "provider", name, "err", err)
		return TokenResult{}, ErrUnauthorized
	}

	record, err := s.resolveRecord(ctx, identity.Email)
	if err != nil {
		return TokenResult{}, err
	}

	result, err := s.Tokens.Issue(identity, record)
	if err != nil {
		log.Error("token issuance failed", "provider", name, "err", err)
		return TokenResult{}, ErrUnauthorized
	}

	log.Info("login succeeded",
		"provider", name,
		"subject", identity.ExternalID,
		"roles", record.Roles,
		"tenant_id", record.TenantID,
	)
	return result, nil
}

// resolveRecord applies the default-on-miss policy: unknown users start
// with minimal privilege. Lookup failures propagate distinctly.
func (s *LoginService) resolveRecord(ctx context.Context, email string) (domain.DirectoryRecord, error) {
	if email == "" {
		// Nothing to look up; the provider withheld the email.
		return domain.DefaultDirectoryRecord(), nil
	}

	record, err := s.Directory.Resolve(ctx, email)
	switch {
	case err == nil:
		return record, nil
	case errors.Is(err, directory.ErrNotFound):
		return domain.DefaultDirectoryRecord(), nil
	default:
		slogx.FromContext(ctx).Error("directory lookup failed", "err", err)
		return domain.DirectoryRecord{}, ErrDirectoryUnavailable
	}
}

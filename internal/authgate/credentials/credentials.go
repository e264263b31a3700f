// Package credentials implements first-party email/password login against
// the directory store, issuing the same session tokens as the OAuth flows.
package credentials

import (
	"context"
	"errors"

	"github.com/wirraway/authgate/internal/authgate/directory"
	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/internal/authgate/service"
	"github.com/wirraway/authgate/pkg/cryptox"
	"github.com/wirraway/authgate/pkg/slogx"
)

// UserStore is the slice of the directory the password flow needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (directory.User, error)
}

// Service verifies email/password pairs and mints session tokens.
type Service struct {
	Users  UserStore
	Tokens *service.TokenService
}

// Login checks the password against the stored argon2id hash. Unknown
// emails, accounts without a password, and wrong passwords are all the
// same ErrUnauthorized so the endpoint can't confirm account existence.
func (s *Service) Login(ctx context.Context, email, password string) (service.TokenResult, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		return service.TokenResult{}, service.ErrUnauthorized
	}

	user, err := s.Users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, directory.ErrNotFound):
		log.Info("credentials login for unknown email")
		return service.TokenResult{}, service.ErrUnauthorized
	case err != nil:
		log.Error("credentials lookup failed", "err", err)
		return service.TokenResult{}, service.ErrDirectoryUnavailable
	}

	if user.PasswordHash == "" {
		// OAuth-only account; a password can never match.
		log.Info("credentials login on passwordless account", "subject", user.Email)
		return service.TokenResult{}, service.ErrUnauthorized
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("credentials login rejected", "subject", user.Email)
		return service.TokenResult{}, service.ErrUnauthorized
	}

	identity := domain.Identity{
		ExternalID: user.Email,
		Provider:   domain.ProviderCredentials,
		Email:      user.Email,
	}
	record := domain.DirectoryRecord{
		Roles:      user.Roles,
		TenantID:   user.TenantID,
		TenantName: user.TenantName,
	}

	result, err := s.Tokens.Issue(identity, record)
	if err != nil {
		log.Error("token issuance failed", "err", err)
		return service.TokenResult{}, service.ErrUnauthorized
	}

	log.Info("credentials login succeeded", "subject", user.Email, "roles", user.Roles)
	return result, nil
}

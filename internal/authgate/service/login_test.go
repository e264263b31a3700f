package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wirraway/authgate/internal/authgate/directory"
	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/internal/authgate/provider"
	"github.com/wirraway/authgate/internal/authgate/service"
	"github.com/wirraway/authgate/pkg/jwtx"
)

type fakeProvider struct {
	name     domain.ProviderName
	identity domain.Identity
	err      error
}

func (f *fakeProvider) Name() domain.ProviderName { return f.name }

func (f *fakeProvider) Exchange(_ context.Context, _, _ string) (domain.Identity, error) {
	if f.err != nil {
		return domain.Identity{}, f.err
	}
	return f.identity, nil
}

type fakeResolver struct {
	records map[string]domain.DirectoryRecord
	err     error
}

func (f *fakeResolver) Resolve(_ context.Context, email string) (domain.DirectoryRecord, error) {
	if f.err != nil {
		return domain.DirectoryRecord{}, f.err
	}
	if r, ok := f.records[email]; ok {
		return r, nil
	}
	return domain.DirectoryRecord{}, directory.ErrNotFound
}

func newLoginService(t *testing.T, p provider.Provider, r directory.Resolver) (*service.LoginService, jwtx.Verifier) {
	t.Helper()

	secret := []byte("0123456789abcdef0123456789abcdef")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	var reg *provider.Registry
	if p != nil {
		reg = provider.NewRegistry(p)
	} else {
		reg = provider.NewRegistry()
	}

	svc := &service.LoginService{
		Providers: reg,
		Directory: r,
		Tokens: &service.TokenService{
			Signer: signer,
			Issuer: "authgate",
			TTL:    time.Hour,
		},
	}
	return svc, jwtx.NewVerifierHS256(secret, "authgate")
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	identity := domain.Identity{
		ExternalID:  "ext-42",
		Provider:    domain.ProviderGoogle,
		Email:       "admin@example.com",
		DisplayName: "Admin",
	}

	t.Run("known user gets directory roles and tenant", func(t *testing.T) {
		svc, verifier := newLoginService(t,
			&fakeProvider{name: domain.ProviderGoogle, identity: identity},
			&fakeResolver{records: map[string]domain.DirectoryRecord{
				"admin@example.com": {Roles: []string{"admin", "user"}, TenantID: "t1", TenantName: "Acme"},
			}},
		)

		result, err := svc.Login(ctx, domain.ProviderGoogle, "code-1", "")
		require.NoError(t, err)
		require.Equal(t, time.Hour, result.ExpiresIn)

		claims, err := verifier.Verify(result.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "ext-42", claims.Subject)
		require.Equal(t, "admin@example.com", claims.Email)
		require.Equal(t, "google", claims.Provider)
		require.Equal(t, []string{"admin", "user"}, claims.Roles)
		require.Equal(t, "t1", claims.TenantID)
		require.Equal(t, "Acme", claims.TenantName)
	})

	t.Run("directory miss defaults to the user role", func(t *testing.T) {
		svc, verifier := newLoginService(t,
			&fakeProvider{name: domain.ProviderGoogle, identity: identity},
			&fakeResolver{},
		)

		result, err := svc.Login(ctx, domain.ProviderGoogle, "code-1", "")
		require.NoError(t, err)

		claims, err := verifier.Verify(result.AccessToken)
		require.NoError(t, err)
		require.Equal(t, []string{"user"}, claims.Roles)
		require.Empty(t, claims.TenantID)
	})

	t.Run("directory outage is not collapsed into unauthorized", func(t *testing.T) {
		svc, _ := newLoginService(t,
			&fakeProvider{name: domain.ProviderGoogle, identity: identity},
			&fakeResolver{err: directory.ErrUnavailable},
		)

		_, err := svc.Login(ctx, domain.ProviderGoogle, "code-1", "")
		require.ErrorIs(t, err, service.ErrDirectoryUnavailable)
		require.NotErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("provider failure collapses to unauthorized", func(t *testing.T) {
		svc, _ := newLoginService(t,
			&fakeProvider{name: domain.ProviderGoogle, err: provider.ErrExchangeFailed},
			&fakeResolver{},
		)

		_, err := svc.Login(ctx, domain.ProviderGoogle, "bad-code", "")
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("unknown provider collapses to unauthorized", func(t *testing.T) {
		svc, _ := newLoginService(t, nil, &fakeResolver{})

		_, err := svc.Login(ctx, domain.ProviderGitHub, "code-1", "")
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("identity without email skips the directory lookup", func(t *testing.T) {
		noEmail := identity
		noEmail.Email = ""

		svc, verifier := newLoginService(t,
			&fakeProvider{name: domain.ProviderGoogle, identity: noEmail},
			&fakeResolver{err: errors.New("must not be called")},
		)

		result, err := svc.Login(ctx, domain.ProviderGoogle, "code-1", "")
		require.NoError(t, err)

		claims, err := verifier.Verify(result.AccessToken)
		require.NoError(t, err)
		require.Equal(t, []string{"user"}, claims.Roles)
	})
}

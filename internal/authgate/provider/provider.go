package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/wirraway/authgate/internal/authgate/domain"
)

var (
	// ErrExchangeFailed covers network failures, non-2xx provider
	// responses, and exchange responses missing an access token. There is
	// no partial success: either both outbound calls succeed and produce a
	// profile, or the adapter fails as a unit.
	ErrExchangeFailed = errors.New("provider: exchange failed")

	// ErrNormalization reports a profile that cannot be mapped to an
	// identity (missing external id).
	ErrNormalization = errors.New("provider: profile normalization failed")

	ErrUnknown = errors.New("provider: unknown provider")
)

// Provider is the contract every external identity provider implements.
// Exchange swaps the authorization code for provider tokens, fetches the
// user profile, and returns the normalized identity. Adapters keep no state
// across calls and never retry: authorization codes are single-use, so a
// retry with the same code fails regardless.
//
// redirectURI must exactly match the one originally presented to the
// provider; empty substitutes the configured callback URL.
type Provider interface {
	Name() domain.ProviderName
	Exchange(ctx context.Context, code, redirectURI string) (domain.Identity, error)
}

// Registry holds all configured providers and allows lookup by name.
// It performs no auth logic itself.
type Registry struct {
	providers map[domain.ProviderName]Provider
}

// NewRegistry registers the given providers by name. Names must be unique.
func NewRegistry(list ...Provider) *Registry {
	m := make(map[domain.ProviderName]Provider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider by name or ErrUnknown if not registered.
func (r *Registry) Get(name domain.ProviderName) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return p, nil
}

// Names lists the registered provider names, useful for startup logging.
func (r *Registry) Names() []domain.ProviderName {
	names := make([]domain.ProviderName, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/pkg/slogx"
)

// OIDC authenticates against any OpenID Connect compatible issuer using
// discovery. The profile comes from the verified id_token rather than a
// separate userinfo call.
type OIDC struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
	client      *http.Client
}

// NewOIDC initializes the generic OIDC adapter via issuer discovery.
// The discovery call happens once at startup; a bad issuer fails fast.
func NewOIDC(
	ctx context.Context,
	issuer, clientID, clientSecret, callbackURL string,
	client *http.Client,
) (*OIDC, error) {
	oidcProvider, err := oidc.NewProvider(oidc.ClientContext(ctx, client), issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery failed for %s: %w", issuer, err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{ClientID: clientID})

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  callbackURL,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"profile",
			"email",
		},
	}

	return &OIDC{
		oauthConfig: oauthCfg,
		verifier:    verifier,
		client:      client,
	}, nil
}

func (p *OIDC) Name() domain.ProviderName { return domain.ProviderOIDC }

func (p *OIDC) Exchange(ctx context.Context, code, redirectURI string) (domain.Identity, error) {
	log := slogx.FromContext(ctx)

	// Route the exchange through the shared outbound client so the
	// configured timeout applies.
	ctx = oidc.ClientContext(ctx, p.client)

	opts := []oauth2.AuthCodeOption{}
	if redirectURI != "" {
		// The token endpoint validates redirect_uri against the one used
		// at the authorize step, so a caller-supplied value must win over
		// the configured default.
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}

	token, err := p.oauthConfig.Exchange(ctx, code, opts...)
	if err != nil {
		log.Warn("oidc token exchange failed", "err", err)
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return domain.Identity{}, fmt.Errorf("%w: issuer did not return id_token", ErrExchangeFailed)
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		log.Warn("oidc id_token verification failed", "err", err)
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	var profile OIDCProfile
	if err := idToken.Claims(&profile); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	return NormalizeOIDC(profile)
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/pkg/slogx"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// Google exchanges authorization codes against Google's OAuth2 endpoints
// and reads the profile from the OIDC userinfo endpoint.
type Google struct {
	clientID     string
	clientSecret string
	callbackURL  string

	tokenURL    string
	userInfoURL string
	client      *http.Client
}

// NewGoogle builds the Google adapter. client carries the outbound timeout
// and is shared across adapters.
func NewGoogle(clientID, clientSecret, callbackURL string, client *http.Client) *Google {
	return &Google{
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		tokenURL:     googleTokenURL,
		userInfoURL:  googleUserInfoURL,
		client:       client,
	}
}

func (g *Google) Name() domain.ProviderName { return domain.ProviderGoogle }

func (g *Google) Exchange(ctx context.Context, code, redirectURI string) (domain.Identity, error) {
	if redirectURI == "" {
		redirectURI = g.callbackURL
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", g.clientID)
	form.Set("client_secret", g.clientSecret)
	form.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slogx.FromContext(ctx).Warn("google token exchange rejected", "status", resp.StatusCode)
		return domain.Identity{}, fmt.Errorf("%w: token endpoint returned %d", ErrExchangeFailed, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if payload.AccessToken == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing access_token", ErrExchangeFailed)
	}

	profile, err := g.fetchProfile(ctx, payload.AccessToken)
	if err != nil {
		return domain.Identity{}, err
	}

	return NormalizeGoogle(profile)
}

func (g *Google) fetchProfile(ctx context.Context, accessToken string) (GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("%w: userinfo endpoint returned %d", ErrExchangeFailed, resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return GoogleProfile{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return profile, nil
}

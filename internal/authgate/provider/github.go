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
	githubTokenURL  = "https://github.com/login/oauth/access_token"
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// GitHub exchanges authorization codes against GitHub's OAuth endpoints.
// GitHub often omits the email from /user, so the adapter backfills it from
// /user/emails, preferring the address marked primary.
type GitHub struct {
	clientID     string
	clientSecret string
	callbackURL  string

	tokenURL  string
	userURL   string
	emailsURL string
	client    *http.Client
}

// NewGitHub builds the GitHub adapter.
func NewGitHub(clientID, clientSecret, callbackURL string, client *http.Client) *GitHub {
	return &GitHub{
		clientID:     clientID,
		clientSecret: clientSecret,
		callbackURL:  callbackURL,
		tokenURL:     githubTokenURL,
		userURL:      githubUserURL,
		emailsURL:    githubEmailsURL,
		client:       client,
	}
}

func (g *GitHub) Name() domain.ProviderName { return domain.ProviderGitHub }

func (g *GitHub) Exchange(ctx context.Context, code, redirectURI string) (domain.Identity, error) {
	if redirectURI == "" {
		redirectURI = g.callbackURL
	}

	form := url.Values{}
	form.Set("client_id", g.clientID)
	form.Set("client_secret", g.clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Without this GitHub answers with a query string, not JSON.
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slogx.FromContext(ctx).Warn("github token exchange rejected", "status", resp.StatusCode)
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

	if profile.Email == "" {
		email, err := g.fetchPrimaryEmail(ctx, payload.AccessToken)
		if err != nil {
			return domain.Identity{}, err
		}
		profile.Email = email
	}

	return NormalizeGitHub(profile)
}

func (g *GitHub) fetchProfile(ctx context.Context, accessToken string) (GitHubProfile, error) {
	var profile GitHubProfile
	if err := g.getJSON(ctx, g.userURL, accessToken, &profile); err != nil {
		return GitHubProfile{}, err
	}
	return profile, nil
}

// fetchPrimaryEmail picks the primary address from /user/emails, falling
// back to the first entry. An empty list leaves the email empty; that is
// not an error.
func (g *GitHub) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []struct {
		Email   string `json:"email"`
		Primary bool   `json:"primary"`
	}
	if err := g.getJSON(ctx, g.emailsURL, accessToken, &emails); err != nil {
		return "", err
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}
	return "", nil
}

func (g *GitHub) getJSON(ctx context.Context, endpoint, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	// GitHub's v3 API token scheme, not Bearer.
	req.Header.Set("Authorization", "token "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrExchangeFailed, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return nil
}

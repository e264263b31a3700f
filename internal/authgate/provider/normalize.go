package provider

import (
	"fmt"
	"strconv"

	"github.com/wirraway/authgate/internal/authgate/domain"
)

// GoogleProfile is the raw userinfo payload from Google's OIDC userinfo
// endpoint.
type GoogleProfile struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// GitHubProfile is the raw payload from GitHub's /user endpoint. Email is
// frequently empty here and backfilled from /user/emails.
type GitHubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// OIDCProfile holds the standard claims read from a verified id_token.
type OIDCProfile struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Normalization is pure and never fails on missing optional fields: name
// and picture degrade to empty strings. Only a missing external id is
// fatal, because (provider, external id) is the identity's join key.

// NormalizeGoogle maps a Google userinfo payload to the canonical identity.
func NormalizeGoogle(p GoogleProfile) (domain.Identity, error) {
	if p.Sub == "" {
		return domain.Identity{}, fmt.Errorf("%w: google profile missing sub", ErrNormalization)
	}

	return domain.Identity{
		ExternalID:  p.Sub,
		Provider:    domain.ProviderGoogle,
		Email:       p.Email,
		DisplayName: p.Name,
		AvatarURL:   p.Picture,
	}, nil
}

// NormalizeGitHub maps a GitHub user payload to the canonical identity.
// The numeric id is stringified; display name falls back to the login.
func NormalizeGitHub(p GitHubProfile) (domain.Identity, error) {
	if p.ID == 0 {
		return domain.Identity{}, fmt.Errorf("%w: github profile missing id", ErrNormalization)
	}

	display := p.Name
	if display == "" {
		display = p.Login
	}

	return domain.Identity{
		ExternalID:  strconv.FormatInt(p.ID, 10),
		Provider:    domain.ProviderGitHub,
		Email:       p.Email,
		DisplayName: display,
		AvatarURL:   p.AvatarURL,
	}, nil
}

// NormalizeOIDC maps verified id_token claims to the canonical identity.
func NormalizeOIDC(p OIDCProfile) (domain.Identity, error) {
	if p.Sub == "" {
		return domain.Identity{}, fmt.Errorf("%w: id_token missing sub", ErrNormalization)
	}

	return domain.Identity{
		ExternalID:  p.Sub,
		Provider:    domain.ProviderOIDC,
		Email:       p.Email,
		DisplayName: p.Name,
		AvatarURL:   p.Picture,
	}, nil
}

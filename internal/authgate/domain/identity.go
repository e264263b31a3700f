package domain

// ProviderName identifies which identity provider authenticated a user.
type ProviderName string

const (
	ProviderGoogle      ProviderName = "google"
	ProviderGitHub      ProviderName = "github"
	ProviderOIDC        ProviderName = "oidc"
	ProviderCredentials ProviderName = "credentials"
)

// Identity is the canonical user record produced from a provider profile.
// (Provider, ExternalID) uniquely identifies an identity; Email is advisory
// and never used as a join key because providers may withhold it.
type Identity struct {
	// ExternalID is the provider-assigned unique identifier
	// (Google's "sub", GitHub's numeric id stringified).
	ExternalID string

	Provider ProviderName

	// Email may be empty for providers that omit it even after the
	// secondary profile call.
	Email string

	DisplayName string
	AvatarURL   string
}

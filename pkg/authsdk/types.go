package authsdk

// TokenRequest is the body for POST /auth/{provider}/token. RedirectURI is
// optional; empty means the server-side configured callback URL.
type TokenRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri,omitempty"`
}

// PasswordRequest is the body for POST /auth/credentials/login.
type PasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by every successful login. The field names are
// camelCase on the wire, matching the request side (code, redirectUri).
type TokenResponse struct {
	// AccessToken is the signed session JWT.
	AccessToken string `json:"accessToken"`

	// TokenType is always "Bearer".
	TokenType string `json:"tokenType"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expiresIn"`

	// User echoes the authenticated identity so clients don't need to
	// decode the JWT themselves.
	User UserPayload `json:"user"`
}

// UserPayload is the client-visible view of an authenticated user.
type UserPayload struct {
	Subject     string   `json:"sub"`
	Email       string   `json:"email,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
	Provider    string   `json:"provider"`
	Roles       []string `json:"roles"`
	TenantID    string   `json:"tenantId,omitempty"`
	TenantName  string   `json:"tenantName,omitempty"`
}

// RolesUpdateRequest is the body for PUT /auth/users/{email}/roles.
type RolesUpdateRequest struct {
	Roles      []string `json:"roles"`
	TenantID   string   `json:"tenantId,omitempty"`
	TenantName string   `json:"tenantName,omitempty"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`

	// Checks is only populated by readyz.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Directory string `json:"directory"`
	Signer    string `json:"signer"`
}

// ErrorResponse is the standard OAuth2-style error body per RFC 6749.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

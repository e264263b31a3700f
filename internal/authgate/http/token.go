package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/internal/authgate/service"
	"github.com/wirraway/authgate/pkg/authsdk"
	"github.com/wirraway/authgate/pkg/httpx"
	"github.com/wirraway/authgate/pkg/slogx"
)

// TokenHandler serves POST /auth/{provider}/token: it exchanges an OAuth
// authorization code for a session token.
type TokenHandler struct {
	LoginService *service.LoginService
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	providerName := domain.ProviderName(r.PathValue("provider"))

	result, err := h.LoginService.Login(ctx, providerName, code, strings.TrimSpace(req.RedirectURI))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDirectoryUnavailable):
			authsdk.ErrTemporarilyUnavailable.WriteError(w)
		case errors.Is(err, service.ErrUnauthorized):
			authsdk.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("token exchange failed", "provider", providerName, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponseFrom(result))
}

// tokenResponseFrom maps a login result onto the wire type.
func tokenResponseFrom(result service.TokenResult) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(result.ExpiresIn.Seconds()),
		User: authsdk.UserPayload{
			Subject:     result.Claims.Subject,
			Email:       result.Claims.Email,
			DisplayName: result.Identity.DisplayName,
			AvatarURL:   result.Identity.AvatarURL,
			Provider:    result.Claims.Provider,
			Roles:       result.Claims.Roles,
			TenantID:    result.Claims.TenantID,
			TenantName:  result.Claims.TenantName,
		},
	}
}

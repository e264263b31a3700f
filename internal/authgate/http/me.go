package http

import (
	"net/http"

	"github.com/wirraway/authgate/pkg/authsdk"
	"github.com/wirraway/authgate/pkg/httpx"
)

// MeHandler serves GET /auth/me for authenticated callers. The claims were
// already verified and injected by the authn middleware.
type MeHandler struct{}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserPayload{
		Subject:    claims.Subject,
		Email:      claims.Email,
		Provider:   claims.Provider,
		Roles:      claims.Roles,
		TenantID:   claims.TenantID,
		TenantName: claims.TenantName,
	})
}

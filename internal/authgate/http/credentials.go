package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wirraway/authgate/internal/authgate/credentials"
	"github.com/wirraway/authgate/internal/authgate/service"
	"github.com/wirraway/authgate/pkg/authsdk"
	"github.com/wirraway/authgate/pkg/httpx"
	"github.com/wirraway/authgate/pkg/slogx"
)

// CredentialsHandler serves POST /auth/credentials/login: first-party
// email/password authentication.
type CredentialsHandler struct {
	CredentialsService *credentials.Service
}

func (h *CredentialsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.PasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.CredentialsService.Login(ctx, email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDirectoryUnavailable):
			authsdk.ErrTemporarilyUnavailable.WriteError(w)
		case errors.Is(err, service.ErrUnauthorized):
			authsdk.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("credentials login failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponseFrom(result))
}

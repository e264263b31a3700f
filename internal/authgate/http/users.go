package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wirraway/authgate/internal/authgate/directory"
	"github.com/wirraway/authgate/pkg/authsdk"
	"github.com/wirraway/authgate/pkg/slogx"
)

// UsersHandler serves PUT /auth/users/{email}/roles: admin-only role and
// tenant reassignment. Outstanding tokens keep their old claims until they
// expire; the change applies from the next login.
type UsersHandler struct {
	Directory RolesUpdater
}

func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RolesUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if len(req.Roles) == 0 {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	email := r.PathValue("email")

	err := h.Directory.UpdateUserRoles(ctx, email, req.Roles, req.TenantID, req.TenantName)
	switch {
	case errors.Is(err, directory.ErrNotFound):
		authsdk.ErrNotFound.WriteError(w)
		return
	case err != nil:
		log.Error("roles update failed", "err", err)
		authsdk.ErrTemporarilyUnavailable.WriteError(w)
		return
	}

	log.Info("roles updated", "target", email, "roles", req.Roles, "tenant_id", req.TenantID)
	w.WriteHeader(http.StatusNoContent)
}

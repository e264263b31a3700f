package http

import (
	"net/http"

	"github.com/wirraway/authgate/pkg/httpx"
)

// PagesHandler stands in for the frontend behind the gate. It answers with
// a small JSON document naming the page and the authenticated subject so
// integration clients can assert what the gate let through.
type PagesHandler struct{}

func (h *PagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"page": r.URL.Path,
	}

	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok {
		body["sub"] = claims.Subject
		body["roles"] = claims.Roles
		if claims.TenantID != "" {
			body["tenant_id"] = claims.TenantID
		}
	}

	httpx.WriteJSON(w, http.StatusOK, body)
}

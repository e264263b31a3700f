package http

import (
	"net/http"
	"strings"

	"github.com/wirraway/authgate/internal/authgate/gate"
	"github.com/wirraway/authgate/pkg/httpx"
)

// SessionCookieName carries the session token for browser page loads.
// API clients send a bearer header instead; the header wins when both
// are present.
const SessionCookieName = "authgate_session"

// GateMiddleware runs every page request through the authorization gate.
// Unauthorized page loads get a redirect, not an error page: the gate's
// decision says where.
func GateMiddleware(g *gate.Gate) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			decision := g.Evaluate(ctx, sessionToken(r), r.URL.Path)
			switch decision.Kind {
			case gate.Allow:
				if decision.Claims.Subject != "" {
					ctx = httpx.ContextWithClaims(ctx, decision.Claims)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			case gate.Redirect:
				http.Redirect(w, r, decision.Target, http.StatusFound)
			default:
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}

// sessionToken pulls the raw token from the Authorization header or the
// session cookie.
func sessionToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

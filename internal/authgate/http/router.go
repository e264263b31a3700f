package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/wirraway/authgate/internal/authgate/credentials"
	"github.com/wirraway/authgate/internal/authgate/gate"
	"github.com/wirraway/authgate/internal/authgate/service"
	"github.com/wirraway/authgate/pkg/httpx"
	"github.com/wirraway/authgate/pkg/jwtx"
	"github.com/wirraway/authgate/pkg/slogx"
)

// Pinger is the slice of the directory store the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RolesUpdater is the slice of the directory store the admin roles
// endpoint needs.
type RolesUpdater interface {
	UpdateUserRoles(ctx context.Context, email string, roles []string, tenantID, tenantName string) error
}

// DirectoryStore is what the router requires of the directory.
type DirectoryStore interface {
	Pinger
	RolesUpdater
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	gate         *gate.Gate
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	directory DirectoryStore

	LoginService       *service.LoginService
	CredentialsService *credentials.Service
}

func NewRouter(
	verifier jwtx.Verifier,
	g *gate.Gate,
	buildVersion string,
	directory DirectoryStore,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		gate:         g,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		directory:    directory,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()
	r.registerPages()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/{provider}/token - strict rate limit by IP (login attempts)
	tokenHandler := &TokenHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /auth/{provider}/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/credentials/login - strict rate limit by IP (brute force)
	credentialsHandler := &CredentialsHandler{CredentialsService: r.CredentialsService}
	r.Mux.Handle("POST /auth/credentials/login",
		httpx.Chain(credentialsHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/me - authenticated, lenient rate limit by user
	meHandler := &MeHandler{}
	r.Mux.Handle("GET /auth/me",
		httpx.Chain(meHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// PUT /auth/users/{email}/roles - admin-only, moderate rate limit
	usersHandler := &UsersHandler{Directory: r.directory}
	r.Mux.Handle("PUT /auth/users/{email}/roles",
		httpx.Chain(usersHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Monitoring may poll these frequently, keep the limits lenient.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.directory),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

// registerPages puts everything that isn't an API endpoint behind the gate.
// The catch-all "/" pattern matches last, so the auth and system routes
// above keep their own handling.
func (r *Router) registerPages() {
	r.Mux.Handle("/",
		httpx.Chain(&PagesHandler{},
			GateMiddleware(r.gate),
		),
	)
}

// Package gate evaluates verified session claims against the route policy
// table and decides whether a request proceeds, gets redirected, or is
// denied outright.
package gate

import (
	"context"
	"errors"
	"strings"

	"github.com/wirraway/authgate/internal/authgate/domain"
	"github.com/wirraway/authgate/pkg/jwtx"
	"github.com/wirraway/authgate/pkg/slogx"
)

// Kind is the outcome of a gate evaluation.
type Kind int

const (
	Allow Kind = iota
	Redirect
	Deny
)

// Decision is the result of evaluating one request. Claims are populated
// whenever a valid token was presented, including on redirects.
type Decision struct {
	Kind   Kind
	Target string // redirect target, set when Kind == Redirect
	Claims jwtx.Claims
}

// Options tune the gate's redirect targets and override role.
type Options struct {
	// LoginPath receives unauthenticated requests to protected routes.
	LoginPath string

	// LandingPath is the safe authenticated fallback: requests that are
	// authenticated but not authorized for a route are soft-downgraded
	// here, never shown an error page.
	LandingPath string

	// AdminRole satisfies any role requirement and bypasses tenant
	// matching.
	AdminRole string
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.LoginPath == "" {
		out.LoginPath = "/login"
	}
	if out.LandingPath == "" {
		out.LandingPath = "/dashboard"
	}
	if out.AdminRole == "" {
		out.AdminRole = "admin"
	}
	return out
}

// Gate owns the ordered policy table. It is immutable after construction
// and safe for concurrent use.
type Gate struct {
	verifier jwtx.Verifier
	policies []domain.RoutePolicy
	opts     Options
}

// New builds a gate over the given ordered policy table. The first policy
// whose PathPrefix matches wins; paths matching no policy are public.
func New(verifier jwtx.Verifier, policies []domain.RoutePolicy, opts Options) *Gate {
	return &Gate{
		verifier: verifier,
		policies: policies,
		opts:     opts.withDefaults(),
	}
}

// DefaultPolicies is the stock policy table: admin and support areas are
// role-gated, tenant dashboards require tenant match, and everything under
// the dashboard (plus the root page) requires authentication. Order
// matters: more specific prefixes come first.
func DefaultPolicies() []domain.RoutePolicy {
	return []domain.RoutePolicy{
		{PathPrefix: "/dashboard/admin", RequiredRole: "admin"},
		{PathPrefix: "/dashboard/support", RequiredRole: "support"},
		{PathPrefix: "/dashboard/tenant/", RequiresTenantMatch: true},
		{PathPrefix: "/dashboard"},
		{PathPrefix: "/"},
	}
}

// Evaluate runs the authorization state machine for one request.
//
// Checks run in a fixed order because the order changes which redirect is
// produced: token validity, then required role, then tenant. A valid admin
// token passes every tenant check.
func (g *Gate) Evaluate(ctx context.Context, rawToken, path string) Decision {
	log := slogx.FromContext(ctx)

	policy, matched := g.match(path)

	claims, verifyErr := g.verify(rawToken)

	if !matched {
		// Public path. Forward claims when present so downstream handlers
		// can still personalize.
		return Decision{Kind: Allow, Claims: claims}
	}

	if verifyErr != nil {
		// Expired and tampered tokens look identical to the user (back to
		// login) but must stay distinguishable in logs.
		switch {
		case errors.Is(verifyErr, jwtx.ErrExpired):
			log.Info("gate: token expired", "path", path)
		case errors.Is(verifyErr, jwtx.ErrInvalidSig):
			log.Warn("gate: token signature invalid", "path", path)
		default:
			log.Info("gate: no valid token", "path", path, "err", verifyErr)
		}
		return Decision{Kind: Redirect, Target: g.opts.LoginPath}
	}

	isAdmin := claims.HasRole(g.opts.AdminRole)

	// Role check first. The admin override role satisfies any requirement.
	if policy.RequiredRole != "" && !claims.HasRole(policy.RequiredRole) && !isAdmin {
		log.Info("gate: missing required role",
			"path", path,
			"required_role", policy.RequiredRole,
			"subject", claims.Subject,
		)
		return Decision{Kind: Redirect, Target: g.opts.LandingPath, Claims: claims}
	}

	if policy.RequiresTenantMatch && !isAdmin {
		// No tenant assigned: ownership can't be proven, fall back to the
		// landing page rather than guessing.
		if claims.TenantID == "" {
			log.Info("gate: tenant route without tenant claim", "path", path, "subject", claims.Subject)
			return Decision{Kind: Redirect, Target: g.opts.LandingPath, Claims: claims}
		}

		pathTenant := tenantSegment(path, policy.PathPrefix)
		if pathTenant != "" && pathTenant != claims.TenantID {
			own := policy.PathPrefix + claims.TenantID
			log.Info("gate: cross-tenant access redirected",
				"path", path,
				"path_tenant", pathTenant,
				"token_tenant", claims.TenantID,
			)
			return Decision{Kind: Redirect, Target: own, Claims: claims}
		}
	}

	return Decision{Kind: Allow, Claims: claims}
}

// verify treats an empty token as an error without invoking the verifier.
func (g *Gate) verify(rawToken string) (jwtx.Claims, error) {
	if rawToken == "" {
		return jwtx.Claims{}, jwtx.ErrMalformed
	}
	return g.verifier.Verify(rawToken)
}

// match returns the first policy whose prefix matches. The bare "/" prefix
// matches only the root page itself, otherwise it would shadow every path.
func (g *Gate) match(path string) (domain.RoutePolicy, bool) {
	for _, p := range g.policies {
		if p.PathPrefix == "/" {
			if path == "/" {
				return p, true
			}
			continue
		}
		if strings.HasPrefix(path, p.PathPrefix) {
			return p, true
		}
	}
	return domain.RoutePolicy{}, false
}

// tenantSegment extracts the {id} from prefix + "{id}/...". Empty when the
// path stops at the prefix.
func tenantSegment(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

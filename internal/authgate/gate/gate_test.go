package gate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wirraway/authgate/internal/authgate/gate"
	"github.com/wirraway/authgate/pkg/jwtx"
)

var gateSecret = []byte("0123456789abcdef0123456789abcdef")

func newGate(t *testing.T) *gate.Gate {
	t.Helper()
	verifier := jwtx.NewVerifierHS256(gateSecret, "authgate")
	return gate.New(verifier, gate.DefaultPolicies(), gate.Options{})
}

func signToken(t *testing.T, roles []string, tenantID string, ttl time.Duration) string {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(gateSecret)
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims(
		"ext-1", "user@example.com", "google",
		roles, tenantID, "",
		ttl, "authgate", time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	ctx := context.Background()

	t.Run("no token on protected path redirects to login", func(t *testing.T) {
		d := g.Evaluate(ctx, "", "/dashboard")
		require.Equal(t, gate.Redirect, d.Kind)
		require.Equal(t, "/login", d.Target)
	})

	t.Run("no token on root redirects to login", func(t *testing.T) {
		d := g.Evaluate(ctx, "", "/")
		require.Equal(t, gate.Redirect, d.Kind)
		require.Equal(t, "/login", d.Target)
	})

	t.Run("unmatched path is public", func(t *testing.T) {
		d := g.Evaluate(ctx, "", "/login")
		require.Equal(t, gate.Allow, d.Kind)
	})

	t.Run("valid token on dashboard allows and forwards claims", func(t *testing.T) {
		token := signToken(t, []string{"user"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard")
		require.Equal(t, gate.Allow, d.Kind)
		require.Equal(t, "ext-1", d.Claims.Subject)
		require.Equal(t, "t1", d.Claims.TenantID)
	})

	t.Run("expired token redirects to login", func(t *testing.T) {
		token := signToken(t, []string{"admin"}, "t1", -time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/admin/users")
		require.Equal(t, gate.Redirect, d.Kind)
		require.Equal(t, "/login", d.Target)
	})

	t.Run("tampered token redirects to login", func(t *testing.T) {
		token := signToken(t, []string{"user"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token+"x", "/dashboard")
		require.Equal(t, gate.Redirect, d.Kind)
		require.Equal(t, "/login", d.Target)
	})

	t.Run("missing role soft-downgrades to landing", func(t *testing.T) {
		token := signToken(t, []string{"user"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/admin")
		require.Equal(t, gate.Redirect, d.Kind)
		require.Equal(t, "/dashboard", d.Target)
	})

	t.Run("admin satisfies the support role requirement", func(t *testing.T) {
		token := signToken(t, []string{"admin"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/support/tickets")
		require.Equal(t, gate.Allow, d.Kind)
	})

	t.Run("support role enters support routes", func(t *testing.T) {
		token := signToken(t, []string{"support"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/support")
		require.Equal(t, gate.Allow, d.Kind)
	})
}

func TestEvaluateTenantRoutes(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	ctx := context.Background()

	t.Run("own tenant allowed", func(t *testing.T) {
		token := signToken(t, []string{"user"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/tenant/t1/reports")
		require.Equal(t, gate.Allow, d.Kind)
	})

	t.Run("cross tenant redirects to own tenant", func(t *testing.T) {
		token := signToken(t, []string{"user"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/tenant/t2/reports")
		require.Equal(t, gate.Redirect, d.Kind)
		require.Equal(t, "/dashboard/tenant/t1", d.Target)
	})

	t.Run("admin bypasses tenant matching", func(t *testing.T) {
		token := signToken(t, []string{"admin"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/tenant/t2/reports")
		require.Equal(t, gate.Allow, d.Kind)
	})

	t.Run("no tenant assigned falls back to landing", func(t *testing.T) {
		token := signToken(t, []string{"user"}, "", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/tenant/t2/reports")
		require.Equal(t, gate.Redirect, d.Kind)
		require.Equal(t, "/dashboard", d.Target)
	})

	t.Run("tenant root without id segment allowed", func(t *testing.T) {
		token := signToken(t, []string{"user"}, "t1", time.Hour)
		d := g.Evaluate(ctx, token, "/dashboard/tenant/")
		require.Equal(t, gate.Allow, d.Kind)
	})
}

// First matching prefix wins: /dashboard/admin is evaluated under the admin
// policy even though /dashboard would also match.
func TestPolicyOrdering(t *testing.T) {
	t.Parallel()

	g := newGate(t)
	token := signToken(t, []string{"user"}, "t1", time.Hour)

	d := g.Evaluate(context.Background(), token, "/dashboard/admin/settings")
	require.Equal(t, gate.Redirect, d.Kind)
	require.Equal(t, "/dashboard", d.Target)
}

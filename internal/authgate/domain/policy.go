package domain

// RoutePolicy maps a path prefix to the capability required to enter it.
// Policies are evaluated in order; the first matching prefix wins.
type RoutePolicy struct {
	PathPrefix string

	// RequiredRole empty means authentication alone is enough.
	RequiredRole string

	// RequiresTenantMatch guards /tenant/{id}/... style paths: the path's
	// tenant segment must equal the token's tenant unless the caller holds
	// the admin override role.
	RequiresTenantMatch bool
}

package auth

import "context"

// Principal is the authenticated caller, rebuilt from token claims on every
// request. Access checks and tenant scoping read it instead of the database.
type Principal struct {
	UserID     uint
	Email      string
	Roles      []string
	ClientID   *uint
	ClientName *string
}

// HasRole reports whether the principal holds role directly or through the
// role hierarchy.
func (p *Principal) HasRole(role string) bool {
	return p != nil && Granted(p.Roles, role)
}

// IsSuperAdmin is shorthand for HasRole(RoleSuperAdmin).
func (p *Principal) IsSuperAdmin() bool { return p.HasRole(RoleSuperAdmin) }

// LinkedClient returns the tenant the principal is bound to, if any.
func (p *Principal) LinkedClient() (uint, bool) {
	if p == nil || p.ClientID == nil {
		return 0, false
	}
	return *p.ClientID, true
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by the authentication middleware.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

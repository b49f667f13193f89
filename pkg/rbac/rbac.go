// Package rbac provides role-based access control middleware. It reads the
// auth.Principal stored by middleware.Authenticate and honours the role
// hierarchy (ROLE_SUPER_ADMIN > ROLE_ADMIN > ROLE_USER).
package rbac

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/response"
)

// HasRole allows the request when the caller is granted any of roles.
// Anonymous requests get 401; authenticated callers without the role get 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.FromContext(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !grantedAny(p, roles) {
				response.Forbidden(w, "Access Denied.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HasRoleOrSelf is HasRole, additionally letting callers through when the
// URL parameter param names their own user id.
//
//	users.Patch("/{id}", "users.update", h, rbac.HasRoleOrSelf("id", auth.RoleAdmin))
func HasRoleOrSelf(param string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.FromContext(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !grantedAny(p, roles) && !isSelf(r, param, p) {
				response.Forbidden(w, "Access Denied.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func grantedAny(p *auth.Principal, roles []string) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

func isSelf(r *http.Request, param string, p *auth.Principal) bool {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	return err == nil && uint(id) == p.UserID
}

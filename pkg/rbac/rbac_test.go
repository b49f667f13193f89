package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/bilemo/api/pkg/auth"
)

func serve(h http.Handler, p *auth.Principal, path string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestHasRoleFollowsHierarchy(t *testing.T) {
	h := HasRole(auth.RoleAdmin)(http.HandlerFunc(ok))

	assert.Equal(t, http.StatusUnauthorized, serve(h, nil, "/"))
	assert.Equal(t, http.StatusForbidden, serve(h, &auth.Principal{Roles: []string{auth.RoleUser}}, "/"))
	assert.Equal(t, http.StatusOK, serve(h, &auth.Principal{Roles: []string{auth.RoleAdmin}}, "/"))
	assert.Equal(t, http.StatusOK, serve(h, &auth.Principal{Roles: []string{auth.RoleSuperAdmin}}, "/"))
}

func TestHasRoleOrSelf(t *testing.T) {
	r := chi.NewRouter()
	r.With(HasRoleOrSelf("id", auth.RoleAdmin)).Get("/users/{id}", ok)

	user := &auth.Principal{UserID: 5, Roles: []string{auth.RoleUser}}
	admin := &auth.Principal{UserID: 1, Roles: []string{auth.RoleAdmin}}

	assert.Equal(t, http.StatusOK, serve(r, user, "/users/5"))
	assert.Equal(t, http.StatusForbidden, serve(r, user, "/users/6"))
	assert.Equal(t, http.StatusOK, serve(r, admin, "/users/6"))
	assert.Equal(t, http.StatusUnauthorized, serve(r, nil, "/users/5"))
}

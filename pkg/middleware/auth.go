package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/bilemo/api/pkg/auth"
	"github.com/bilemo/api/pkg/logger"
	"github.com/bilemo/api/pkg/response"
)

// Authenticate requires a valid "Authorization: Bearer <jwt>" header and
// stores the caller's auth.Principal in the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			response.Unauthorized(w, "JWT Token not found")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid JWT Token")
			return
		}
		p, err := claims.Principal()
		if err != nil {
			response.Unauthorized(w, "Invalid JWT Token")
			return
		}

		ctx := auth.WithPrincipal(r.Context(), p)
		ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With(zap.Uint("user_id", p.UserID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

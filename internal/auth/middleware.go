package auth

import (
	"log/slog"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Middleware rejects requests without a valid auth_token cookie and stores
// the tenant identity in the request context.
func Middleware(logger *slog.Logger, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := TokenFromRequest(r)
			if err != nil {
				httpx.Fail(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := ParseToken(secret, raw)
			if err != nil {
				logger.Warn("token rejected", slog.String("path", r.URL.Path))
				httpx.Fail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := shared.ContextWithIdentity(r.Context(), shared.Identity{
				CompanyID:  claims.CompanyID,
				EmployeeID: claims.EmployeeID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/dinepay/internal/application"
	"github.com/DanielPopoola/dinepay/internal/interfaces/rest"
	"github.com/DanielPopoola/dinepay/internal/tenant"
)

const (
	TenantHeader     = "X-Tenant-ID"
	RestaurantHeader = "X-Restaurant-ID"
)

// Tenant copies the caller's tenant and restaurant from the headers set by
// the upstream identity layer. Requests without them pass through unscoped
// and are rejected by any tenant-bound operation.
func Tenant(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawTenant := r.Header.Get(TenantHeader)
			if rawTenant == "" {
				next.ServeHTTP(w, r)
				return
			}

			tenantID, err := parseID(TenantHeader, rawTenant)
			if err != nil {
				rest.WriteError(w, application.NewInvalidInputError(err), logger)
				return
			}

			var restaurantID int64
			if raw := r.Header.Get(RestaurantHeader); raw != "" {
				restaurantID, err = parseID(RestaurantHeader, raw)
				if err != nil {
					rest.WriteError(w, application.NewInvalidInputError(err), logger)
					return
				}
			}

			ctx := tenant.WithScope(r.Context(), tenant.Scope{TenantID: tenantID, RestaurantID: restaurantID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseID(header, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", header)
	}
	return id, nil
}

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nexvault/storefront-backend/api/responses"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/logger"
)

type gateLimiter interface {
	windowLimiter
	GateAttemptScope(clientKey, itemRef string) string
}

// GateAttemptLimit caps unlock attempts per client and item within window.
// A non-positive limit disables it; the gate itself never locks out.
func GateAttemptLimit(limit int, window time.Duration, store gateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 || window <= 0 || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			client := UserIDFromContext(ctx)
			if client == "" {
				client = clientIP(r)
			}
			item := chi.URLParam(r, "kind") + ":" + chi.URLParam(r, "id")

			allowed, count, err := store.FixedWindowAllow(ctx, store.GateAttemptScope(client, item), int64(limit), window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				rejectRateLimited(ctx, logg, w, map[string]any{
					"policy":   "gate",
					"item":     item,
					"attempts": count,
					"limit":    limit,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

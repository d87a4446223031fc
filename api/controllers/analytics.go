package controllers

import (
	"net/http"

	"github.com/nexvault/storefront-backend/api/responses"
	"github.com/nexvault/storefront-backend/internal/analytics"
	"github.com/nexvault/storefront-backend/pkg/logger"
)

// AdminAnalytics serves the cached snapshot; ?refresh=true recomputes it first.
func AdminAnalytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			snapshot *analytics.Snapshot
			err      error
		)
		if r.URL.Query().Get("refresh") == "true" {
			snapshot, err = svc.Refresh(r.Context())
		} else {
			snapshot, err = svc.Get(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

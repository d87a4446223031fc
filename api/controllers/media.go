package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nexvault/storefront-backend/api/middleware"
	"github.com/nexvault/storefront-backend/api/responses"
	"github.com/nexvault/storefront-backend/api/validators"
	"github.com/nexvault/storefront-backend/internal/metadata"
	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/logger"
)

func MediaTrending(svc metadata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		window, err := enums.ParseTimeWindow(strings.ToLower(chi.URLParam(r, "window")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown time window"))
			return
		}
		responses.WriteSuccess(w, svc.Trending(r.Context(), mediaType, window))
	}
}

// MediaSearch runs a multi search. Searches sharing a session key supersede
// each other; the key comes from sessionHeader, then the user, then the client
// IP plus User-Agent.
func MediaSearch(svc metadata.Service, sessionHeader string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.ParseQueryString(r, "q", maxQueryLen)
		session := searchSessionKey(r, sessionHeader)
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSearchSession(ctx, session)
		}
		responses.WriteSuccess(w, svc.Search(ctx, session, query))
	}
}

func searchSessionKey(r *http.Request, header string) string {
	if header != "" {
		if v := validators.SanitizeString(r.Header.Get(header), 128); v != "" {
			return "hdr:" + v
		}
	}
	if userID := middleware.UserIDFromContext(r.Context()); userID != "" {
		return "user:" + userID
	}
	return "ip:" + middleware.ClientFingerprint(r)
}

func MediaGenres(svc metadata.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Genres())
	}
}

func MediaDiscover(svc metadata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		genreID, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("genre")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "genre is required").WithDetails(map[string]any{"field": "genre"}))
			return
		}
		listing, err := svc.Discover(r.Context(), mediaType, genreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

func MediaDetails(svc metadata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType, err := mediaTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := positiveIntParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		details, err := svc.Details(r.Context(), mediaType, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, details)
	}
}

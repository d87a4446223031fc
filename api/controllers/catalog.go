package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nexvault/storefront-backend/api/responses"
	"github.com/nexvault/storefront-backend/api/validators"
	"github.com/nexvault/storefront-backend/internal/catalog"
	"github.com/nexvault/storefront-backend/internal/gate"
	"github.com/nexvault/storefront-backend/pkg/logger"
)

const (
	maxQueryLen    = 200
	maxCategoryLen = 100
)

type catalogListResponse struct {
	Items      []catalog.ItemDTO `json:"items"`
	Categories []string          `json:"categories"`
	Total      int               `json:"total"`
}

// CatalogList returns the rarity-sorted catalog filtered by ?q= and ?category=.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := catalogKindParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), catalog.ListInput{
			Kind:     kind,
			Query:    validators.ParseQueryString(r, "q", maxQueryLen),
			Category: validators.ParseQueryString(r, "category", maxCategoryLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := svc.Categories(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalogListResponse{
			Items:      catalog.FromItems(items),
			Categories: categories,
			Total:      len(items),
		})
	}
}

// CatalogCategories lists the filter categories of a catalog, "All" first.
func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := catalogKindParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categories, err := svc.Categories(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

func CatalogFeatured(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := catalogKindParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Featured(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog.FromItems(items))
	}
}

func CatalogGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := catalogKindParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), kind, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog.FromItem(item))
	}
}

type unlockRequest struct {
	Pin string `json:"pin" validate:"max=64"`
}

// CatalogUnlock checks a PIN against the item's tier and returns the gated
// payload only on a match.
func CatalogUnlock(svc gate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := catalogKindParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body unlockRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unlock, err := svc.SubmitPin(r.Context(), kind, chi.URLParam(r, "id"), body.Pin)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		responses.WriteSuccess(w, unlock)
	}
}

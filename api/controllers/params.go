package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nexvault/storefront-backend/api/middleware"
	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
)

func catalogKindParam(r *http.Request) (enums.CatalogKind, error) {
	raw := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "kind")))
	kind, err := enums.ParseCatalogKind(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown catalog").WithDetails(map[string]any{"kind": raw})
	}
	return kind, nil
}

func mediaTypeParam(r *http.Request) (enums.MediaType, error) {
	raw := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "mediaType")))
	mediaType, err := enums.ParseMediaType(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown media type").WithDetails(map[string]any{"media_type": raw})
	}
	return mediaType, nil
}

func positiveIntParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]any{"field": name})
	}
	return value, nil
}

// currentUserID reads the authenticated user from the request context.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

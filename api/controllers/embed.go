package controllers

import (
	"net/http"
	"strings"

	"github.com/nexvault/storefront-backend/api/responses"
	"github.com/nexvault/storefront-backend/api/validators"
	"github.com/nexvault/storefront-backend/internal/embed"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/logger"
)

type embedResponse struct {
	StreamURL string         `json:"stream_url"`
	DirectURL string         `json:"direct_url"`
	Server    string         `json:"server"`
	Servers   []embed.Server `json:"servers"`
}

// EmbedURLs builds the player URLs for a title.
func EmbedURLs(builder *embed.Builder, logg *logger.Logger) http.HandlerFunc {
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
		server := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("server")))
		if server != "" && !embed.KnownServer(server) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown server").WithDetails(map[string]any{"server": server}))
			return
		}
		season, err := validators.ParseQueryInt(r, "season", 0, 0, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		episode, err := validators.ParseQueryInt(r, "episode", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, embedResponse{
			StreamURL: builder.StreamURL(mediaType, id, server),
			DirectURL: builder.DirectURL(id, season, episode),
			Server:    builder.ResolveServer(server),
			Servers:   builder.Servers(),
		})
	}
}

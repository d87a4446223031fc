package metadata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nexvault/storefront-backend/internal/metadata/freshness"
	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/metrics"
)

// Listing carries the provider results verbatim alongside their display records.
type Listing struct {
	Results []json.RawMessage `json:"results"`
	Items   []Media           `json:"items"`
}

// SearchResult is a Listing for one query. Stale results were superseded by a
// newer search in the same session and are always empty.
type SearchResult struct {
	Listing
	Query string `json:"query"`
	Stale bool   `json:"stale"`
}

// Service exposes the metadata provider to HTTP handlers.
type Service interface {
	Trending(ctx context.Context, mediaType enums.MediaType, window enums.TimeWindow) Listing
	Search(ctx context.Context, session, query string) SearchResult
	Discover(ctx context.Context, mediaType enums.MediaType, genreID int) (Listing, error)
	Details(ctx context.Context, mediaType enums.MediaType, id int) (*Details, error)
	Genres() []Genre
}

type service struct {
	client  *Client
	tracker *freshness.Tracker
	metrics *metrics.MetadataMetrics
}

func NewService(client *Client, tracker *freshness.Tracker, m *metrics.MetadataMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("metadata client required")
	}
	if tracker == nil {
		tracker = freshness.NewTracker()
	}
	return &service{client: client, tracker: tracker, metrics: m}, nil
}

func (s *service) Trending(ctx context.Context, mediaType enums.MediaType, window enums.TimeWindow) Listing {
	return s.listing(s.client.FetchTrending(ctx, mediaType, window), mediaType)
}

func (s *service) Search(ctx context.Context, session, query string) SearchResult {
	reqCtx, seq := s.tracker.Begin(ctx, session)
	results := s.client.SearchMulti(reqCtx, query)
	if !s.tracker.Commit(session, seq) {
		s.metrics.IncStale("search")
		return SearchResult{Listing: s.listing(nil, enums.MediaTypeAll), Query: query, Stale: true}
	}
	return SearchResult{Listing: s.listing(results, enums.MediaTypeAll), Query: query}
}

func (s *service) Discover(ctx context.Context, mediaType enums.MediaType, genreID int) (Listing, error) {
	if _, ok := GenreByID(genreID); !ok {
		return Listing{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown genre %d", genreID))
	}
	if !mediaType.IsTitle() {
		mediaType = enums.MediaTypeMovie
	}
	return s.listing(s.client.FetchByGenre(ctx, mediaType, genreID), mediaType), nil
}

func (s *service) Details(ctx context.Context, mediaType enums.MediaType, id int) (*Details, error) {
	if !mediaType.IsTitle() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media type must be movie or tv")
	}
	details := s.client.FetchDetails(ctx, mediaType, id)
	if details == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "title not found").
			WithDetails(map[string]any{"id": id, "media_type": mediaType})
	}
	return details, nil
}

func (s *service) Genres() []Genre {
	return Genres()
}

func (s *service) listing(results []json.RawMessage, fallback enums.MediaType) Listing {
	if results == nil {
		results = []json.RawMessage{}
	}
	return Listing{Results: results, Items: s.client.NormalizeResults(results, fallback)}
}

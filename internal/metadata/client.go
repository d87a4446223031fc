package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nexvault/storefront-backend/pkg/config"
	"github.com/nexvault/storefront-backend/pkg/enums"
	"github.com/nexvault/storefront-backend/pkg/logger"
	"github.com/nexvault/storefront-backend/pkg/metrics"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL            = "https://api.themoviedb.org/3"
	defaultImageBaseURL       = "https://image.tmdb.org/t/p"
	defaultImageSize          = "w500"
	defaultTimeout            = 10 * time.Second
	errorBodyReadLimit  int64 = 1024
	responseReadLimit   int64 = 4 << 20
	detailsAppend             = "videos,credits,similar"
)

var errTokenRequired = errors.New("metadata api token is required")

// Client wraps the movie/TV metadata provider. List operations never fail:
// transport, status and decode errors are logged and yield an empty list.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	token        string
	limiter      *rate.Limiter
	logg         *logger.Logger
	metrics      *metrics.MetadataMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the provider API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

func WithImageBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.imageBaseURL = trimmed
		}
	}
}

// WithRateLimit throttles outbound requests. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

func WithMetrics(m *metrics.MetadataMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the metadata client given a bearer token.
func NewClient(token string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		token:        trimmed,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// NewClientFromConfig wires the client from application configuration.
func NewClientFromConfig(cfg config.MetadataConfig, logg *logger.Logger, m *metrics.MetadataMetrics) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewClient(cfg.Token,
		WithBaseURL(cfg.BaseURL),
		WithImageBaseURL(cfg.ImageBaseURL),
		WithHTTPClient(&http.Client{Timeout: timeout}),
		WithRateLimit(cfg.RateLimitRPS, cfg.RateBurst),
		WithLogger(logg),
		WithMetrics(m),
	)
}

// FetchTrending returns the provider's trending list for the media type and window.
func (c *Client) FetchTrending(ctx context.Context, mediaType enums.MediaType, window enums.TimeWindow) []json.RawMessage {
	if !mediaType.IsValid() {
		mediaType = enums.MediaTypeAll
	}
	if !window.IsValid() {
		window = enums.TimeWindowDay
	}
	path := fmt.Sprintf("trending/%s/%s", mediaType, window)
	return c.list(ctx, "trending", path, nil)
}

// SearchMulti searches movies, shows and people. An empty query issues no request.
func (c *Client) SearchMulti(ctx context.Context, query string) []json.RawMessage {
	if strings.TrimSpace(query) == "" {
		return []json.RawMessage{}
	}
	return c.list(ctx, "search", "search/multi", url.Values{"query": {query}})
}

// FetchByGenre discovers titles of one genre. Anything but tv is treated as movie.
func (c *Client) FetchByGenre(ctx context.Context, mediaType enums.MediaType, genreID int) []json.RawMessage {
	path := "discover/" + titleType(mediaType)
	return c.list(ctx, "discover", path, url.Values{"with_genres": {strconv.Itoa(genreID)}})
}

// FetchDetails loads one title with its videos, credits and similar titles.
// It returns nil on any failure.
func (c *Client) FetchDetails(ctx context.Context, mediaType enums.MediaType, id int) *Details {
	if c == nil || id <= 0 || !mediaType.IsTitle() {
		return nil
	}
	path := fmt.Sprintf("%s/%d", mediaType, id)
	body, err := c.get(ctx, "details", path, url.Values{"append_to_response": {detailsAppend}})
	if err != nil {
		return nil
	}
	if !gjson.ValidBytes(body) {
		c.fail(ctx, "details", path, errors.New("invalid json body"))
		return nil
	}
	return &Details{
		MediaType: mediaType,
		Media:     json.RawMessage(body),
		Trailer:   selectTrailer(body),
	}
}

// ImageURL builds an image CDN URL. Empty paths produce an empty string.
func (c *Client) ImageURL(path, size string) string {
	base := defaultImageBaseURL
	if c != nil && c.imageBaseURL != "" {
		base = c.imageBaseURL
	}
	return imageURL(base, path, size)
}

func imageURL(base, path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = defaultImageSize
	}
	return fmt.Sprintf("%s/%s%s", strings.TrimRight(base, "/"), size, path)
}

func (c *Client) list(ctx context.Context, operation, path string, query url.Values) []json.RawMessage {
	if c == nil {
		return []json.RawMessage{}
	}
	body, err := c.get(ctx, operation, path, query)
	if err != nil {
		return []json.RawMessage{}
	}
	results, err := extractResults(body)
	if err != nil {
		c.fail(ctx, operation, path, err)
		return []json.RawMessage{}
	}
	return results
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	start := time.Now()
	body, err := c.do(ctx, path, query)
	if err != nil {
		c.metrics.Observe(operation, metrics.OutcomeFailed, time.Since(start))
		c.fail(ctx, operation, path, err)
		return nil, err
	}
	c.metrics.Observe(operation, metrics.OutcomeOK, time.Since(start))
	return body, nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := c.buildURL(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseReadLimit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) fail(ctx context.Context, operation, path string, err error) {
	if c.logg == nil {
		return
	}
	ctx = c.logg.WithFields(ctx, map[string]any{
		"operation": operation,
		"path":      path,
		"error":     err.Error(),
	})
	c.logg.Warn(ctx, "metadata.request_failed")
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}

func extractResults(body []byte) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid json body")
	}
	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return nil, errors.New("response has no results array")
	}
	items := results.Array()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item.Raw))
	}
	return out, nil
}

func titleType(mediaType enums.MediaType) string {
	if mediaType == enums.MediaTypeTV {
		return string(enums.MediaTypeTV)
	}
	return string(enums.MediaTypeMovie)
}

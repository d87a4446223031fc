package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nexvault/storefront-backend/api/controllers"
	"github.com/nexvault/storefront-backend/api/middleware"
	"github.com/nexvault/storefront-backend/internal/analytics"
	"github.com/nexvault/storefront-backend/internal/auth"
	"github.com/nexvault/storefront-backend/internal/catalog"
	"github.com/nexvault/storefront-backend/internal/embed"
	"github.com/nexvault/storefront-backend/internal/gate"
	"github.com/nexvault/storefront-backend/internal/metadata"
	"github.com/nexvault/storefront-backend/internal/reports"
	"github.com/nexvault/storefront-backend/pkg/auth/session"
	"github.com/nexvault/storefront-backend/pkg/config"
	"github.com/nexvault/storefront-backend/pkg/logger"
	"github.com/nexvault/storefront-backend/pkg/metrics"
)

// Limiter is the Redis counter surface used by the rate limit middleware.
type Limiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	GateAttemptScope(clientKey, itemRef string) string
}

// Deps carries everything the router mounts.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Sessions       session.AccessSessionChecker
	Limiter        Limiter
	Ready          map[string]controllers.Pinger
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth      auth.Service
	Catalog   catalog.Service
	Gate      gate.Service
	Metadata  metadata.Service
	Reports   reports.Service
	Analytics analytics.Service
	Embed     *embed.Builder
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, d.HTTPMetrics),
		middleware.SecurityHeaders(d.Embed.Origin()),
		middleware.CORS(cfg.CORS.AllowedOrigins, cfg.Search.SessionHeader),
	)

	limiter := d.Limiter
	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)
	requireAuth := middleware.Auth(cfg.JWT, d.Sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.Ready, logg))
	})
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, d.Sessions, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(signupPolicy, limiter, logg)).Post("/signup", controllers.AuthSignUp(d.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
			r.With(requireAuth).Post("/logout", controllers.AuthLogout(d.Auth, logg))
		})

		r.Route("/catalog/{kind}", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(d.Catalog, logg))
			r.Get("/featured", controllers.CatalogFeatured(d.Catalog, logg))
			r.Get("/categories", controllers.CatalogCategories(d.Catalog, logg))
			r.Get("/{id}", controllers.CatalogGet(d.Catalog, logg))
			r.With(middleware.GateAttemptLimit(cfg.Gate.AttemptLimit, cfg.Gate.AttemptWindow, limiter, logg)).
				Post("/{id}/unlock", controllers.CatalogUnlock(d.Gate, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/genres", controllers.MediaGenres(d.Metadata))
			r.Get("/search", controllers.MediaSearch(d.Metadata, cfg.Search.SessionHeader, logg))
			r.Get("/trending/{mediaType}/{window}", controllers.MediaTrending(d.Metadata, logg))
			r.Get("/discover/{mediaType}", controllers.MediaDiscover(d.Metadata, logg))
			r.Get("/{mediaType}/{id}", controllers.MediaDetails(d.Metadata, logg))
		})

		r.Get("/embed/{mediaType}/{id}", controllers.EmbedURLs(d.Embed, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", controllers.MeGet(d.Auth, logg))
			r.Patch("/me", controllers.MeUpdate(d.Auth, logg))
			r.Post("/me/activity", controllers.MeActivity(d.Auth, logg))
			r.Post("/reports", controllers.ReportSubmit(d.Reports, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.RequireAdmin(logg))
		r.Get("/reports", controllers.AdminReportsList(d.Reports, logg))
		r.Get("/analytics", controllers.AdminAnalytics(d.Analytics, logg))
	})

	return r
}

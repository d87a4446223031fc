package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/logger"
	redisclient "github.com/nexvault/storefront-backend/pkg/redis"
	"go.uber.org/multierr"
)

const snapshotName = "analytics"

// Service computes and caches the admin analytics snapshot.
type Service interface {
	// Compute builds a snapshot from the database and catalog.
	Compute(ctx context.Context) (*Snapshot, error)
	// Refresh computes a snapshot and stores it in the cache.
	Refresh(ctx context.Context) (*Snapshot, error)
	// Get serves the cached snapshot, refreshing on a miss.
	Get(ctx context.Context) (*Snapshot, error)
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	CountLoginsSince(ctx context.Context, since time.Time) (int64, error)
}

type reportCounter interface {
	Count(ctx context.Context, status *enums.ReportStatus) (int64, error)
}

type catalogCounter interface {
	Counts(ctx context.Context) map[enums.CatalogKind]int
}

type snapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SnapshotKey(name string) string
}

type ServiceParams struct {
	Users   userCounter
	Reports reportCounter
	Catalog catalogCounter
	Cache   snapshotCache
	TTL     time.Duration
	Logger  *logger.Logger
}

type service struct {
	users   userCounter
	reports reportCounter
	catalog catalogCounter
	cache   snapshotCache
	ttl     time.Duration
	logg    *logger.Logger
	now     func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Reports == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &service{
		users:   params.Users,
		reports: params.Reports,
		catalog: params.Catalog,
		cache:   params.Cache,
		ttl:     ttl,
		logg:    params.Logger,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Compute(ctx context.Context) (*Snapshot, error) {
	now := s.now()
	snap := &Snapshot{GeneratedAt: now}
	pending := enums.ReportStatusPending

	var err error
	count := func(dst *int64, fn func() (int64, error)) {
		n, cerr := fn()
		if cerr != nil {
			err = multierr.Append(err, cerr)
			return
		}
		*dst = n
	}

	count(&snap.TotalUsers, func() (int64, error) { return s.users.Count(ctx) })
	count(&snap.ActiveUsers, func() (int64, error) { return s.users.CountActiveSince(ctx, now.Add(-day)) })
	count(&snap.DailyLogins, func() (int64, error) { return s.users.CountLoginsSince(ctx, now.Add(-day)) })
	count(&snap.WeeklyLogins, func() (int64, error) { return s.users.CountLoginsSince(ctx, now.Add(-week)) })
	count(&snap.MonthlyLogins, func() (int64, error) { return s.users.CountLoginsSince(ctx, now.Add(-month)) })
	count(&snap.TotalReports, func() (int64, error) { return s.reports.Count(ctx, nil) })
	count(&snap.PendingReports, func() (int64, error) { return s.reports.Count(ctx, &pending) })
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute analytics")
	}

	snap.CatalogCounts = s.catalog.Counts(ctx)
	return snap, nil
}

func (s *service) Refresh(ctx context.Context) (*Snapshot, error) {
	snap, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *service) Get(ctx context.Context) (*Snapshot, error) {
	if cached, ok := s.load(ctx); ok {
		return cached, nil
	}
	snap, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, snap); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "analytics.cache_write_failed")
	}
	return snap, nil
}

func (s *service) load(ctx context.Context) (*Snapshot, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.SnapshotKey(snapshotName))
	if err != nil {
		if !redisclient.IsNil(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "analytics.cache_read_failed")
		}
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (s *service) store(ctx context.Context, snap *Snapshot) error {
	if s.cache == nil {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode snapshot")
	}
	if err := s.cache.Set(ctx, s.cache.SnapshotKey(snapshotName), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache snapshot")
	}
	return nil
}

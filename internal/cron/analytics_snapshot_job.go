package cron

import (
	"context"
	"fmt"

	"github.com/nexvault/storefront-backend/internal/analytics"
	"github.com/nexvault/storefront-backend/pkg/logger"
)

const AnalyticsSnapshotJobName = "analytics_snapshot"

type snapshotRefresher interface {
	Refresh(ctx context.Context) (*analytics.Snapshot, error)
}

type AnalyticsSnapshotJobParams struct {
	Logger    *logger.Logger
	Analytics snapshotRefresher
}

// NewAnalyticsSnapshotJob recomputes the admin analytics snapshot and stores it in the cache.
func NewAnalyticsSnapshotJob(params AnalyticsSnapshotJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Analytics == nil {
		return nil, fmt.Errorf("analytics service required")
	}
	return &analyticsSnapshotJob{logg: params.Logger, analytics: params.Analytics}, nil
}

type analyticsSnapshotJob struct {
	logg      *logger.Logger
	analytics snapshotRefresher
}

func (j *analyticsSnapshotJob) Name() string { return AnalyticsSnapshotJobName }

func (j *analyticsSnapshotJob) Run(ctx context.Context) error {
	snapshot, err := j.analytics.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh analytics snapshot: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"total_users":     snapshot.TotalUsers,
		"active_users":    snapshot.ActiveUsers,
		"pending_reports": snapshot.PendingReports,
	})
	j.logg.Info(logCtx, "analytics snapshot refreshed")
	return nil
}

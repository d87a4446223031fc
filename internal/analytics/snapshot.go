package analytics

import (
	"time"

	"github.com/nexvault/storefront-backend/pkg/enums"
)

// Snapshot is the admin dashboard read model.
type Snapshot struct {
	TotalUsers     int64                     `json:"total_users"`
	ActiveUsers    int64                     `json:"active_users"`
	DailyLogins    int64                     `json:"daily_logins"`
	WeeklyLogins   int64                     `json:"weekly_logins"`
	MonthlyLogins  int64                     `json:"monthly_logins"`
	TotalReports   int64                     `json:"total_reports"`
	PendingReports int64                     `json:"pending_reports"`
	CatalogCounts  map[enums.CatalogKind]int `json:"catalog_counts"`
	GeneratedAt    time.Time                 `json:"generated_at"`
}

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexvault/storefront-backend/pkg/enums"
)

// Report is an append-only problem report filed against a catalog item.
type Report struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey"`
	ItemID      string             `gorm:"column:item_id;not null"`
	ItemName    string             `gorm:"column:item_name;not null"`
	Kind        enums.CatalogKind  `gorm:"column:kind;type:text;not null"`
	ServiceName string             `gorm:"column:service_name;not null"`
	IssueType   string             `gorm:"column:issue_type;not null"`
	Reason      enums.ReportReason `gorm:"column:reason;type:text;not null"`
	Details     string             `gorm:"column:details;not null"`
	UserID      *uuid.UUID         `gorm:"column:user_id;type:uuid"`
	Status      enums.ReportStatus `gorm:"column:status;type:text;not null;default:pending"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (Report) TableName() string { return "reports" }

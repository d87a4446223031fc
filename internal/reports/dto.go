package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexvault/storefront-backend/pkg/db/models"
	"github.com/nexvault/storefront-backend/pkg/enums"
)

// SubmitRequest is the report form posted by a signed-in user.
type SubmitRequest struct {
	ItemID      string             `json:"item_id" validate:"required,max=128"`
	Kind        enums.CatalogKind  `json:"kind" validate:"required"`
	ServiceName string             `json:"service_name" validate:"max=200"`
	IssueType   string             `json:"issue_type" validate:"max=100"`
	Reason      enums.ReportReason `json:"reason" validate:"required"`
	Details     string             `json:"details" validate:"required,max=4000"`
}

type ReportDTO struct {
	ID          uuid.UUID          `json:"id"`
	ItemID      string             `json:"item_id"`
	ItemName    string             `json:"item_name"`
	Kind        enums.CatalogKind  `json:"kind"`
	ServiceName string             `json:"service_name,omitempty"`
	IssueType   string             `json:"issue_type,omitempty"`
	Reason      enums.ReportReason `json:"reason"`
	Details     string             `json:"details"`
	UserID      *uuid.UUID         `json:"user_id,omitempty"`
	Status      enums.ReportStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

func FromModel(m models.Report) ReportDTO {
	return ReportDTO{
		ID:          m.ID,
		ItemID:      m.ItemID,
		ItemName:    m.ItemName,
		Kind:        m.Kind,
		ServiceName: m.ServiceName,
		IssueType:   m.IssueType,
		Reason:      m.Reason,
		Details:     m.Details,
		UserID:      m.UserID,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
}

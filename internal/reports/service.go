package reports

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexvault/storefront-backend/internal/catalog"
	"github.com/nexvault/storefront-backend/pkg/db/models"
	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/nexvault/storefront-backend/pkg/pagination"
)

// Service files and lists problem reports.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*ReportDTO, error)
	List(ctx context.Context, params ListParams) (*pagination.Page[ReportDTO], error)
}

// ListParams configures the admin report listing.
type ListParams struct {
	Limit  int
	Cursor string
	Status string
	Kind   string
}

type service struct {
	repo    Repository
	catalog catalog.Service
	now     func() time.Time
}

// NewService wires report dependencies. The catalog resolves item names.
func NewService(repo Repository, catalogSvc catalog.Service) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reports repository required")
	}
	if catalogSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog service required")
	}
	return &service{
		repo:    repo,
		catalog: catalogSvc,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*ReportDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "you must be logged in to submit a report")
	}
	if !req.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item kind")
	}
	if !req.Reason.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid report reason")
	}
	details := strings.TrimSpace(req.Details)
	if details == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "details are required")
	}

	item, err := s.catalog.Get(ctx, req.Kind, strings.TrimSpace(req.ItemID))
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:          uuid.New(),
		ItemID:      item.ID,
		ItemName:    item.Name,
		Kind:        req.Kind,
		ServiceName: strings.TrimSpace(req.ServiceName),
		IssueType:   strings.TrimSpace(req.IssueType),
		Reason:      req.Reason,
		Details:     details,
		UserID:      &userID,
		Status:      enums.ReportStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create report")
	}

	dto := FromModel(*report)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*pagination.Page[ReportDTO], error) {
	query := listReportsParams{Limit: params.Limit}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}
	if params.Status != "" {
		status, err := enums.ParseReportStatus(params.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		query.Status = &status
	}
	if params.Kind != "" {
		kind, err := enums.ParseCatalogKind(params.Kind)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid kind")
		}
		query.Kind = &kind
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}

	page := &pagination.Page[ReportDTO]{Items: make([]ReportDTO, 0, len(rows))}
	for _, row := range rows {
		page.Items = append(page.Items, FromModel(row))
	}
	if next != nil {
		page.NextCursor = pagination.EncodeCursor(*next)
	}
	return page, nil
}

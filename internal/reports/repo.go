package reports

import (
	"context"

	"github.com/nexvault/storefront-backend/pkg/db/models"
	"github.com/nexvault/storefront-backend/pkg/enums"
	"github.com/nexvault/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists reports. There is deliberately no update or delete.
type Repository interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context, params listReportsParams) ([]models.Report, *pagination.Cursor, error)
	Count(ctx context.Context, status *enums.ReportStatus) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listReportsParams struct {
	Limit  int
	Cursor *pagination.Cursor
	Status *enums.ReportStatus
	Kind   *enums.CatalogKind
}

func (r *repositoryImpl) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listReportsParams) ([]models.Report, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Report{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Report
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized-1]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

func (r *repositoryImpl) Count(ctx context.Context, status *enums.ReportStatus) (int64, error) {
	var n int64
	query := r.db.WithContext(ctx).Model(&models.Report{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Count(&n).Error
	return n, err
}

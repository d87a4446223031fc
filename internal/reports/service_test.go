package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexvault/storefront-backend/internal/catalog"
	"github.com/nexvault/storefront-backend/internal/users"
	"github.com/nexvault/storefront-backend/pkg/db/dbtest"
	"github.com/nexvault/storefront-backend/pkg/db/models"
	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	repo   Repository
	svc    Service
	userID uuid.UUID
}

func setup(t *testing.T) fixture {
	t.Helper()
	conn := dbtest.Open(t)

	user, err := users.NewRepository(conn).Create(context.Background(), users.CreateUserDTO{
		Email:        "reporter@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	store, err := catalog.NewStore(map[enums.CatalogKind][]catalog.Item{
		enums.CatalogKindAccount: {
			{ID: "netflix", Name: "Netflix", Rarity: enums.RarityMythic, ExternalLink: "https://x"},
		},
		enums.CatalogKindGame: {
			{ID: "doom", Name: "DOOM", Rarity: enums.RarityRare, Credentials: &catalog.Credentials{Username: "u"}},
		},
	})
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(store)
	require.NoError(t, err)

	repo := NewRepository(conn)
	svc, err := NewService(repo, catalogSvc)
	require.NoError(t, err)
	return fixture{db: conn, repo: repo, svc: svc, userID: user.ID}
}

func TestSubmitStoresPendingReport(t *testing.T) {
	f := setup(t)

	report, err := f.svc.Submit(context.Background(), f.userID, SubmitRequest{
		ItemID:      "netflix",
		Kind:        enums.CatalogKindAccount,
		ServiceName: " Netflix ",
		Reason:      enums.ReportReasonNotWorking,
		Details:     "  login fails  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Netflix", report.ItemName)
	assert.Equal(t, "Netflix", report.ServiceName)
	assert.Equal(t, "login fails", report.Details)
	assert.Equal(t, enums.ReportStatusPending, report.Status)
	require.NotNil(t, report.UserID)
	assert.Equal(t, f.userID, *report.UserID)
	assert.False(t, report.CreatedAt.IsZero())

	var stored models.Report
	require.NoError(t, f.db.First(&stored, "id = ?", report.ID).Error)
	assert.Equal(t, enums.ReportReasonNotWorking, stored.Reason)
}

func TestSubmitValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	valid := SubmitRequest{ItemID: "doom", Kind: enums.CatalogKindGame, Reason: enums.ReportReasonOther, Details: "x"}

	_, err := f.svc.Submit(ctx, uuid.Nil, valid)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))

	bad := valid
	bad.Reason = "spam"
	_, err = f.svc.Submit(ctx, f.userID, bad)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	bad = valid
	bad.Details = "   "
	_, err = f.svc.Submit(ctx, f.userID, bad)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	bad = valid
	bad.ItemID = "missing"
	_, err = f.svc.Submit(ctx, f.userID, bad)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestListNewestFirstWithCursor(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		status := enums.ReportStatusPending
		if i == 0 {
			status = enums.ReportStatusResolved
		}
		require.NoError(t, f.repo.Create(ctx, &models.Report{
			ID:        uuid.New(),
			ItemID:    "netflix",
			ItemName:  "Netflix",
			Kind:      enums.CatalogKindAccount,
			Reason:    enums.ReportReasonOther,
			Details:   "r",
			UserID:    &f.userID,
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	first, err := f.svc.List(ctx, ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, base.Add(4*time.Minute), first.Items[0].CreatedAt.UTC())
	assert.Equal(t, base.Add(3*time.Minute), first.Items[1].CreatedAt.UTC())
	require.NotEmpty(t, first.NextCursor)

	second, err := f.svc.List(ctx, ListParams{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, base.Add(2*time.Minute), second.Items[0].CreatedAt.UTC())

	third, err := f.svc.List(ctx, ListParams{Limit: 2, Cursor: second.NextCursor})
	require.NoError(t, err)
	require.Len(t, third.Items, 1)
	assert.Empty(t, third.NextCursor)

	pending, err := f.svc.List(ctx, ListParams{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending.Items, 4)

	count, err := f.repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestListRejectsBadFilters(t *testing.T) {
	f := setup(t)
	_, err := f.svc.List(context.Background(), ListParams{Cursor: "!!"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = f.svc.List(context.Background(), ListParams{Status: "archived"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

package catalog

import (
	"context"
	"testing"

	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	store, err := NewStore(map[enums.CatalogKind][]Item{
		enums.CatalogKindAccount: {
			{ID: "outlook", Name: "Outlook Premium", Rarity: "common", Category: "Email", ExternalLink: "https://x/outlook"},
			{ID: "netflix", Name: "Netflix", Rarity: "Mythic", Category: "Streaming", ExternalLink: "https://x/netflix"},
		},
		enums.CatalogKindGame: {
			{ID: "doom", Name: "DOOM", Rarity: "rare", Features: []Feature{{Label: "Genre", Value: "FPS"}}, Credentials: &Credentials{Username: "u", Password: "p"}},
		},
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceListSortsAndFilters(t *testing.T) {
	svc := newTestService(t)
	items, err := svc.List(context.Background(), ListInput{Kind: enums.CatalogKindAccount})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != "netflix" {
		t.Fatalf("expected netflix first, got %+v", items)
	}

	items, err = svc.List(context.Background(), ListInput{Kind: enums.CatalogKindAccount, Category: "Email"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != "outlook" {
		t.Fatalf("unexpected email items %+v", items)
	}
}

func TestServiceGetMissingReturnsRedirectHint(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), enums.CatalogKindGame, "nope")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["redirect_after_seconds"] != RedirectAfterSeconds {
		t.Fatalf("expected redirect hint, got %#v", typed.Details())
	}
}

func TestServiceRejectsUnknownKind(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Categories(context.Background(), "movies"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCountsAndCategories(t *testing.T) {
	svc := newTestService(t)
	counts := svc.Counts(context.Background())
	if counts[enums.CatalogKindAccount] != 2 || counts[enums.CatalogKindGame] != 1 || counts[enums.CatalogKindMethod] != 0 {
		t.Fatalf("unexpected counts %v", counts)
	}
	cats, err := svc.Categories(context.Background(), enums.CatalogKindGame)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 || cats[0] != CategoryAll || cats[1] != "FPS" {
		t.Fatalf("unexpected categories %v", cats)
	}
}

func TestFromItemHidesGatedPayload(t *testing.T) {
	dto := FromItem(Item{ID: "x", ExternalLink: "https://secret", Credentials: &Credentials{Username: "u"}})
	if !dto.Locked {
		t.Fatal("expected locked dto")
	}
	if got := FromItems(nil); got == nil {
		t.Fatal("expected empty slice")
	}
}

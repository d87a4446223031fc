package catalog

import (
	"context"
	"fmt"

	"github.com/nexvault/storefront-backend/pkg/enums"
	pkgerrors "github.com/nexvault/storefront-backend/pkg/errors"
)

// RedirectAfterSeconds is how long clients wait before leaving a missing-item page.
const RedirectAfterSeconds = 3

// Service exposes read access to the storefront catalogs.
type Service interface {
	List(ctx context.Context, input ListInput) ([]Item, error)
	Categories(ctx context.Context, kind enums.CatalogKind) ([]string, error)
	Featured(ctx context.Context, kind enums.CatalogKind) ([]Item, error)
	Get(ctx context.Context, kind enums.CatalogKind, id string) (Item, error)
	Counts(ctx context.Context) map[enums.CatalogKind]int
}

// ListInput carries the storefront search box and category chip. An empty
// Category lists every category.
type ListInput struct {
	Kind     enums.CatalogKind
	Query    string
	Category string
}

type service struct {
	store *Store
}

// NewService constructs a catalog service over a loaded store.
func NewService(store *Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	return &service{store: store}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]Item, error) {
	if err := ensureKind(input.Kind); err != nil {
		return nil, err
	}
	category := input.Category
	if category == "" {
		category = CategoryAll
	}
	return List(s.store.Items(input.Kind), input.Query, category), nil
}

func (s *service) Categories(ctx context.Context, kind enums.CatalogKind) ([]string, error) {
	if err := ensureKind(kind); err != nil {
		return nil, err
	}
	return Categories(s.store.Items(kind)), nil
}

func (s *service) Featured(ctx context.Context, kind enums.CatalogKind) ([]Item, error) {
	if err := ensureKind(kind); err != nil {
		return nil, err
	}
	return Featured(s.store.Items(kind)), nil
}

func (s *service) Get(ctx context.Context, kind enums.CatalogKind, id string) (Item, error) {
	if err := ensureKind(kind); err != nil {
		return Item{}, err
	}
	item, ok := s.store.Get(kind, id)
	if !ok {
		return Item{}, NotFound(kind, id)
	}
	return item, nil
}

func (s *service) Counts(ctx context.Context) map[enums.CatalogKind]int {
	counts := make(map[enums.CatalogKind]int, 3)
	for _, kind := range enums.CatalogKinds() {
		counts[kind] = s.store.Count(kind)
	}
	return counts
}

// NotFound builds the missing-item error clients use to schedule a redirect.
func NotFound(kind enums.CatalogKind, id string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", kind)).
		WithDetails(map[string]any{
			"id":                     id,
			"redirect_after_seconds": RedirectAfterSeconds,
		})
}

func ensureKind(kind enums.CatalogKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown catalog %q", kind))
	}
	return nil
}

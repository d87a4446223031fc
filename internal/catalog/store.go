package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nexvault/storefront-backend/pkg/enums"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embeddedData embed.FS

var dataFiles = map[enums.CatalogKind]string{
	enums.CatalogKindAccount: "data/accounts.yaml",
	enums.CatalogKindGame:    "data/games.yaml",
	enums.CatalogKindMethod:  "data/methods.yaml",
}

// Store holds the immutable catalogs in load order. Reads need no locking.
type Store struct {
	items map[enums.CatalogKind][]Item
	index map[enums.CatalogKind]map[string]int
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Store, error) {
	return Load(embeddedData)
}

// Load decodes and validates every catalog file from fsys.
func Load(fsys fs.FS) (*Store, error) {
	store := &Store{
		items: make(map[enums.CatalogKind][]Item, len(dataFiles)),
		index: make(map[enums.CatalogKind]map[string]int, len(dataFiles)),
	}
	for _, kind := range enums.CatalogKinds() {
		raw, err := fs.ReadFile(fsys, dataFiles[kind])
		if err != nil {
			return nil, fmt.Errorf("read %s catalog: %w", kind, err)
		}
		items, err := decode(kind, raw)
		if err != nil {
			return nil, err
		}
		if err := store.add(kind, items); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// NewStore builds a store from in-memory items, applying the same validation as Load.
func NewStore(catalogs map[enums.CatalogKind][]Item) (*Store, error) {
	store := &Store{
		items: make(map[enums.CatalogKind][]Item, len(catalogs)),
		index: make(map[enums.CatalogKind]map[string]int, len(catalogs)),
	}
	for kind, items := range catalogs {
		normalized := make([]Item, len(items))
		for i, item := range items {
			item.Kind = kind
			if err := normalize(&item); err != nil {
				return nil, err
			}
			normalized[i] = item
		}
		if err := store.add(kind, normalized); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func decode(kind enums.CatalogKind, raw []byte) ([]Item, error) {
	var items []Item
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", kind, err)
	}
	for i := range items {
		items[i].Kind = kind
		if err := normalize(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func normalize(item *Item) error {
	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	if item.ID == "" {
		return fmt.Errorf("%s catalog: item %q has no id", item.Kind, item.Name)
	}
	if item.Name == "" {
		return fmt.Errorf("%s catalog: item %q has no name", item.Kind, item.ID)
	}
	rarity, err := enums.ParseRarity(string(item.Rarity))
	if err != nil {
		return fmt.Errorf("%s catalog: item %q: %w", item.Kind, item.ID, err)
	}
	item.Rarity = rarity

	switch item.Kind {
	case enums.CatalogKindGame:
		if item.Credentials == nil || item.Credentials.Username == "" {
			return fmt.Errorf("game %q has no credentials", item.ID)
		}
		if item.Category == "" {
			if genre, ok := item.Feature("Genre"); ok {
				item.Category = genre
			}
		}
	default:
		if item.ExternalLink == "" {
			return fmt.Errorf("%s %q has no external link", item.Kind, item.ID)
		}
	}
	return nil
}

func (s *Store) add(kind enums.CatalogKind, items []Item) error {
	index := make(map[string]int, len(items))
	for i, item := range items {
		if _, dup := index[item.ID]; dup {
			return fmt.Errorf("%s catalog: duplicate id %q", kind, item.ID)
		}
		index[item.ID] = i
	}
	s.items[kind] = items
	s.index[kind] = index
	return nil
}

// Items returns the catalog in load order. The slice is a copy.
func (s *Store) Items(kind enums.CatalogKind) []Item {
	src := s.items[kind]
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// Get looks up one item by id.
func (s *Store) Get(kind enums.CatalogKind, id string) (Item, bool) {
	idx, ok := s.index[kind][id]
	if !ok {
		return Item{}, false
	}
	return s.items[kind][idx], true
}

// Count returns the number of items in a catalog.
func (s *Store) Count(kind enums.CatalogKind) int {
	return len(s.items[kind])
}

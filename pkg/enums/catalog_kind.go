package enums

import "fmt"

// CatalogKind identifies one of the storefront catalogs.
type CatalogKind string

const (
	CatalogKindAccount CatalogKind = "account"
	CatalogKindGame    CatalogKind = "game"
	CatalogKindMethod  CatalogKind = "method"
)

var validCatalogKinds = []CatalogKind{
	CatalogKindAccount,
	CatalogKindGame,
	CatalogKindMethod,
}

// CatalogKinds lists every catalog in display order.
func CatalogKinds() []CatalogKind {
	out := make([]CatalogKind, len(validCatalogKinds))
	copy(out, validCatalogKinds)
	return out
}

func (k CatalogKind) String() string {
	return string(k)
}

func (k CatalogKind) IsValid() bool {
	for _, candidate := range validCatalogKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCatalogKind accepts the singular kind or its plural path form ("accounts").
func ParseCatalogKind(value string) (CatalogKind, error) {
	for _, candidate := range validCatalogKinds {
		if string(candidate) == value || string(candidate)+"s" == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog kind %q", value)
}

package catalog

import "github.com/nexvault/storefront-backend/pkg/enums"

// Item is one sellable catalog entry. ExternalLink and Credentials are the gated
// payload and must only leave the process through a successful unlock.
type Item struct {
	ID               string            `yaml:"id"`
	Kind             enums.CatalogKind `yaml:"-"`
	Name             string            `yaml:"name"`
	Description      string            `yaml:"description"`
	Rarity           enums.Rarity      `yaml:"rarity"`
	Category         string            `yaml:"category"`
	ImageURL         string            `yaml:"image_url"`
	ExternalLink     string            `yaml:"external_link"`
	Credentials      *Credentials      `yaml:"credentials"`
	Features         []Feature         `yaml:"features"`
	Highlights       []string          `yaml:"highlights"`
	Details          *Details          `yaml:"details"`
	InStock          bool              `yaml:"in_stock"`
	StockCount       int               `yaml:"stock_count"`
	Available        *bool             `yaml:"available"`
	MethodsAvailable int               `yaml:"methods_available"`
}

type Feature struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Details struct {
	Validity    string `yaml:"validity" json:"validity"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Region      string `yaml:"region" json:"region"`
}

// Credentials are revealed for games instead of an external link.
type Credentials struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Feature returns the value of the labelled feature, if present.
func (i Item) Feature(label string) (string, bool) {
	for _, f := range i.Features {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// Ref identifies the item across catalogs.
func (i Item) Ref() string {
	return string(i.Kind) + ":" + i.ID
}

package catalog

import "github.com/nexvault/storefront-backend/pkg/enums"

// ItemDTO is the public view of an item; the gated payload is never included.
type ItemDTO struct {
	ID               string            `json:"id"`
	Kind             enums.CatalogKind `json:"kind"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Rarity           enums.Rarity      `json:"rarity"`
	Category         string            `json:"category"`
	ImageURL         string            `json:"image_url"`
	Features         []Feature         `json:"features,omitempty"`
	Highlights       []string          `json:"highlights,omitempty"`
	Details          *Details          `json:"details,omitempty"`
	InStock          bool              `json:"in_stock"`
	StockCount       int               `json:"stock_count,omitempty"`
	Available        *bool             `json:"available,omitempty"`
	MethodsAvailable int               `json:"methods_available,omitempty"`
	Locked           bool              `json:"locked"`
}

func FromItem(item Item) ItemDTO {
	return ItemDTO{
		ID:               item.ID,
		Kind:             item.Kind,
		Name:             item.Name,
		Description:      item.Description,
		Rarity:           item.Rarity,
		Category:         item.Category,
		ImageURL:         item.ImageURL,
		Features:         item.Features,
		Highlights:       item.Highlights,
		Details:          item.Details,
		InStock:          item.InStock,
		StockCount:       item.StockCount,
		Available:        item.Available,
		MethodsAvailable: item.MethodsAvailable,
		Locked:           true,
	}
}

func FromItems(items []Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, FromItem(item))
	}
	return out
}

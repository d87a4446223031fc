package catalog

import (
	"sort"
	"strings"

	"github.com/nexvault/storefront-backend/pkg/enums"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// SortByRarity returns a copy ordered mythic first, common last. Ties keep their input order.
func SortByRarity(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rarity.Rank() < out[j].Rarity.Rank()
	})
	return out
}

// Filter keeps items whose name or description contains query (case-insensitive)
// and whose category equals category, or every category for CategoryAll. The
// query is matched as given, whitespace included. The result is never nil and
// preserves input order.
func Filter(items []Item, query, category string) []Item {
	needle := strings.ToLower(query)
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !matchesCategory(item, category) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesCategory(item Item, category string) bool {
	return category == CategoryAll || item.Category == category
}

// Categories returns CategoryAll followed by the distinct item categories, sorted.
func Categories(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	distinct := make([]string, 0, len(items))
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		distinct = append(distinct, item.Category)
	}
	sort.Strings(distinct)
	return append([]string{CategoryAll}, distinct...)
}

// Featured returns the mythic and legendary items, rarity sorted.
func Featured(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range SortByRarity(items) {
		if item.Rarity == enums.RarityMythic || item.Rarity == enums.RarityLegendary {
			out = append(out, item)
		}
	}
	return out
}

// List is the storefront listing: rarity sorted, then filtered.
func List(items []Item, query, category string) []Item {
	return Filter(SortByRarity(items), query, category)
}

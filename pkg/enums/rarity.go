package enums

import (
	"fmt"
	"strings"
)

// Rarity ranks catalog items; lower rank sorts first.
type Rarity string

const (
	RarityMythic    Rarity = "mythic"
	RarityLegendary Rarity = "legendary"
	RarityEpic      Rarity = "epic"
	RarityRare      Rarity = "rare"
	RarityUncommon  Rarity = "uncommon"
	RarityCommon    Rarity = "common"
)

// validRarities is ordered best first; the index is the rank.
var validRarities = []Rarity{
	RarityMythic,
	RarityLegendary,
	RarityEpic,
	RarityRare,
	RarityUncommon,
	RarityCommon,
}

// Rarities returns every tier, best first.
func Rarities() []Rarity {
	out := make([]Rarity, len(validRarities))
	copy(out, validRarities)
	return out
}

// String implements fmt.Stringer.
func (r Rarity) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Rarity.
func (r Rarity) IsValid() bool {
	return r.Rank() >= 0
}

// Rank returns 0 for mythic through 5 for common, or -1 for unknown values.
func (r Rarity) Rank() int {
	for i, candidate := range validRarities {
		if candidate == r {
			return i
		}
	}
	return -1
}

// ParseRarity converts raw input into a Rarity, ignoring case and surrounding space.
func ParseRarity(value string) (Rarity, error) {
	normalized := Rarity(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid rarity %q", value)
}

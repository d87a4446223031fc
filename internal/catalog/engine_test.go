package catalog

import (
	"testing"

	"github.com/nexvault/storefront-backend/pkg/enums"
)

func sampleItems() []Item {
	return []Item{
		{ID: "outlook", Name: "Outlook Premium", Description: "Mail with custom domain", Rarity: enums.RarityCommon, Category: "Email"},
		{ID: "netflix", Name: "Netflix", Description: "Premium 4K UHD", Rarity: enums.RarityMythic, Category: "Streaming"},
		{ID: "spotify", Name: "Spotify", Description: "Ad-free music", Rarity: enums.RarityLegendary, Category: "Streaming"},
		{ID: "disney", Name: "Disney+", Description: "Family streaming", Rarity: enums.RarityEpic, Category: "Streaming"},
		{ID: "epic", Name: "Epic Games", Description: "Exclusive games", Rarity: enums.RarityMythic, Category: "Gaming"},
		{ID: "lol", Name: "League of Legends", Description: "Rare skins", Rarity: enums.RarityUncommon, Category: "Gaming"},
		{ID: "vpn", Name: "VPN Premium", Description: "No logs", Rarity: enums.RarityRare, Category: "VPN"},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestSortByRarityIsStableAndOrdered(t *testing.T) {
	sorted := SortByRarity(sampleItems())
	want := []string{"netflix", "epic", "spotify", "disney", "vpn", "lol", "outlook"}
	got := ids(sorted)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rarity.Rank() > sorted[i].Rarity.Rank() {
			t.Fatalf("rank decreased at %d: %v", i, got)
		}
	}
}

func TestSortByRarityDoesNotMutateInput(t *testing.T) {
	in := sampleItems()
	_ = SortByRarity(in)
	if in[0].ID != "outlook" {
		t.Fatalf("input reordered: %v", ids(in))
	}
}

func TestFilterIsSubsetAndIdentityForEmptyQuery(t *testing.T) {
	in := sampleItems()
	all := Filter(in, "", CategoryAll)
	if len(all) != len(in) {
		t.Fatalf("expected identity, got %d of %d", len(all), len(in))
	}
	for i := range in {
		if all[i].ID != in[i].ID {
			t.Fatalf("identity filter changed order: %v", ids(all))
		}
	}

	members := map[string]bool{}
	for _, item := range in {
		members[item.ID] = true
	}
	for _, q := range []string{"e", "premium", "zzz", "STREAM"} {
		for _, c := range []string{CategoryAll, "Streaming", "Gaming", "Nope"} {
			for _, item := range Filter(in, q, c) {
				if !members[item.ID] {
					t.Fatalf("filter(%q,%q) produced foreign item %s", q, c, item.ID)
				}
			}
		}
	}
}

func TestFilterMatchesNameCaseInsensitively(t *testing.T) {
	for _, q := range []string{"Netflix", "netflix", "NETFLIX", "nEtFlIx"} {
		got := Filter(sampleItems(), q, CategoryAll)
		if len(got) != 1 || got[0].ID != "netflix" {
			t.Fatalf("query %q returned %v", q, ids(got))
		}
	}
}

func TestFilterMatchesDescriptionAndCategory(t *testing.T) {
	got := Filter(sampleItems(), "skins", CategoryAll)
	if len(got) != 1 || got[0].ID != "lol" {
		t.Fatalf("description match failed: %v", ids(got))
	}

	got = Filter(sampleItems(), "", "Streaming")
	if len(got) != 3 {
		t.Fatalf("expected 3 streaming items, got %v", ids(got))
	}

	got = Filter(sampleItems(), "premium", "Streaming")
	if len(got) != 1 || got[0].ID != "netflix" {
		t.Fatalf("query and category should combine: %v", ids(got))
	}
}

func TestFilterMatchesQueryAndCategoryExactly(t *testing.T) {
	if got := Filter(sampleItems(), "", ""); len(got) != 0 {
		t.Fatalf("empty category is not All, got %v", ids(got))
	}
	if got := Filter(sampleItems(), " netflix", CategoryAll); len(got) != 0 {
		t.Fatalf("query should match as given, got %v", ids(got))
	}
}

func TestFilterUnknownCategoryIsEmptyNotNil(t *testing.T) {
	got := Filter(sampleItems(), "", "Knitting")
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %v", ids(got))
	}
	if got := Filter(nil, "x", CategoryAll); got == nil {
		t.Fatal("expected empty slice for nil input")
	}
}

func TestCategories(t *testing.T) {
	got := Categories(sampleItems())
	want := []string{"All", "Email", "Gaming", "Streaming", "VPN"}
	if len(got) != len(want) {
		t.Fatalf("unexpected categories %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected categories %v, want %v", got, want)
		}
	}
}

func TestFeaturedOnlyTopTiers(t *testing.T) {
	got := Featured(sampleItems())
	want := []string{"netflix", "epic", "spotify"}
	if len(got) != len(want) {
		t.Fatalf("unexpected featured %v", ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("unexpected featured %v, want %v", ids(got), want)
		}
	}
}

func TestListSortsThenFilters(t *testing.T) {
	got := List(sampleItems(), "", "Gaming")
	if len(got) != 2 || got[0].ID != "epic" || got[1].ID != "lol" {
		t.Fatalf("unexpected list %v", ids(got))
	}
}

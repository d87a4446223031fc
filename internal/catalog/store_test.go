package catalog

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nexvault/storefront-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalogs(t *testing.T) {
	store, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, 23, store.Count(enums.CatalogKindAccount))
	assert.Positive(t, store.Count(enums.CatalogKindGame))
	assert.Positive(t, store.Count(enums.CatalogKindMethod))

	netflix, ok := store.Get(enums.CatalogKindAccount, "netflix")
	require.True(t, ok)
	assert.Equal(t, enums.RarityMythic, netflix.Rarity)
	assert.Equal(t, "Streaming", netflix.Category)
	assert.NotEmpty(t, netflix.ExternalLink)
	assert.Equal(t, enums.CatalogKindAccount, netflix.Kind)

	for _, item := range store.Items(enums.CatalogKindGame) {
		require.NotNil(t, item.Credentials, "game %s", item.ID)
		genre, ok := item.Feature("Genre")
		require.True(t, ok, "game %s has no genre", item.ID)
		assert.Equal(t, genre, item.Category)
	}

	for _, kind := range enums.CatalogKinds() {
		for _, item := range store.Items(kind) {
			assert.True(t, item.Rarity.IsValid(), "%s has rarity %q", item.Ref(), item.Rarity)
		}
	}
}

func TestEmbeddedNetflixSearchIsUnique(t *testing.T) {
	store, err := LoadEmbedded()
	require.NoError(t, err)

	got := List(store.Items(enums.CatalogKindAccount), "NeTfLiX", CategoryAll)
	require.Len(t, got, 1)
	assert.Equal(t, "netflix", got[0].ID)
}

func validFS(accounts string) fstest.MapFS {
	return fstest.MapFS{
		"data/accounts.yaml": {Data: []byte(accounts)},
		"data/games.yaml": {Data: []byte(`
- id: doom
  name: DOOM
  rarity: common
  features:
    - label: Genre
      value: FPS
  credentials:
    username: slayer
    password: rip
`)},
		"data/methods.yaml": {Data: []byte(`
- id: btc
  name: Bitcoin
  rarity: Epic
  category: Crypto
  external_link: https://pay.example/btc
`)},
	}
}

func TestLoadNormalizesRarityAndGenre(t *testing.T) {
	store, err := Load(validFS(`
- id: a
  name: A
  rarity: LEGENDARY
  category: Gaming
  external_link: https://x
`))
	require.NoError(t, err)

	a, ok := store.Get(enums.CatalogKindAccount, "a")
	require.True(t, ok)
	assert.Equal(t, enums.RarityLegendary, a.Rarity)

	doom, ok := store.Get(enums.CatalogKindGame, "doom")
	require.True(t, ok)
	assert.Equal(t, "FPS", doom.Category)

	btc, _ := store.Get(enums.CatalogKindMethod, "btc")
	assert.Equal(t, enums.RarityEpic, btc.Rarity)
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]string{
		"unknown rarity": `
- id: a
  name: A
  rarity: shiny
  external_link: https://x
`,
		"duplicate id": `
- id: a
  name: A
  rarity: rare
  external_link: https://x
- id: a
  name: B
  rarity: rare
  external_link: https://y
`,
		"missing link": `
- id: a
  name: A
  rarity: rare
`,
		"missing id": `
- name: A
  rarity: rare
  external_link: https://x
`,
	}
	for name, accounts := range cases {
		t.Run(strings.ReplaceAll(name, " ", "_"), func(t *testing.T) {
			_, err := Load(validFS(accounts))
			assert.Error(t, err)
		})
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	store, err := LoadEmbedded()
	require.NoError(t, err)

	items := store.Items(enums.CatalogKindAccount)
	items[0].Name = "mutated"
	again := store.Items(enums.CatalogKindAccount)
	assert.NotEqual(t, "mutated", again[0].Name)
}

package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

func sampleItems() ([]catalog.Item, []catalog.Item) {
	weapons := []catalog.Item{
		{ID: "sword", Name: "Sword", Category: catalog.Weapon, Offers: []catalog.SaleOffer{
			{Merchant: "Rashid", Location: "Carlin", Price: 25},
			{Merchant: "Rashid", Location: "Carlin", Price: 20},
			{Merchant: "Sam", Price: 15},
		}},
		{ID: "axe", Name: "Axe", Category: catalog.Weapon},
	}
	tools := []catalog.Item{
		{ID: "rope", Name: "Rope", Category: catalog.Tool, Offers: []catalog.SaleOffer{
			{Merchant: "Rashid", Location: "Venore", Price: 8},
		}},
	}
	return weapons, tools
}

func TestBuild_QueryMerchantAndLocation(t *testing.T) {
	weapons, _ := sampleItems()
	idx := Build(weapons)

	sword := catalog.ItemRef{Category: catalog.Weapon, ID: "sword"}
	assert.Equal(t, []catalog.ItemRef{sword}, idx.Query("Rashid"))
	assert.Equal(t, []catalog.ItemRef{sword}, idx.Query("Carlin"))
	assert.Equal(t, []catalog.ItemRef{sword}, idx.Query("Sam"))

	unknown := idx.Query("Unknown")
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestBuild_ExactMatchOnly(t *testing.T) {
	weapons, _ := sampleItems()
	idx := Build(weapons)

	assert.Empty(t, idx.Query("rashid"))
	assert.Empty(t, idx.Query("Rash"))
	assert.Empty(t, idx.Query(""))
}

func TestBuild_MergesCategories(t *testing.T) {
	weapons, tools := sampleItems()
	idx := Build(weapons, tools)

	assert.Equal(t, []catalog.ItemRef{
		{Category: catalog.Weapon, ID: "sword"},
		{Category: catalog.Tool, ID: "rope"},
	}, idx.Query("Rashid"))
	assert.Equal(t, []string{"Carlin", "Rashid", "Sam", "Venore"}, idx.Tokens())
	assert.Equal(t, 3, idx.Items())
	assert.Equal(t, 4, idx.Len())
}

func TestBuild_Idempotent(t *testing.T) {
	weapons, tools := sampleItems()
	a := Build(weapons, tools)
	b := Build(weapons, tools)

	require.Equal(t, a.Tokens(), b.Tokens())
	for _, tok := range a.Tokens() {
		assert.Equal(t, a.Query(tok), b.Query(tok), tok)
	}
	assert.Equal(t, a.Postings(), b.Postings())
	assert.Equal(t, SourceHash(weapons, tools), SourceHash(weapons, tools))
}

func TestPostings_Format(t *testing.T) {
	_, tools := sampleItems()
	got := Build(tools).Postings()
	assert.Equal(t, []PostingEntry{
		{Token: "Rashid", Items: []string{"tool/rope"}},
		{Token: "Venore", Items: []string{"tool/rope"}},
	}, got)
}

func TestAtomicSwap_ReplacesDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "tmp-index")
	dest := filepath.Join(root, "index")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "marker"), []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "marker"), []byte("old"), 0o644))

	require.NoError(t, AtomicSwap(src, dest))

	b, err := os.ReadFile(filepath.Join(dest, "marker"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
	_, err = os.Stat(dest + ".bak")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

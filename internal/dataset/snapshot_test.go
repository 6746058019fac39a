package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

const weaponsJSON = `[
  {"id": "sword_001", "type": "sword", "name": "Sword", "attack": 14, "defense": 12, "weight": 35.0,
   "sell_to": [
     {"npc": "Rashid", "location": "Carlin", "price": 25},
     {"npc": "Rasid", "location": "Carlin", "price": 20},
     {"npc": "Hardek", "location": "Thais"}
   ]},
  {"id": "axe_001", "type": "axe", "name": "Axe", "attack": 12, "defense": 6, "weight": 40.0}
]`

const toolsYAML = `
- id: rope_001
  type: utility
  name: Rope
  weight: 18
  sell_to:
    - npc: Rashid
      location: Venore
      price: 8
- id: shovel_001
  type: utility
  name: Shovel
  sell_to: []
`

func writeContent(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_AllCategories(t *testing.T) {
	dir := t.TempDir()
	files := map[catalog.Category]string{
		catalog.Weapon: writeContent(t, dir, "weapons.json", weaponsJSON),
		catalog.Tool:   writeContent(t, dir, "tools.yaml", toolsYAML),
		catalog.Food:   filepath.Join(dir, "food.json"),
	}

	var forwarded []catalog.Event
	snap, err := Load(files, catalog.DefaultReferences(), catalog.SinkFunc(func(e catalog.Event) {
		forwarded = append(forwarded, e)
	}))
	require.NoError(t, err)

	require.Len(t, snap.Items[catalog.Weapon], 2)
	require.Len(t, snap.Items[catalog.Tool], 2)
	assert.Empty(t, snap.Items[catalog.Food])
	assert.Equal(t, []string{files[catalog.Food]}, snap.Missing)
	assert.Len(t, snap.All(), 4)

	sword := snap.Items[catalog.Weapon][0]
	assert.Equal(t, []catalog.SaleOffer{
		{Merchant: "Rashid", Location: "Carlin", Price: 25},
		{Merchant: "Rasid", Location: "Carlin", Price: 20},
	}, sword.Offers)

	// One unknown merchant (kept), one missing price (dropped).
	require.Len(t, snap.Diagnostics, 2)
	assert.Equal(t, catalog.KindUnknownMerchant, snap.Diagnostics[0].Kind)
	assert.Equal(t, catalog.KindMissingPrice, snap.Diagnostics[1].Kind)
	assert.Equal(t, snap.Diagnostics, forwarded)

	assert.Equal(t, []catalog.ItemRef{
		{Category: catalog.Weapon, ID: "sword_001"},
		{Category: catalog.Tool, ID: "rope_001"},
	}, snap.SearchByToken("Rashid"))
	assert.Equal(t, []catalog.ItemRef{{Category: catalog.Weapon, ID: "sword_001"}}, snap.SearchByToken("Carlin"))
	assert.Empty(t, snap.SearchByToken("Thais"))

	report := snap.Consistency()
	assert.Equal(t, []string{"Carlin", "Venore"}, report.Locations("Rashid"))
	assert.Equal(t, []string{"Rashid"}, report.Inconsistent())

	it, ok := snap.Lookup(catalog.ItemRef{Category: catalog.Tool, ID: "rope_001"})
	require.True(t, ok)
	assert.Equal(t, "Rope", it.Name)
	_, ok = snap.Lookup(catalog.ItemRef{Category: catalog.Tool, ID: "nope"})
	assert.False(t, ok)
	assert.NotEmpty(t, snap.SourceHash)
}

func TestLoad_DuplicateFoodNamesResolveToTheirOwnRecord(t *testing.T) {
	dir := t.TempDir()
	files := map[catalog.Category]string{
		catalog.Food: writeContent(t, dir, "food.json", `[
  {"name": "Ham"},
  {"name": "Ham", "sell_to": [{"npc": "Sam", "location": "Thais", "price": 3}]}
]`),
	}

	snap, err := Load(files, catalog.DefaultReferences(), nil)
	require.NoError(t, err)

	refs := snap.SearchByToken("Sam")
	require.Equal(t, []catalog.ItemRef{{Category: catalog.Food, ID: "Ham#1"}}, refs)

	it, ok := snap.Lookup(refs[0])
	require.True(t, ok)
	assert.Equal(t, "Ham", it.Name)
	assert.Equal(t, []catalog.SaleOffer{{Merchant: "Sam", Location: "Thais", Price: 3}}, it.Offers)

	first, ok := snap.Lookup(catalog.ItemRef{Category: catalog.Food, ID: "Ham"})
	require.True(t, ok)
	assert.Empty(t, first.Offers)

	collected := catalog.Collector{Events: snap.Diagnostics}
	assert.Equal(t, 1, collected.Count(catalog.KindDuplicateID))
}

func TestLoad_StructuralFailure(t *testing.T) {
	dir := t.TempDir()
	files := map[catalog.Category]string{
		catalog.Weapon: writeContent(t, dir, "weapons.json", `[{"id": "x", "name": "X", "sell_to": {"npc": "Rashid"}}]`),
	}

	_, err := Load(files, catalog.DefaultReferences(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrOffersNotSequence))
}

func TestLoad_RebuildIsIdentical(t *testing.T) {
	dir := t.TempDir()
	files := map[catalog.Category]string{
		catalog.Weapon: writeContent(t, dir, "weapons.json", weaponsJSON),
		catalog.Tool:   writeContent(t, dir, "tools.yml", toolsYAML),
	}

	a, err := Load(files, catalog.DefaultReferences(), nil)
	require.NoError(t, err)
	b, err := Load(files, catalog.DefaultReferences(), nil)
	require.NoError(t, err)

	assert.Equal(t, a.SourceHash, b.SourceHash)
	assert.Equal(t, a.Index.Postings(), b.Index.Postings())
}

func TestReadRecords_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadRecords(writeContent(t, dir, "obj.json", `{"id": "x"}`))
	assert.Error(t, err)

	_, err = ReadRecords(writeContent(t, dir, "scalars.json", `[1, 2]`))
	assert.Error(t, err)

	_, err = ReadRecords(writeContent(t, dir, "broken.json", `[{"id": `))
	assert.Error(t, err)

	_, err = ReadRecords(writeContent(t, dir, "items.csv", "id,name\n"))
	assert.Error(t, err)

	_, err = ReadRecords(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadRecords_EmptyYAML(t *testing.T) {
	records, err := ReadRecords(writeContent(t, t.TempDir(), "food.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCategory_OneItemPerRecord(t *testing.T) {
	p, c := newTestParser()
	records := []Record{
		{"id": "sword_001", "type": "sword", "name": "Sword", "sell_to": []any{
			map[string]any{"npc": "Rashid", "location": "Carlin", "price": 25},
		}},
		{"id": "axe_001", "type": "axe", "name": "Axe"},
		{"id": "club_001", "type": "club", "name": "Club", "sell_to": []any{}},
	}

	items, err := LoadCategory(p, Weapon, records, ExtractorFor(Weapon))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "sword_001", items[0].ID)
	assert.Equal(t, "Sword", items[0].Name)
	assert.Equal(t, "sword", items[0].Variant)
	assert.Equal(t, Weapon, items[0].Category)
	assert.Len(t, items[0].Offers, 1)

	assert.Equal(t, "axe_001", items[1].ID)
	assert.NotNil(t, items[1].Offers)
	assert.Empty(t, items[1].Offers)
	assert.Empty(t, items[2].Offers)
	assert.Zero(t, c.Len())
}

func TestLoadCategory_DiagnosticsUseDisplayName(t *testing.T) {
	p, c := newTestParser()
	records := []Record{
		{"id": "helmet_01", "slot": "helmet", "name": "Steel Helmet", "sell_to": []any{
			map[string]any{"npc": "Rashid", "location": "Carlin"},
		}},
	}

	items, err := LoadCategory(p, Equipment, records, ExtractorFor(Equipment))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "helmet", items[0].Variant)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Steel Helmet", c.Events[0].ItemLabel)
}

func TestLoadCategory_FoodIsKeyedByName(t *testing.T) {
	p, _ := newTestParser()
	records := []Record{
		{"name": "Ham", "weight": 20.0, "sell_to": []any{map[string]any{"npc": "Willard", "location": "Edron", "price": 4}}},
	}

	items, err := LoadCategory(p, Food, records, ExtractorFor(Food))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ham", items[0].ID)
	assert.Equal(t, ItemRef{Category: Food, ID: "Ham"}, items[0].Ref())
}

func TestLoadCategory_DuplicateIDsStayDistinct(t *testing.T) {
	p, c := newTestParser()
	records := []Record{
		{"name": "Ham"},
		{"name": "Ham", "sell_to": []any{map[string]any{"npc": "Sam", "location": "Thais", "price": 3}}},
		{"name": "Ham#1"},
	}

	items, err := LoadCategory(p, Food, records, ExtractorFor(Food))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Ham", items[0].ID)
	assert.Equal(t, "Ham#1", items[1].ID)
	assert.Equal(t, "Ham", items[1].Name)
	assert.Len(t, items[1].Offers, 1)
	assert.Equal(t, "Ham#1#2", items[2].ID)

	require.Equal(t, 2, c.Count(KindDuplicateID))
	assert.Equal(t, SeverityInfo, c.Events[0].Severity)
	assert.Equal(t, "Ham", c.Events[0].ItemLabel)
	assert.Equal(t, "duplicate_id", KindDuplicateID.String())
}

func TestLoadCategory_IdentityFallbacks(t *testing.T) {
	p, _ := newTestParser()
	records := []Record{
		{"name": "Rope"},
		{"type": "utility"},
		{"id": 42, "name": "Shovel"},
	}

	items, err := LoadCategory(p, Tool, records, ExtractorFor(Tool))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Rope", items[0].ID)
	assert.Equal(t, "tool#1", items[1].ID)
	assert.Equal(t, "tool#1", items[1].Label())
	assert.Equal(t, "42", items[2].ID)
}

func TestLoadCategory_StructuralFailure(t *testing.T) {
	p, _ := newTestParser()
	records := []Record{
		{"id": "a", "name": "Good"},
		{"id": "b", "name": "Broken", "sell_to": "Rashid"},
	}

	items, err := LoadCategory(p, Weapon, records, ExtractorFor(Weapon))
	require.Error(t, err)
	assert.Nil(t, items)
	assert.True(t, errors.Is(err, ErrOffersNotSequence))
	assert.Contains(t, err.Error(), "Broken")
	assert.Contains(t, err.Error(), "weapon")
}

func TestLoadCategory_CustomExtractor(t *testing.T) {
	p, _ := newTestParser()
	ex := FieldExtractor{Category: Tool, IDField: "key", NameField: "title", OffersField: "buyers"}
	records := []Record{
		{"key": "t1", "title": "Pick", "buyers": []any{map[string]any{"npc": "Uzgod", "location": "Kazordoon", "price": 15}}},
	}

	items, err := LoadCategory(p, Tool, records, ex)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "t1", items[0].ID)
	assert.Equal(t, "Pick", items[0].Name)
	assert.Equal(t, []SaleOffer{{Merchant: "Uzgod", Location: "Kazordoon", Price: 15}}, items[0].Offers)
}

func TestParseItemRef(t *testing.T) {
	ref, err := ParseItemRef("equipment/helmet_01")
	require.NoError(t, err)
	assert.Equal(t, ItemRef{Category: Equipment, ID: "helmet_01"}, ref)
	assert.Equal(t, "equipment/helmet_01", ref.String())

	for _, bad := range []string{"", "weapon", "weapon/", "/x", "spell/x"} {
		_, err := ParseItemRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCategory("Weapons")
	require.NoError(t, err)
	assert.Equal(t, Weapon, got)
}

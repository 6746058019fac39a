package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerItem(id string, offers ...SaleOffer) Item {
	return Item{ID: id, Name: id, Category: Weapon, Offers: offers}
}

func TestCheckConsistency_MerchantAtTwoLocations(t *testing.T) {
	a := offerItem("A", SaleOffer{Merchant: "Rashid", Location: "Carlin", Price: 10})
	b := offerItem("B", SaleOffer{Merchant: "Rashid", Location: "Venore", Price: 20})

	r := CheckConsistency([]Item{a, b})
	require.Len(t, r, 1)
	assert.Len(t, r["Rashid"], 2)
	assert.Equal(t, []string{"Carlin", "Venore"}, r.Locations("Rashid"))
	assert.Equal(t, []string{"Rashid"}, r.Inconsistent())
	assert.Equal(t, []string{`npc "Rashid" appears in multiple locations: Carlin, Venore`}, r.Issues())
}

func TestCheckConsistency_MergesGroups(t *testing.T) {
	weapons := []Item{offerItem("A", SaleOffer{Merchant: "Rashid", Location: "Carlin", Price: 10})}
	tools := []Item{{ID: "Rope", Category: Tool, Offers: []SaleOffer{
		{Merchant: "Rashid", Location: "Carlin", Price: 8},
		{Merchant: "Hardek", Location: "Thais", Price: 8},
	}}}

	r := CheckConsistency(weapons, tools)
	assert.Equal(t, []string{"Hardek", "Rashid"}, r.Merchants())
	assert.Len(t, r["Rashid"], 1)
	assert.Empty(t, r.Inconsistent())
	assert.Empty(t, r.Issues())
}

func TestCheckConsistency_EmptyLocationRegistersMerchantOnly(t *testing.T) {
	r := CheckConsistency([]Item{offerItem("A", SaleOffer{Merchant: "Sam", Price: 10})})
	require.Contains(t, r, "Sam")
	assert.Empty(t, r["Sam"])
	assert.Empty(t, r.Locations("Sam"))
}

func TestCheckConsistency_NoItems(t *testing.T) {
	r := CheckConsistency()
	assert.NotNil(t, r)
	assert.Empty(t, r)

	r = CheckConsistency([]Item{offerItem("A")})
	assert.Empty(t, r)
}

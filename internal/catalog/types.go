// Package catalog turns raw item records into validated items with the
// merchants that buy them, and aggregates merchant locations across items.
package catalog

import (
	"fmt"
	"strings"
)

// Category is the item category a record collection belongs to.
type Category int

const (
	Weapon Category = iota
	Equipment
	Tool
	Food
)

// Categories lists every category in display order.
var Categories = []Category{Weapon, Equipment, Tool, Food}

// String returns the lower-case category name used in config and item refs.
func (c Category) String() string {
	switch c {
	case Weapon:
		return "weapon"
	case Equipment:
		return "equipment"
	case Tool:
		return "tool"
	case Food:
		return "food"
	default:
		return "unknown"
	}
}

// ParseCategory maps a category name (singular or plural) to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weapon", "weapons":
		return Weapon, nil
	case "equipment":
		return Equipment, nil
	case "tool", "tools":
		return Tool, nil
	case "food", "foods":
		return Food, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// SaleOffer is one merchant that buys an item, where, and for how much.
type SaleOffer struct {
	Merchant string
	Location string
	Price    int
}

// Item is a validated item with its sale offers in input order.
type Item struct {
	ID       string
	Name     string
	Category Category
	// Variant is the category sub-kind: weapon/tool type or equipment slot.
	Variant string
	Offers  []SaleOffer
}

// Label is the name used for the item in diagnostics and listings.
func (it Item) Label() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID
}

// Ref returns the cross-category identifier of the item.
func (it Item) Ref() ItemRef {
	return ItemRef{Category: it.Category, ID: it.ID}
}

// ItemRef identifies an item uniquely across all categories.
type ItemRef struct {
	Category Category
	ID       string
}

// String formats the ref as "category/id".
func (r ItemRef) String() string {
	return r.Category.String() + "/" + r.ID
}

// ParseItemRef parses the "category/id" form produced by ItemRef.String.
func ParseItemRef(s string) (ItemRef, error) {
	i := strings.IndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return ItemRef{}, fmt.Errorf("invalid item ref %q: want category/id", s)
	}
	cat, err := ParseCategory(s[:i])
	if err != nil {
		return ItemRef{}, err
	}
	return ItemRef{Category: cat, ID: s[i+1:]}, nil
}

// Less orders refs by category, then ID.
func (r ItemRef) Less(o ItemRef) bool {
	if r.Category != o.Category {
		return r.Category < o.Category
	}
	return r.ID < o.ID
}

// Record is one raw, already-deserialized item record.
type Record map[string]any

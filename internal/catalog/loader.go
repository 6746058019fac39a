package catalog

import (
	"fmt"
	"strings"
)

// Identity holds the identity fields extracted from a raw record.
type Identity struct {
	ID      string
	Name    string
	Variant string
}

// Extractor pulls identity fields and the raw sale-offer value out of a
// record. pos is the record's position in its collection.
type Extractor interface {
	Identify(rec Record, pos int) Identity
	Offers(rec Record) any
}

// FieldExtractor reads identity and offers from fixed record keys.
type FieldExtractor struct {
	Category     Category
	IDField      string
	NameField    string
	VariantField string
	OffersField  string
}

// ExtractorFor returns the record layout used by category cat.
func ExtractorFor(cat Category) FieldExtractor {
	ex := FieldExtractor{
		Category:    cat,
		IDField:     "id",
		NameField:   "name",
		OffersField: "sell_to",
	}
	switch cat {
	case Weapon, Tool:
		ex.VariantField = "type"
	case Equipment:
		ex.VariantField = "slot"
	case Food:
		// Food records are keyed by name.
		ex.IDField = "name"
	}
	return ex
}

// Identify implements Extractor. The ID falls back to the name, then to
// "category#pos".
func (ex FieldExtractor) Identify(rec Record, pos int) Identity {
	id := scalarString(rec, ex.IDField)
	name := scalarString(rec, ex.NameField)
	if id == "" {
		id = name
	}
	if id == "" {
		id = fmt.Sprintf("%s#%d", ex.Category, pos)
	}
	return Identity{
		ID:      id,
		Name:    name,
		Variant: scalarString(rec, ex.VariantField),
	}
}

// Offers implements Extractor.
func (ex FieldExtractor) Offers(rec Record) any {
	return rec[ex.OffersField]
}

// scalarString renders a scalar field as trimmed text.
func scalarString(rec Record, key string) string {
	if key == "" {
		return ""
	}
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case map[string]any, []any:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// LoadCategory parses every record of one category into an Item, in input
// order. Records without offers produce items with no offers. A record whose
// offers are not a list aborts the load.
//
// IDs are unique within the returned slice: a record repeating an earlier ID
// is kept under "id#pos" and reported as duplicate_id.
func LoadCategory(p *Parser, cat Category, records []Record, ex Extractor) ([]Item, error) {
	items := make([]Item, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		id := ex.Identify(rec, i)
		label := id.Name
		if label == "" {
			label = id.ID
		}
		if seen[id.ID] {
			unique := uniqueID(seen, id.ID, i)
			p.info(KindDuplicateID, label, fmt.Sprintf("%s id %q already used, kept as %q", cat, id.ID, unique))
			id.ID = unique
		}
		seen[id.ID] = true

		offers, err := p.ParseOffers(ex.Offers(rec), label)
		if err != nil {
			return nil, fmt.Errorf("cannot load %s %q: %w", cat, label, err)
		}

		items = append(items, Item{
			ID:       id.ID,
			Name:     id.Name,
			Category: cat,
			Variant:  id.Variant,
			Offers:   offers,
		})
	}
	return items, nil
}

func uniqueID(seen map[string]bool, id string, pos int) string {
	out := fmt.Sprintf("%s#%d", id, pos)
	for n := 2; seen[out]; n++ {
		out = fmt.Sprintf("%s#%d.%d", id, pos, n)
	}
	return out
}

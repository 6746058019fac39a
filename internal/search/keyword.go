package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

// KeywordSearch searches items by case-insensitive substring matching over
// name, variant, merchant names and locations. All query tokens must match
// (AND semantics), each possibly in a different field.
func KeywordSearch(items []catalog.Item, query string, limit int) []Result {
	fold := cases.Fold()
	tokens := tokenize(fold, query)
	if len(tokens) == 0 {
		return []Result{}
	}

	out := []Result{}
	for _, it := range items {
		fields := searchFields(fold, it)
		why := ""
		ok := true
		for _, tok := range tokens {
			f, hit := matchField(fields, tok)
			if !hit {
				ok = false
				break
			}
			if why == "" {
				why = f
			}
		}
		if !ok {
			continue
		}
		out = append(out, Result{Item: it, Why: why})
	}

	SortResults(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type field struct {
	name string
	text string
}

func searchFields(fold cases.Caser, it catalog.Item) []field {
	fs := []field{
		{"name", fold.String(it.Label())},
		{"variant", fold.String(it.Variant)},
	}
	for _, o := range it.Offers {
		fs = append(fs, field{"npc", fold.String(o.Merchant)})
		if o.Location != "" {
			fs = append(fs, field{"location", fold.String(o.Location)})
		}
	}
	return fs
}

func matchField(fields []field, tok string) (string, bool) {
	for _, f := range fields {
		if strings.Contains(f.text, tok) {
			return f.name, true
		}
	}
	return "", false
}

func tokenize(fold cases.Caser, q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	parts := strings.Fields(q)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = fold.String(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// LocationSet is a set of location names.
type LocationSet map[string]struct{}

// Report maps each merchant to the distinct locations it was recorded at.
type Report map[string]LocationSet

// CheckConsistency aggregates merchant -> locations over every offer of every
// item in groups. Offers without a location register the merchant only.
func CheckConsistency(groups ...[]Item) Report {
	r := make(Report)
	for _, items := range groups {
		for _, it := range items {
			for _, o := range it.Offers {
				locs, ok := r[o.Merchant]
				if !ok {
					locs = make(LocationSet)
					r[o.Merchant] = locs
				}
				if o.Location != "" {
					locs[o.Location] = struct{}{}
				}
			}
		}
	}
	return r
}

// Merchants returns every merchant in the report, sorted.
func (r Report) Merchants() []string {
	out := make([]string, 0, len(r))
	for m := range r {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Locations returns the locations of merchant, sorted.
func (r Report) Locations(merchant string) []string {
	locs := r[merchant]
	out := make([]string, 0, len(locs))
	for l := range locs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Inconsistent returns the merchants seen at more than one location, sorted.
func (r Report) Inconsistent() []string {
	var out []string
	for m, locs := range r {
		if len(locs) > 1 {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// Issues describes each inconsistent merchant on one line.
func (r Report) Issues() []string {
	merchants := r.Inconsistent()
	out := make([]string, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, fmt.Sprintf("npc %q appears in multiple locations: %s", m, strings.Join(r.Locations(m), ", ")))
	}
	return out
}

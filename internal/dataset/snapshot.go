package dataset

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/kamusis/fibula-cli/internal/catalog"
	"github.com/kamusis/fibula-cli/internal/search/index"
)

// Snapshot is one complete, read-only load of the catalog. A reload builds a
// new Snapshot; nothing in it is patched in place.
type Snapshot struct {
	Items       map[catalog.Category][]catalog.Item
	Diagnostics []catalog.Event
	// Missing lists category files that did not exist; those categories are empty.
	Missing    []string
	Index      *index.Index
	SourceHash string
}

// Load reads every category in files, parses it with refs and builds the
// search index over all categories. Diagnostics are collected on the
// snapshot and also forwarded to sink when it is non-nil.
func Load(files map[catalog.Category]string, refs catalog.References, sink catalog.Sink) (*Snapshot, error) {
	collector := &catalog.Collector{}
	var out catalog.Sink = collector
	if sink != nil {
		out = catalog.Tee(collector, sink)
	}
	parser := catalog.NewParser(refs, out)

	snap := &Snapshot{Items: make(map[catalog.Category][]catalog.Item)}
	for _, cat := range catalog.Categories {
		path, ok := files[cat]
		if !ok {
			continue
		}
		records, err := ReadRecords(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				snap.Missing = append(snap.Missing, path)
				snap.Items[cat] = []catalog.Item{}
				continue
			}
			return nil, err
		}
		items, err := catalog.LoadCategory(parser, cat, records, catalog.ExtractorFor(cat))
		if err != nil {
			return nil, fmt.Errorf("cannot load %s: %w", path, err)
		}
		snap.Items[cat] = items
	}

	groups := snap.Groups()
	snap.Index = index.Build(groups...)
	snap.SourceHash = index.SourceHash(groups...)
	snap.Diagnostics = collector.Events
	return snap, nil
}

// Groups returns the item collections in category order.
func (s *Snapshot) Groups() [][]catalog.Item {
	var out [][]catalog.Item
	for _, cat := range catalog.Categories {
		if items, ok := s.Items[cat]; ok {
			out = append(out, items)
		}
	}
	return out
}

// All returns every item, in category order then input order.
func (s *Snapshot) All() []catalog.Item {
	var out []catalog.Item
	for _, items := range s.Groups() {
		out = append(out, items...)
	}
	return out
}

// Lookup finds the item identified by ref. Item IDs are unique within a
// category, so at most one item matches.
func (s *Snapshot) Lookup(ref catalog.ItemRef) (catalog.Item, bool) {
	for _, it := range s.Items[ref.Category] {
		if it.ID == ref.ID {
			return it, true
		}
	}
	return catalog.Item{}, false
}

// SearchByToken returns the items whose offers name token as merchant or
// location, across all categories.
func (s *Snapshot) SearchByToken(token string) []catalog.ItemRef {
	return s.Index.Query(token)
}

// Consistency reports merchant locations across all categories.
func (s *Snapshot) Consistency() catalog.Report {
	return catalog.CheckConsistency(s.Groups()...)
}

package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultMerchants are the merchants known to buy items from players.
var defaultMerchants = []string{
	"Rashid", "Yasir", "Alesar", "Nah'Bob", "Haroun", "Alexander",
	"Brengus", "Esrik", "Flint", "Gnomally", "H.L.", "Hardek",
	"Harkath", "Henrietta", "Honna", "Ishina", "Kroox", "Lorbas",
	"Naji", "Orockwell", "Perod", "Razan", "Romella", "Sam",
	"Tamoril", "Tandros", "Tesha", "Turvy", "Uzgod", "Willard",
	"Xodet", "Yaman", "Zora", "Rowenna", "Memech", "Robert",
	"Shanar", "Ulrik",
}

var defaultLocations = []string{
	"Thais", "Carlin", "Venore", "Kazordoon", "Ab'Dendriel",
	"Edron", "Ankrahmun", "Port Hope", "Liberty Bay", "Svargrond",
	"Yalahar", "Gray Beach", "Fibula", "Greenshore", "Stonehome",
	"Rookgaard",
}

// ReferenceSet is an immutable allow-list of names. It is advisory only:
// membership never decides whether data is kept.
type ReferenceSet struct {
	names map[string]struct{}
}

// NewReferenceSet builds a set from names. Blank names are ignored.
func NewReferenceSet(names ...string) ReferenceSet {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		m[n] = struct{}{}
	}
	return ReferenceSet{names: m}
}

// Contains reports whether name is in the set. Matching is exact.
func (s ReferenceSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names in the set.
func (s ReferenceSet) Len() int {
	return len(s.names)
}

// Names returns the names sorted.
func (s ReferenceSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// References bundles the known merchants and known locations.
type References struct {
	Merchants ReferenceSet
	Locations ReferenceSet
}

// DefaultReferences returns the built-in reference sets.
func DefaultReferences() References {
	return References{
		Merchants: NewReferenceSet(defaultMerchants...),
		Locations: NewReferenceSet(defaultLocations...),
	}
}

// referencesFile is the YAML layout of a reference override file.
type referencesFile struct {
	Merchants []string `yaml:"merchants"`
	Locations []string `yaml:"locations"`
}

// LoadReferences reads a YAML reference file. A list left out of the file
// keeps its built-in default.
func LoadReferences(path string) (References, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return References{}, fmt.Errorf("cannot read references %s: %w", path, err)
	}
	var rf referencesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return References{}, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	refs := DefaultReferences()
	if rf.Merchants != nil {
		refs.Merchants = NewReferenceSet(rf.Merchants...)
	}
	if rf.Locations != nil {
		refs.Locations = NewReferenceSet(rf.Locations...)
	}
	return refs, nil
}

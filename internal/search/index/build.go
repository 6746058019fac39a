package index

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

// Build indexes the merchant and non-empty location of every offer against
// the owning item. Items may come from several categories; each item appears
// at most once per token.
func Build(groups ...[]catalog.Item) *Index {
	idx := &Index{postings: make(map[string]refSet)}
	for _, items := range groups {
		for _, it := range items {
			idx.items++
			ref := it.Ref()
			for _, o := range it.Offers {
				idx.add(o.Merchant, ref)
				if o.Location != "" {
					idx.add(o.Location, ref)
				}
			}
		}
	}
	return idx
}

func (x *Index) add(token string, ref catalog.ItemRef) {
	if token == "" {
		return
	}
	refs, ok := x.postings[token]
	if !ok {
		refs = make(refSet)
		x.postings[token] = refs
	}
	refs[ref] = struct{}{}
}

// Query returns the items referencing token, sorted by category then ID.
// Matching is exact and case-sensitive. No match yields an empty slice.
func (x *Index) Query(token string) []catalog.ItemRef {
	refs := x.postings[token]
	out := make([]catalog.ItemRef, 0, len(refs))
	for r := range refs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Tokens returns every indexed token, sorted.
func (x *Index) Tokens() []string {
	out := make([]string, 0, len(x.postings))
	for t := range x.postings {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct tokens.
func (x *Index) Len() int {
	return len(x.postings)
}

// Items returns the number of items the index was built from.
func (x *Index) Items() int {
	return x.items
}

// Postings returns the index as token rows sorted by token.
func (x *Index) Postings() []PostingEntry {
	tokens := x.Tokens()
	out := make([]PostingEntry, 0, len(tokens))
	for _, t := range tokens {
		refs := x.Query(t)
		ids := make([]string, len(refs))
		for i, r := range refs {
			ids[i] = r.String()
		}
		out = append(out, PostingEntry{Token: t, Items: ids})
	}
	return out
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = cleanupBackup(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = cleanupBackup(backup)
	return nil
}

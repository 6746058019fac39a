package index

import "github.com/kamusis/fibula-cli/internal/catalog"

// FormatVersion is the manifest index_version written by this build. Load
// rejects newer versions.
const FormatVersion = 1

// Manifest describes an exported token index and how to interpret it.
type Manifest struct {
	IndexVersion int    `json:"index_version"`
	CreatedAt    string `json:"created_at"`
	SourceHash   string `json:"source_hash"`
	Tokens       int    `json:"tokens"`
	Items        int    `json:"items"`
	PostingsFile string `json:"postings_file"`
}

// PostingEntry represents one token row in postings.jsonl.
type PostingEntry struct {
	Token string   `json:"token"`
	Items []string `json:"items"`
}

type refSet map[catalog.ItemRef]struct{}

// Index maps merchant and location tokens to the items that reference them.
// It is immutable once built.
type Index struct {
	postings map[string]refSet
	items    int
}

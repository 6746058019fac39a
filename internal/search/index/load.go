package index

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

// Load reads an exported index from dir containing manifest + postings.
func Load(dir string) (*Index, Manifest, error) {
	manifestPath := filepath.Join(dir, manifestFile)
	b, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, Manifest{}, fmt.Errorf("cannot read manifest %s: %w", manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, Manifest{}, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.IndexVersion > FormatVersion {
		return nil, Manifest{}, fmt.Errorf("manifest %s has index_version %d, this build reads up to %d", manifestPath, m.IndexVersion, FormatVersion)
	}
	if m.SourceHash == "" {
		return nil, Manifest{}, fmt.Errorf("manifest %s has no source hash", manifestPath)
	}
	if m.PostingsFile == "" {
		m.PostingsFile = defaultPostingsFile
	}

	entries, err := loadPostings(filepath.Join(dir, m.PostingsFile))
	if err != nil {
		return nil, Manifest{}, err
	}
	if len(entries) != m.Tokens {
		return nil, Manifest{}, fmt.Errorf("postings count mismatch: got %d want %d", len(entries), m.Tokens)
	}

	idx, err := FromPostings(entries, m.Items)
	if err != nil {
		return nil, Manifest{}, err
	}
	return idx, m, nil
}

// FromPostings rebuilds an Index from exported token rows.
func FromPostings(entries []PostingEntry, items int) (*Index, error) {
	idx := &Index{postings: make(map[string]refSet, len(entries)), items: items}
	for _, e := range entries {
		for _, s := range e.Items {
			ref, err := catalog.ParseItemRef(s)
			if err != nil {
				return nil, fmt.Errorf("invalid posting for token %q: %w", e.Token, err)
			}
			idx.add(e.Token, ref)
		}
	}
	return idx, nil
}

// CheckFresh returns ErrStaleIndex unless the manifest was built from items
// hashing to sourceHash.
func (m Manifest) CheckFresh(sourceHash string) error {
	if m.SourceHash != sourceHash {
		return fmt.Errorf("%w: built from %.12s, items now %.12s", ErrStaleIndex, m.SourceHash, sourceHash)
	}
	return nil
}

func loadPostings(path string) ([]PostingEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open postings file %s: %w", path, err)
	}
	defer f.Close()

	var out []PostingEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e PostingEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("invalid postings JSONL %s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read postings file %s: %w", path, err)
	}
	return out, nil
}

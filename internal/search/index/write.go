package index

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	manifestFile        = "index_manifest.json"
	defaultPostingsFile = "postings.jsonl"
)

// NewManifest describes idx built from items hashing to sourceHash.
func NewManifest(idx *Index, sourceHash string) Manifest {
	return Manifest{
		IndexVersion: FormatVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		SourceHash:   sourceHash,
		Tokens:       idx.Len(),
		Items:        idx.Items(),
		PostingsFile: defaultPostingsFile,
	}
}

// Write writes index artifacts to dir.
func Write(dir string, manifest Manifest, idx *Index) error {
	if manifest.SourceHash == "" {
		return fmt.Errorf("source hash is required")
	}
	if manifest.Tokens != idx.Len() {
		return fmt.Errorf("token count mismatch: manifest %d index %d", manifest.Tokens, idx.Len())
	}
	if manifest.PostingsFile == "" {
		manifest.PostingsFile = defaultPostingsFile
	}
	if manifest.CreatedAt == "" {
		manifest.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create index dir %s: %w", dir, err)
	}

	// manifest
	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	// postings jsonl
	pf, err := os.Create(filepath.Join(dir, manifest.PostingsFile))
	if err != nil {
		return fmt.Errorf("cannot create postings file: %w", err)
	}
	bw := bufio.NewWriter(pf)
	for _, p := range idx.Postings() {
		line, err := json.Marshal(p)
		if err != nil {
			_ = pf.Close()
			return err
		}
		if _, err := bw.Write(line); err != nil {
			_ = pf.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = pf.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = pf.Close()
		return err
	}
	return pf.Close()
}

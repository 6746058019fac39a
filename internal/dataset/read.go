// Package dataset reads item category files and assembles a loaded,
// indexed snapshot of the catalog.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

// ReadRecords reads a category file (.json, .yaml or .yml) holding a list of
// item objects. Numbers in JSON files are kept as json.Number.
func ReadRecords(path string) ([]catalog.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var raw any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported content file type %q: %s", ext, path)
	}

	records, err := toRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid content in %s: %w", path, err)
	}
	return records, nil
}

func toRecords(raw any) ([]catalog.Record, error) {
	if raw == nil {
		return []catalog.Record{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("top level is %T, want a list of items", raw)
	}
	out := make([]catalog.Record, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d is %T, want an object", i, el)
		}
		out = append(out, catalog.Record(m))
	}
	return out, nil
}

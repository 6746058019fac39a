package cmd

import (
	"fmt"

	"github.com/kamusis/fibula-cli/internal/catalog"
	"github.com/kamusis/fibula-cli/internal/config"
	"github.com/kamusis/fibula-cli/internal/dataset"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'fibula init' first.", err)
	}
	return cfg, nil
}

// loadReferences returns the reference sets named in cfg, or the built-in ones.
func loadReferences(cfg *config.Config) (catalog.References, error) {
	if cfg.References == "" {
		return catalog.DefaultReferences(), nil
	}
	return catalog.LoadReferences(cfg.References)
}

// loadSnapshot loads every configured category. sink may be nil.
func loadSnapshot(cfg *config.Config, sink catalog.Sink) (*dataset.Snapshot, error) {
	files, err := cfg.CategoryFiles()
	if err != nil {
		return nil, err
	}
	refs, err := loadReferences(cfg)
	if err != nil {
		return nil, err
	}
	return dataset.Load(files, refs, sink)
}

// diagnosticPrinter prints diagnostics as they are emitted. Advisory
// (info) events are printed only when showInfo is set.
func diagnosticPrinter(showInfo bool) catalog.Sink {
	return catalog.SinkFunc(func(e catalog.Event) {
		msg := fmt.Sprintf("%s: %s", e.Kind, e.Detail)
		if e.Severity == catalog.SeverityWarning {
			printWarn(e.ItemLabel, msg)
			return
		}
		if showInfo {
			printInfo(e.ItemLabel, msg)
		}
	})
}

// noteDiagnostics prints a one-line hint when the snapshot has data issues.
func noteDiagnostics(snap *dataset.Snapshot) {
	if n := len(snap.Diagnostics); n > 0 {
		printInfo("", fmt.Sprintf("%d data issue(s) found while loading (run 'fibula validate' for details)", n))
	}
	for _, p := range snap.Missing {
		printMiss("", fmt.Sprintf("content file not found: %s", p))
	}
}

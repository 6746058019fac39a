package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kamusis/fibula-cli/internal/catalog"
	"github.com/kamusis/fibula-cli/internal/dataset"
)

var (
	flagValidateInfo   bool
	flagValidateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load every category and report data issues",
	Long: `Load all configured category files and report:
  - entries dropped for a missing or invalid price (warnings)
  - unknown merchants and locations (advisory, shown with --info)
  - merchants recorded at more than one location

Loading keeps going on bad entries. Only a structurally broken file
(not a list of items, or a sell_to that is not a list) fails the command.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&flagValidateInfo, "info", false, "Also print advisory diagnostics (unknown merchants/locations)")
	validateCmd.Flags().BoolVar(&flagValidateStrict, "strict", false, "Exit non-zero when any entry was dropped")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("fibula validate")
	fmt.Println()

	// ── References ────────────────────────────────────────────────────────────
	fmt.Println("[ References ]")
	refs, err := loadReferences(cfg)
	if err != nil {
		return err
	}
	src := "built-in"
	if cfg.References != "" {
		src = cfg.References
	}
	printOK("", fmt.Sprintf("%d merchants, %d locations (%s)", refs.Merchants.Len(), refs.Locations.Len(), src))
	fmt.Println()

	// ── Diagnostics (streamed while loading) ──────────────────────────────────
	fmt.Println("[ Diagnostics ]")
	snap, err := loadSnapshot(cfg, diagnosticPrinter(flagValidateInfo))
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	collected := catalog.Collector{Events: snap.Diagnostics}
	dropped := len(collected.BySeverity(catalog.SeverityWarning))
	advisory := len(collected.BySeverity(catalog.SeverityInfo))
	if dropped == 0 && (advisory == 0 || !flagValidateInfo) {
		printOK("", "no entries dropped")
	}
	fmt.Println()

	// ── Content ───────────────────────────────────────────────────────────────
	fmt.Println("[ Content ]")
	printContentSummary(snap)
	fmt.Println()

	// ── Consistency ───────────────────────────────────────────────────────────
	fmt.Println("[ Merchant locations ]")
	issues := snap.Consistency().Issues()
	if len(issues) == 0 {
		printOK("", "every npc is recorded at a single location")
	}
	for _, issue := range issues {
		printWarn("", issue)
	}
	fmt.Println()

	// ── Summary ───────────────────────────────────────────────────────────────
	fmt.Println("===================")
	fmt.Printf("  %d item(s) / %d dropped entr(ies) / %d advisory / %d multi-location npc(s)\n",
		len(snap.All()), dropped, advisory, len(issues))
	if flagValidateStrict && dropped > 0 {
		fmt.Fprintln(os.Stderr, "✗  Entries were dropped. See details above.")
		return fmt.Errorf("validate found %d dropped entr(ies)", dropped)
	}
	return nil
}

func printContentSummary(snap *dataset.Snapshot) {
	for _, p := range snap.Missing {
		printMiss("", fmt.Sprintf("content file not found: %s", p))
	}
	for _, cat := range catalog.Categories {
		items, ok := snap.Items[cat]
		if !ok {
			printSkip(cat.String(), "not configured")
			continue
		}
		offers, withOffers := 0, 0
		for _, it := range items {
			offers += len(it.Offers)
			if len(it.Offers) > 0 {
				withOffers++
			}
		}
		if len(items) == 0 {
			printInfo(cat.String(), "0 items")
			continue
		}
		printOK(cat.String(), fmt.Sprintf("%d items, %d with merchants, %d offers", len(items), withOffers, offers))
	}
	printInfo("", fmt.Sprintf("search index: %d token(s)", snap.Index.Len()))
}

// sortedCategories returns the keys of files in category order.
func sortedCategories(files map[catalog.Category]string) []catalog.Category {
	out := make([]catalog.Category, 0, len(files))
	for cat := range files {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

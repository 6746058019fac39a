package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kamusis/fibula-cli/internal/catalog"
	"github.com/kamusis/fibula-cli/internal/dataset"
)

var flagInspectRaw bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <item>",
	Short: "Show an item and the merchants that buy it",
	Long: `Display an item with its type and every merchant offer.

The argument can be either:
  - An item ref: <category>/<id> (e.g. weapon/sword_001, food/Ham)
  - An item name or id, matched case-insensitively across categories

If nothing matches exactly, every item whose name contains the argument
is shown.

Example:
  fibula inspect weapon/sword_001
  fibula inspect "short sword"`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectRaw, "raw", false, "Dump the loaded item structure")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snap, err := loadSnapshot(cfg, nil)
	if err != nil {
		return err
	}

	items, err := resolveItems(snap, args[0])
	if err != nil {
		return err
	}

	report := snap.Consistency()
	for i, it := range items {
		if i > 0 {
			fmt.Println(strings.Repeat("─", 50))
		}
		printItem(it, report)
	}
	return nil
}

// resolveItems finds the items matching arg. An item ref or an exact name/id
// match wins; otherwise names containing arg are returned.
func resolveItems(snap *dataset.Snapshot, arg string) ([]catalog.Item, error) {
	// 1. Exact ref.
	if ref, err := catalog.ParseItemRef(arg); err == nil {
		if it, ok := snap.Lookup(ref); ok {
			return []catalog.Item{it}, nil
		}
	}

	all := snap.All()

	// 2. Exact name or id.
	var exact []catalog.Item
	for _, it := range all {
		if strings.EqualFold(it.Name, arg) || strings.EqualFold(it.ID, arg) {
			exact = append(exact, it)
		}
	}
	if len(exact) > 0 {
		return exact, nil
	}

	// 3. Substring on names.
	lower := strings.ToLower(arg)
	var matches []catalog.Item
	for _, it := range all {
		if strings.Contains(strings.ToLower(it.Label()), lower) {
			matches = append(matches, it)
		}
	}
	if len(matches) > 0 {
		return matches, nil
	}

	return nil, fmt.Errorf("item %q not found.\nTip: run 'fibula search --keyword %s' to look it up.", arg, arg)
}

// printItem displays one item with its offers, best price first.
func printItem(it catalog.Item, report catalog.Report) {
	fmt.Printf("📦 %s: %s\n", cases.Title(language.English).String(it.Category.String()), it.Label())
	fmt.Printf("Ref:      %s\n", it.Ref())
	if it.Variant != "" {
		fmt.Printf("Type:     %s\n", it.Variant)
	}

	if flagInspectRaw {
		fmt.Println()
		spew.Dump(it)
	}

	if len(it.Offers) == 0 {
		fmt.Println("\n  (no merchant buys this item)")
		return
	}

	offers := append([]catalog.SaleOffer(nil), it.Offers...)
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].Price > offers[j].Price })

	fmt.Printf("\nSell to (%d):\n", len(offers))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, o := range offers {
		note := ""
		if locs := report.Locations(o.Merchant); len(locs) > 1 {
			note = "also at " + strings.Join(otherLocations(locs, o.Location), ", ")
		}
		fmt.Fprintf(w, "  %s\t%s\t%d gp\t%s\n", o.Merchant, o.Location, o.Price, note)
	}
	_ = w.Flush()
}

func otherLocations(locs []string, current string) []string {
	out := make([]string, 0, len(locs))
	for _, l := range locs {
		if l != current {
			out = append(out, l)
		}
	}
	return out
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

var flagMerchantsInconsistent bool

var merchantsCmd = &cobra.Command{
	Use:   "merchants",
	Short: "List every merchant with the locations it was recorded at",
	Long: `List every merchant found in item offers, the distinct locations it
was recorded at and how many items it buys.

A merchant recorded at more than one location is flagged; this usually
means a typo in the location of one offer.`,
	Args: cobra.NoArgs,
	RunE: runMerchants,
}

func init() {
	merchantsCmd.Flags().BoolVar(&flagMerchantsInconsistent, "inconsistent", false, "Only list merchants recorded at more than one location")
	rootCmd.AddCommand(merchantsCmd)
}

func runMerchants(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snap, err := loadSnapshot(cfg, nil)
	if err != nil {
		return err
	}
	noteDiagnostics(snap)

	report := snap.Consistency()
	names := report.Merchants()
	if flagMerchantsInconsistent {
		names = report.Inconsistent()
	}
	counts := itemCounts(snap.All())

	fmt.Printf("\nMerchants (%d):\n\n", len(names))
	if len(names) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  NPC\tLOCATIONS\tITEMS\t")
	for _, m := range names {
		locs := report.Locations(m)
		flag := ""
		if len(locs) > 1 {
			flag = "⚠"
		}
		where := strings.Join(locs, ", ")
		if where == "" {
			where = "-"
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", m, where, counts[m], flag)
	}
	return w.Flush()
}

// itemCounts returns, per merchant, the number of distinct items it buys.
func itemCounts(items []catalog.Item) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		seen := make(map[string]bool, len(it.Offers))
		for _, o := range it.Offers {
			if seen[o.Merchant] {
				continue
			}
			seen[o.Merchant] = true
			out[o.Merchant]++
		}
	}
	return out
}

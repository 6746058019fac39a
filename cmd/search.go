package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/kamusis/fibula-cli/internal/catalog"
	"github.com/kamusis/fibula-cli/internal/config"
	"github.com/kamusis/fibula-cli/internal/dataset"
	"github.com/kamusis/fibula-cli/internal/search"
	searchindex "github.com/kamusis/fibula-cli/internal/search/index"
)

var (
	flagSearchIndex   bool
	flagSearchStored  bool
	flagSearchKeyword bool
	flagSearchK       int
)

var searchCmd = &cobra.Command{
	Use:   "search <merchant-or-location>",
	Short: "Find items sold to a merchant or at a location",
	Long: `Search items by merchant or location name.

By default the query must match a merchant or location name exactly
(case-sensitive). Use --keyword for case-insensitive substring matching
over item names, types, merchants and locations.

  fibula search Rashid
  fibula search "Ab'Dendriel"
  fibula search --keyword "short sword"
  fibula search --index          # export the token index to ~/.fibula/index`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagSearchIndex, "index", false, "Export the token index (~/.fibula/index)")
	searchCmd.Flags().BoolVar(&flagSearchStored, "stored", false, "Answer from the exported index (fails if it is stale)")
	searchCmd.Flags().BoolVar(&flagSearchKeyword, "keyword", false, "Case-insensitive keyword search")
	searchCmd.Flags().IntVar(&flagSearchK, "k", 0, "Maximum number of keyword results (0 = all)")
	searchCmd.MarkFlagsMutuallyExclusive("keyword", "stored")
	searchCmd.MarkFlagsMutuallyExclusive("index", "stored")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagSearchIndex {
		return runSearchIndex(cfg)
	}

	if len(args) == 0 {
		return cmd.Help()
	}
	query := strings.Join(args, " ")

	snap, err := loadSnapshot(cfg, nil)
	if err != nil {
		return err
	}
	noteDiagnostics(snap)

	if flagSearchKeyword {
		results := search.KeywordSearch(snap.All(), query, flagSearchK)
		printSearchResults(query, results)
		return nil
	}

	refs, err := tokenRefs(cfg, snap, query, flagSearchStored)
	if err != nil {
		return err
	}
	printSearchResults(query, resolveRefs(snap, refs))
	return nil
}

// tokenRefs answers an exact token query from the live snapshot, or only
// from the exported index when stored is set.
func tokenRefs(cfg *config.Config, snap *dataset.Snapshot, query string, stored bool) ([]catalog.ItemRef, error) {
	if stored {
		return storedQuery(cfg, snap, query)
	}
	return snap.SearchByToken(query), nil
}

// storedQuery answers query from the exported index, refusing an index built
// from different items.
func storedQuery(cfg *config.Config, snap *dataset.Snapshot, query string) ([]catalog.ItemRef, error) {
	dir, err := cfg.EffectiveIndexDir()
	if err != nil {
		return nil, err
	}
	idx, manifest, err := searchindex.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'fibula search --index' to export it.", err)
	}
	if err := manifest.CheckFresh(snap.SourceHash); err != nil {
		return nil, fmt.Errorf("%w\nRun 'fibula search --index' to rebuild it.", err)
	}
	return idx.Query(query), nil
}

func resolveRefs(snap *dataset.Snapshot, refs []catalog.ItemRef) []search.Result {
	out := make([]search.Result, 0, len(refs))
	for _, ref := range refs {
		if it, ok := snap.Lookup(ref); ok {
			out = append(out, search.Result{Item: it, Why: "token"})
		}
	}
	return out
}

func printSearchResults(query string, results []search.Result) {
	fmt.Printf("\nfibula search %q\n\n", query)
	fmt.Printf("Results (%d found):\n", len(results))
	if len(results) == 0 {
		return
	}

	grouped := make(map[catalog.Category][]search.Result)
	for _, r := range results {
		grouped[r.Item.Category] = append(grouped[r.Item.Category], r)
	}

	for _, cat := range catalog.Categories {
		items := grouped[cat]
		if len(items) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d):\n", cat, len(items))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for i, r := range items {
			fmt.Fprintf(w, "  %d.\t%s\t%s\t%s\n", i+1, r.Item.Ref(), r.Item.Label(), offersSummary(r.Item, query))
		}
		_ = w.Flush()
	}
}

// offersSummary lists the offers of it, marking those naming query.
func offersSummary(it catalog.Item, query string) string {
	if len(it.Offers) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(it.Offers))
	for _, o := range it.Offers {
		s := fmt.Sprintf("%s@%s %d", o.Merchant, o.Location, o.Price)
		if o.Merchant == query || o.Location == query {
			s = "*" + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func runSearchIndex(cfg *config.Config) error {
	snap, err := loadSnapshot(cfg, nil)
	if err != nil {
		return err
	}
	noteDiagnostics(snap)

	destDir, err := cfg.EffectiveIndexDir()
	if err != nil {
		return err
	}
	if err := exportIndex(snap, destDir, 30*time.Second); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("index written: %s (%d tokens, %d items)", destDir, snap.Index.Len(), snap.Index.Items()))
	return nil
}

// exportIndex writes the snapshot's index into a temp dir next to destDir
// and swaps it into place while holding the index lock.
func exportIndex(snap *dataset.Snapshot, destDir string, lockTimeout time.Duration) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", parent, err)
	}

	_, unlock, err := acquireIndexLock(filepath.Join(parent, ".index.lock"), lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	tmpDir, err := os.MkdirTemp(parent, "index-*")
	if err != nil {
		return fmt.Errorf("cannot create temp index dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	manifest := searchindex.NewManifest(snap.Index, snap.SourceHash)
	if err := searchindex.Write(tmpDir, manifest, snap.Index); err != nil {
		return fmt.Errorf("index write failed: %w", err)
	}
	if err := searchindex.AtomicSwap(tmpDir, destDir); err != nil {
		return fmt.Errorf("cannot install index: %w", err)
	}
	return nil
}

// acquireIndexLock takes an exclusive file lock, polling until timeout.
func acquireIndexLock(lockPath string, timeout time.Duration) (*flock.Flock, func(), error) {
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, func() {}, fmt.Errorf("cannot acquire index lock: %w", err)
		}
		if locked {
			return l, func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, func() {}, fmt.Errorf("another index export is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	searchindex "github.com/kamusis/fibula-cli/internal/search/index"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/kamusis/fibula-cli/cmd.version=v0.3.0 \
//	  -X github.com/kamusis/fibula-cli/cmd.commit=$(git rev-parse --short HEAD) \
//	  -X github.com/kamusis/fibula-cli/cmd.buildDate=$(date -u +%Y-%m-%d)"
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fibula version and build information",
	Long: `Print the fibula version, the commit and date it was built from, and
the index format it writes with 'fibula search --index'. An exported index
with a newer format than this build reads must be re-exported.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	writeVersion(cmd.OutOrStdout())
	return nil
}

func writeVersion(w io.Writer) {
	fmt.Fprintf(w, "fibula %s\n", version)
	fmt.Fprintf(w, "Commit:       %s\n", emptyAsNA(commit))
	fmt.Fprintf(w, "Build Date:   %s\n", emptyAsNA(buildDate))
	fmt.Fprintf(w, "Index Format: v%d\n", searchindex.FormatVersion)
	fmt.Fprintf(w, "Go Version:   %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

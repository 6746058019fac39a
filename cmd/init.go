package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/fibula-cli/internal/catalog"
	"github.com/kamusis/fibula-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.fibula with a default config and content directory",
	Long: `Initialize fibula at ~/.fibula/.

Writes fibula.yaml (if missing), a .env template for path overrides, and
creates the content directory where the category files live:
  weapons.json, equipment.json, tools.json, food.json`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.fibula directory ────────────────────────────────────────
	dir, err := config.FibulaDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("fibula directory ready: %s", dir))

	// ── 2. Write fibula.yaml if missing ───────────────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. .env template ──────────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}

	// ── 4. Content directory ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.ContentDir, 0o755); err != nil {
		return fmt.Errorf("cannot create content dir %s: %w", cfg.ContentDir, err)
	}
	printOK("", fmt.Sprintf("Content directory ready: %s", cfg.ContentDir))

	files, err := cfg.CategoryFiles()
	if err != nil {
		return err
	}
	var missing []catalog.Category
	for _, cat := range sortedCategories(files) {
		if _, err := os.Stat(files[cat]); os.IsNotExist(err) {
			missing = append(missing, cat)
		}
	}
	if len(missing) > 0 {
		printBullet("Missing content:")
		for _, cat := range missing {
			printMiss(cat.String(), fmt.Sprintf("add %s", files[cat]))
		}
	}
	return nil
}

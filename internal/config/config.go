package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/fibula-cli/internal/catalog"
)

// CategoryFile maps an item category to its content file.
type CategoryFile struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// Config is the in-memory representation of ~/.fibula/fibula.yaml.
type Config struct {
	ContentDir string         `yaml:"content_dir"`
	IndexDir   string         `yaml:"index_dir,omitempty"`
	References string         `yaml:"references,omitempty"`
	Categories []CategoryFile `yaml:"categories,omitempty"`
}

// FibulaDir returns the absolute path to ~/.fibula/.
func FibulaDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".fibula"), nil
}

// ConfigPath returns the absolute path to ~/.fibula/fibula.yaml.
func ConfigPath() (string, error) {
	dir, err := FibulaDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fibula.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the default Config written on first fibula init.
func DefaultConfig() (*Config, error) {
	dir, err := FibulaDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		ContentDir: filepath.Join(dir, "content"),
		IndexDir:   filepath.Join(dir, "index"),
		Categories: []CategoryFile{
			{Name: "weapon", File: "weapons.json"},
			{Name: "equipment", File: "equipment.json"},
			{Name: "tool", File: "tools.json"},
			{Name: "food", File: "food.json"},
		},
	}, nil
}

// Load reads and parses ~/.fibula/fibula.yaml, then applies environment
// overrides (FIBULA_CONTENT_DIR, FIBULA_INDEX_DIR, FIBULA_REFERENCES).
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := cfg.applyOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save marshals cfg and writes it to ~/.fibula/fibula.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Validate checks that every category entry names a known category and a
// file, and that no category is listed twice.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	seen := make(map[catalog.Category]bool)
	for _, cf := range c.Categories {
		cat, err := catalog.ParseCategory(cf.Name)
		if err != nil {
			return err
		}
		if cf.File == "" {
			return fmt.Errorf("category %s has no file", cat)
		}
		if seen[cat] {
			return fmt.Errorf("category %s listed twice", cat)
		}
		seen[cat] = true
	}
	return nil
}

// CategoryFiles resolves each configured category to its absolute file path.
// Relative files are resolved against ContentDir.
func (c *Config) CategoryFiles() (map[catalog.Category]string, error) {
	out := make(map[catalog.Category]string, len(c.Categories))
	for _, cf := range c.Categories {
		cat, err := catalog.ParseCategory(cf.Name)
		if err != nil {
			return nil, err
		}
		p, err := ExpandPath(cf.File)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.ContentDir, p)
		}
		out[cat] = p
	}
	return out, nil
}

// EffectiveIndexDir returns IndexDir, defaulting to ~/.fibula/index.
func (c *Config) EffectiveIndexDir() (string, error) {
	if c.IndexDir != "" {
		return c.IndexDir, nil
	}
	dir, err := FibulaDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "index"), nil
}

func (c *Config) applyOverrides() error {
	for key, dst := range map[string]*string{
		"FIBULA_CONTENT_DIR": &c.ContentDir,
		"FIBULA_INDEX_DIR":   &c.IndexDir,
		"FIBULA_REFERENCES":  &c.References,
	} {
		v, err := GetConfigValue(key)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = v
		}
	}
	return nil
}

func (c *Config) expand() error {
	var err error
	// Expand ~ in paths at load time.
	if c.ContentDir, err = ExpandPath(c.ContentDir); err != nil {
		return err
	}
	if c.IndexDir, err = ExpandPath(c.IndexDir); err != nil {
		return err
	}
	if c.References, err = ExpandPath(c.References); err != nil {
		return err
	}
	return nil
}

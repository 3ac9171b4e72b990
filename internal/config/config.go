// Package config provides configuration file support for drdementabase commands.
// Settings are read from the "catalog:" section of a YAML or TOML file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/samestrin/drdementabase/internal/playlist"
)

// EnvCorpusDir names the environment variable consulted for the corpus
// directory when no flag is given.
const EnvCorpusDir = "DRDEMENTABASE_CORPUS"

// EnvConfigPath names a config file for processes without a --config flag.
const EnvConfigPath = "DRDEMENTABASE_CONFIG"

// DefaultOutput is the export written by build when none is configured.
const DefaultOutput = "drdementabase.xlsx"

// Config represents the catalog configuration.
type Config struct {
	CorpusDir string              `yaml:"corpus_dir" toml:"corpus_dir"`
	Outputs   []string            `yaml:"outputs" toml:"outputs"`
	Ignore    []string            `yaml:"ignore" toml:"ignore"`
	Overrides []playlist.Override `yaml:"overrides" toml:"overrides"`
	Verbose   bool                `yaml:"verbose" toml:"verbose"`
}

// configWrapper is used to parse the "catalog:" section from a file.
type configWrapper struct {
	Catalog Config `yaml:"catalog" toml:"catalog"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{}
}

// Load reads catalog configuration from a .yaml, .yml or .toml file.
func Load(path string) (*Config, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, ErrConfigPathEmpty()
	}

	data, err := os.ReadFile(trimmedPath)
	if err != nil {
		return nil, wrapReadError(trimmedPath, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrConfigEmpty(trimmedPath)
	}

	var wrapper configWrapper
	switch ext := strings.ToLower(filepath.Ext(trimmedPath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &wrapper); err != nil {
			return nil, ErrConfigInvalid(trimmedPath, "YAML", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &wrapper); err != nil {
			return nil, ErrConfigInvalid(trimmedPath, "TOML", err)
		}
	default:
		return nil, ErrConfigUnsupported(trimmedPath, ext)
	}

	cfg := &wrapper.Catalog
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the override table.
func (c *Config) Validate() error {
	for i, o := range c.Overrides {
		if strings.TrimSpace(o.Trigger) == "" {
			return ErrOverrideInvalid(i, "trigger")
		}
		if strings.TrimSpace(o.Title) == "" {
			return ErrOverrideInvalid(i, "title")
		}
	}
	return nil
}

// ScannerOverrides returns the built-in overrides followed by the
// configured ones.
func (c *Config) ScannerOverrides() []playlist.Override {
	return append(playlist.DefaultOverrides(), c.Overrides...)
}

// ResolveCorpusDir applies the precedence: explicit > env > config.
func (c *Config) ResolveCorpusDir(explicit string) string {
	return ResolveValue(explicit, ResolveValue(os.Getenv(EnvCorpusDir), c.CorpusDir))
}

// ResolveOutputs applies the precedence: explicit > config > default.
func (c *Config) ResolveOutputs(explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if len(c.Outputs) > 0 {
		return c.Outputs
	}
	return []string{DefaultOutput}
}

// ResolveValue returns the explicit value if non-empty, otherwise the config value.
func ResolveValue(explicit, configValue string) string {
	if explicit != "" {
		return explicit
	}
	return configValue
}

// Package config loads the optional .distributions.toml file. The file can
// extend or override the built-in chain table and name extra registry folders
// (testnets) that are discovered but carry no chain id of their own.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Saturn-DEX/distributions/internal/chains"
)

// Config is the decoded contents of a .distributions.toml file.
type Config struct {
	// Chains extends/overrides the built-in chain-name to chain-id table.
	Chains map[string]int64 `toml:"chains"`

	// ExtraFolders lists registry folders (e.g. testnets) that are walked
	// during discovery but have no entry in the chain table.
	ExtraFolders []string `toml:"extra_folders"`

	configFilePath string
}

// DefaultLoader loads config from a TOML file on disk.
type DefaultLoader struct{}

// Init creates a skeleton configuration file at path.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	// Top-level keys must precede the [chains] table in TOML.
	content := "extra_folders = []\n\n[chains]\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads and validates the config file at path. A missing file is not an
// error: the built-in chain table applies unchanged.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Config{configFilePath: path}, nil
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	cfg.configFilePath = path

	return &cfg, nil
}

func (c *Config) validate() error {
	for name, id := range c.Chains {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: chain entry has empty name", ErrInvalidChainID)
		}
		if id <= 0 {
			return fmt.Errorf("%w: '%s' (value: %d)", ErrInvalidChainID, name, id)
		}
	}

	return nil
}

// Table returns the effective chain table: built-ins merged with any
// overrides from the config file.
func (c *Config) Table() chains.Table {
	table := chains.Builtin()
	for name, id := range c.Chains {
		table[name] = id
	}

	return table
}

// ChainFolders returns the registry folder names to walk during discovery:
// the chain table keys (sorted), followed by the extra folders in file order.
func (c *Config) ChainFolders() []string {
	folders := c.Table().Names()

	seen := make(map[string]struct{}, len(folders))
	for _, f := range folders {
		seen[f] = struct{}{}
	}
	for _, f := range c.ExtraFolders {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		folders = append(folders, f)
	}

	return folders
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config file name looked up in the search directories.
const blocksFile = "blocks.yaml"

// Sources reported by LoadBlocks.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadBlocks loads the falling-block configuration and reports where it
// came from. Fields missing from a file keep their default values.
// Search order: customPath -> ~/.blockfall/configs/blocks.yaml ->
// ./configs/blocks.yaml -> embedded default -> hardcoded default.
//
// A custom path must exist, parse and validate. Files found in the search
// directories are skipped when they are unreadable or invalid.
func LoadBlocks(customPath string) (BlocksConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlocksConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(data)
		if err != nil {
			return BlocksConfig{}, "", fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{userConfigPath(blocksFile), filepath.Join("configs", blocksFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBlocks(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := parseBlocks(defaultBlocksYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultBlocksConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
}

// parseBlocks decodes YAML over the defaults and validates the result.
func parseBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlocksConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BlocksConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg BlocksConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

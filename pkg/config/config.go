/*
Package config manages TOML configuration for the autocomplete service.

InitConfig handles automatic config file creation and loading with fallback
to defaults. LoadConfig and SaveConfig provide direct access for runtime
changes. None of these settings touch the error-model constants in
pkg/errormodel - those are fixed contracts the ranking depends on, not
tunables.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has the MessagePack IPC server's request-shaping limits.
type ServerConfig struct {
	MaxResults  int `toml:"max_results"`   // upper bound a caller's max_results may request
	MaxQueryLen int `toml:"max_query_len"` // requests with a longer query are rejected outright
}

// DictConfig locates and bounds the dictionary this engine is built from.
type DictConfig struct {
	Path       string  `toml:"path"`
	MinWeight  float64 `toml:"min_weight"`  // stored only; dictionary.Load does not read it and rejects only non-positive weights
	MaxEntries int     `toml:"max_entries"` // stored only; dictionary.Load does not read it and does not cap dictionary size
}

// CliConfig holds the interactive shell / demo-mode defaults.
type CliConfig struct {
	DefaultResults int  `toml:"default_results"`
	RunDemo        bool `toml:"run_demo"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxResults:  20,
			MaxQueryLen: 256,
		},
		Dict: DictConfig{
			Path:       "dictionary.txt",
			MinWeight:  0,
			MaxEntries: 1000000,
		},
		CLI: CliConfig{
			DefaultResults: 5,
			RunDemo:        false,
		},
	}
}

// InitConfig loads config from file or creates a default one if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}

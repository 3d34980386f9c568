package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsPositive(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.MaxResults <= 0 {
		t.Error("Server.MaxResults must be positive")
	}
	if cfg.Server.MaxQueryLen <= 0 {
		t.Error("Server.MaxQueryLen must be positive")
	}
	if cfg.CLI.DefaultResults <= 0 {
		t.Error("CLI.DefaultResults must be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Dict.Path = "custom.txt"
	cfg.Server.MaxResults = 7

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Dict.Path != "custom.txt" {
		t.Errorf("Dict.Path = %q, want %q", loaded.Dict.Path, "custom.txt")
	}
	if loaded.Server.MaxResults != 7 {
		t.Errorf("Server.MaxResults = %d, want 7", loaded.Server.MaxResults)
	}
}

func TestInitConfigCreatesDefaultWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Server.MaxResults != DefaultConfig().Server.MaxResults {
		t.Error("InitConfig did not return defaults for a missing file")
	}

	if _, err := LoadConfig(path); err != nil {
		t.Errorf("InitConfig did not persist a loadable file: %v", err)
	}
}

func TestInitConfigLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Server.MaxResults = 99
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if loaded.Server.MaxResults != 99 {
		t.Errorf("Server.MaxResults = %d, want 99", loaded.Server.MaxResults)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Dictionary.BaseURL == "" {
		t.Error("default dictionary base URL is empty")
	}
	if got := cfg.Tagger.LoadTimeout(); got != 10*time.Second {
		t.Errorf("default tagger load timeout = %v, want 10s", got)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "tagger:\n  load_timeout_seconds: 3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got := cfg.Tagger.LoadTimeout(); got != 3*time.Second {
		t.Errorf("load timeout = %v, want 3s", got)
	}
	if cfg.Dictionary.BaseURL == "" {
		t.Error("unset dictionary base URL should keep its default")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("Load() should fail on invalid YAML")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Dictionary.TimeoutSeconds = 7
	cfg.Cache.Path = "/tmp/custom.db"

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if loaded.Dictionary.TimeoutSeconds != 7 {
		t.Errorf("timeout = %d, want 7", loaded.Dictionary.TimeoutSeconds)
	}
	if loaded.Cache.Path != "/tmp/custom.db" {
		t.Errorf("cache path = %q", loaded.Cache.Path)
	}
}

func TestCachePath(t *testing.T) {
	cfg := Default()
	if got := cfg.CachePath("/cfg"); got != filepath.Join("/cfg", "lookups.db") {
		t.Errorf("CachePath() = %q", got)
	}

	cfg.Cache.Path = "/elsewhere/x.db"
	if got := cfg.CachePath("/cfg"); got != "/elsewhere/x.db" {
		t.Errorf("CachePath() override = %q", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
provider:
  mode: "files"
  dir: "./levels"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Provider.Mode != "files" {
		t.Errorf("provider mode = %q", cfg.Provider.Mode)
	}
	if want := filepath.Join(dir, "levels"); cfg.Provider.Dir != want {
		t.Errorf("provider dir = %q, want %q", cfg.Provider.Dir, want)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.Provider.Mode != "reducer" {
		t.Errorf("provider mode = %q, want reducer", cfg.Provider.Mode)
	}
	if cfg.Gesture.Threshold != 0.15 || cfg.Gesture.CooldownMs != 300 {
		t.Errorf("gesture defaults: %+v", cfg.Gesture)
	}
	if cfg.Animation.LargeThreshold != 3000 || cfg.Animation.OutKeptRate != 0.7 {
		t.Errorf("animation defaults: %+v", cfg.Animation)
	}
	if len(cfg.Documents.Extensions) == 0 {
		t.Error("document extensions default missing")
	}
}

func TestLoad_envOverrides(t *testing.T) {
	t.Setenv("YOYAK_PORT", "9999")
	t.Setenv("YOYAK_PROVIDER_MODE", "http")
	t.Setenv("YOYAK_PROVIDER_URL", "http://summarizer:8000/summarize")
	t.Setenv("YOYAK_DEBUG", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want env override 9999", cfg.Server.Port)
	}
	if cfg.Provider.Mode != "http" || cfg.Provider.URL != "http://summarizer:8000/summarize" {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if !cfg.Debug {
		t.Error("debug env override ignored")
	}
}

func TestLoad_recursiveDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
documents:
  directories: ["./docs"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Documents.RecursiveOrDefault() {
		t.Error("recursive should default to true when directories are set")
	}
	if want := filepath.Join(dir, "docs"); cfg.Documents.Directories[0] != want {
		t.Errorf("directory = %q, want %q", cfg.Documents.Directories[0], want)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Documents.Directories = []string{"/data/docs"}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Documents.Directories) != 1 || loaded.Documents.Directories[0] != "/data/docs" {
		t.Errorf("round-trip directories = %v", loaded.Documents.Directories)
	}
}

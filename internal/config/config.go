// Package config provides configuration loading for the yoyak server.
// Settings come from a YAML file with defaults applied, then environment
// variables (optionally from a .env file) override individual fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Documents DocumentsConfig `yaml:"documents"`
	Provider  ProviderConfig  `yaml:"provider"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Animation AnimationConfig `yaml:"animation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DocumentsConfig holds document ingestion settings.
type DocumentsConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true
// when unset.
func (d *DocumentsConfig) RecursiveOrDefault() bool {
	if d.Recursive != nil {
		return *d.Recursive
	}
	return true
}

// ProviderConfig selects where level variants come from.
// Mode "reducer" computes them locally from word priorities, "files" reads
// precomputed <hash>.level<N>.txt files from Dir, "http" POSTs to URL.
// The reducer always backs the other two as a fallback.
type ProviderConfig struct {
	Mode           string `yaml:"mode"`
	Dir            string `yaml:"dir"`
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GestureConfig tunes the pinch controller.
type GestureConfig struct {
	MinScale   float64 `yaml:"min_scale"`
	MaxScale   float64 `yaml:"max_scale"`
	Threshold  float64 `yaml:"threshold"`
	DebounceMs int     `yaml:"debounce_ms"`
	CooldownMs int     `yaml:"cooldown_ms"`
}

// AnimationConfig tunes transition planning.
type AnimationConfig struct {
	LargeThreshold int     `yaml:"large_threshold"`
	ViewportMargin float64 `yaml:"viewport_margin"`
	OutAddedRate   float64 `yaml:"out_added_rate"`
	OutKeptRate    float64 `yaml:"out_kept_rate"`
	InAddedRate    float64 `yaml:"in_added_rate"`
	InKeptRate     float64 `yaml:"in_kept_rate"`
}

// Load reads and parses the config file at path, expands paths, applies
// defaults, and finally applies environment overrides. A missing file is
// not an error; defaults plus environment are used instead.
func Load(path string) (*Config, error) {
	var cfg Config
	configDir := "."
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			configDir = filepath.Dir(path)
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	ApplyDefaults(&cfg)
	applyEnv(&cfg)

	cfg.Provider.Dir = expandPath(cfg.Provider.Dir, configDir)
	for i := range cfg.Documents.Directories {
		cfg.Documents.Directories[i] = expandPath(cfg.Documents.Directories[i], configDir)
	}
	return &cfg, nil
}

// Save writes the config to path. Used for persisting document directory
// add/remove.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnv overrides fields from the environment, loading a .env file first
// when present.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.Debug = getEnvBool("YOYAK_DEBUG", cfg.Debug)
	cfg.Server.Host = getEnv("YOYAK_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("YOYAK_PORT", cfg.Server.Port)
	cfg.Provider.Mode = getEnv("YOYAK_PROVIDER_MODE", cfg.Provider.Mode)
	cfg.Provider.Dir = getEnv("YOYAK_PROVIDER_DIR", cfg.Provider.Dir)
	cfg.Provider.URL = getEnv("YOYAK_PROVIDER_URL", cfg.Provider.URL)
	cfg.Provider.TimeoutSeconds = getEnvInt("YOYAK_PROVIDER_TIMEOUT_SECONDS", cfg.Provider.TimeoutSeconds)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}

// Package config loads server configuration from the environment.
//
// Every setting has a default that works out of the box; a malformed
// value falls back to its default rather than failing server startup —
// an MCP server that refuses to start over a typo'd env var is worse
// than one running with defaults. A .env file in the working directory
// is honored when present.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Env var names. All settings share the ILSPYMCP_ prefix.
const (
	EnvDecompilerPath = "ILSPYMCP_ILSPYCMD"
	EnvMaxFiles       = "ILSPYMCP_MAX_FILES"
	EnvMaxBytes       = "ILSPYMCP_MAX_BYTES"
	EnvConcurrency    = "ILSPYMCP_CONCURRENCY"
	EnvDataDir        = "ILSPYMCP_DATA_DIR"
	EnvCache          = "ILSPYMCP_CACHE"
	EnvTimeoutSeconds = "ILSPYMCP_TIMEOUT_SECONDS"
)

// Defaults for the ceilings and the runner.
const (
	DefaultMaxFiles       = 1000
	DefaultMaxBytes       = 10 << 20 // 10 MiB of concatenated source
	DefaultConcurrency    = 2
	DefaultTimeoutSeconds = 120
)

// Config holds all server settings.
type Config struct {
	// DecompilerPath is an explicit path to the ilspycmd binary.
	// Empty means resolve via PATH and the dotnet tools directory.
	DecompilerPath string

	// MaxFiles caps how many decompiled source files are concatenated
	// into one result before the run is rejected as too large.
	MaxFiles int

	// MaxBytes caps the total size of the concatenated source text.
	MaxBytes int64

	// Concurrency bounds how many decompiler processes run at once.
	Concurrency int

	// DataDir holds the result cache and per-run scratch directories.
	DataDir string

	// CacheEnabled toggles the SQLite result cache.
	CacheEnabled bool

	// TimeoutSeconds bounds a single decompiler invocation.
	TimeoutSeconds int
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		MaxFiles:       DefaultMaxFiles,
		MaxBytes:       DefaultMaxBytes,
		Concurrency:    DefaultConcurrency,
		DataDir:        filepath.Join(home, ".ilspymcp"),
		CacheEnabled:   true,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Load reads configuration from the environment on top of Default.
// A .env file in the working directory is loaded first, best-effort;
// real environment variables win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv(EnvDecompilerPath); v != "" {
		cfg.DecompilerPath = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	cfg.MaxFiles = positiveInt(os.Getenv(EnvMaxFiles), cfg.MaxFiles)
	cfg.MaxBytes = positiveInt64(os.Getenv(EnvMaxBytes), cfg.MaxBytes)
	cfg.Concurrency = positiveInt(os.Getenv(EnvConcurrency), cfg.Concurrency)
	cfg.TimeoutSeconds = positiveInt(os.Getenv(EnvTimeoutSeconds), cfg.TimeoutSeconds)

	if v := os.Getenv(EnvCache); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			cfg.CacheEnabled = b
		}
	}

	return cfg
}

// CachePath returns the location of the SQLite result cache.
func (c Config) CachePath() string {
	return filepath.Join(c.DataDir, "cache.db")
}

// ScratchDir returns the parent directory for per-run decompiler output.
func (c Config) ScratchDir() string {
	return filepath.Join(c.DataDir, "scratch")
}

// positiveInt parses v as a positive integer, falling back otherwise.
func positiveInt(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := cast.ToIntE(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// positiveInt64 parses v as a positive integer, falling back otherwise.
func positiveInt64(v string, fallback int64) int64 {
	if v == "" {
		return fallback
	}
	n, err := cast.ToInt64E(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

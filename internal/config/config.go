// Package config loads the unnamed.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Aern-do/unnamedc/internal/diagfmt"
)

// FileName is the project file looked up from the working directory upwards.
const FileName = "unnamed.toml"

type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Build  BuildConfig  `toml:"build"`
}

type LexerConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	// Resync: продолжать файл после InvalidToken
	Resync bool `toml:"resync"`
}

type OutputConfig struct {
	Format string `toml:"format"` // pretty|json|short|sarif
	Color  string `toml:"color"`  // auto|on|off
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто → $XDG_CACHE_HOME/unnamedc/tokens
}

type BuildConfig struct {
	Jobs int `toml:"jobs"` // 0 → GOMAXPROCS
}

// Default returns the configuration used when no project file exists.
func Default() Config {
	return Config{
		Lexer:  LexerConfig{MaxDiagnostics: 100, Resync: true},
		Output: OutputConfig{Format: "pretty", Color: "auto"},
		Cache:  CacheConfig{Enabled: true},
	}
}

// Find walks up from startDir looking for unnamed.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults, so keys missing from the file keep
// their default values. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		// относительный путь считается от каталога с unnamed.toml
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return cfg, nil
}

// Discover finds and loads the project file for startDir. When there is
// none it returns the defaults and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Lexer.MaxDiagnostics < 0 {
		return fmt.Errorf("[lexer].max_diagnostics must not be negative, got %d", c.Lexer.MaxDiagnostics)
	}
	if _, err := diagfmt.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("[output].format: %w", err)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto|on|off, got %q", c.Output.Color)
	}
	if c.Build.Jobs < 0 {
		return fmt.Errorf("[build].jobs must not be negative, got %d", c.Build.Jobs)
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aern-do/unnamedc/internal/config"
)

// settings is unnamed.toml with command-line overrides applied.
type settings struct {
	cfg        config.Config
	configPath string
	color      bool
	quiet      bool
}

var current settings

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if abs, absErr := filepath.Abs(configPath); absErr == nil {
			configPath = abs
		}
	} else {
		cfg, configPath, err = config.Discover(".")
		if err != nil {
			return nil, err
		}
	}

	// флаги переопределяют файл, только если заданы явно
	if flags.Changed("max-diagnostics") {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		cfg.Lexer.MaxDiagnostics = n
	}
	if flags.Changed("color") {
		c, err := flags.GetString("color")
		if err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
		cfg.Output.Color = c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	current = settings{
		cfg:        cfg,
		configPath: configPath,
		color:      useColor(cfg.Output.Color, os.Stderr),
		quiet:      quiet,
	}
	return &current, nil
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f) && os.Getenv("NO_COLOR") == ""
	}
}

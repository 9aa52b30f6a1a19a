package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string        `short:"c" default:"handtracker.hcl" help:"Path to HCL configuration file"`
	LogLevel string        `short:"l" help:"Log level (overrides config)"`
	Tick     time.Duration `help:"Engine tick (overrides config)"`
	NoColor  bool          `help:"Disable colored output"`
}

// load reads the config file, then the environment, then flags
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Tick > 0 {
		cfg.Engine.Tick = g.Tick.String()
	}
	if g.NoColor {
		cfg.Display.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the configured logger on stderr, or on out when given
func newLogger(cfg *config.Config, out io.Writer) (*log.Logger, io.Closer, error) {
	if out == nil {
		out = os.Stderr
	}
	return cfg.Log.NewLogger(out)
}

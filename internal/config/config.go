package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Config represents the complete tracker configuration
type Config struct {
	Engine  EngineSettings  `hcl:"engine,block"`
	Log     LogSettings     `hcl:"log,block"`
	Display DisplaySettings `hcl:"display,block"`
	Watch   WatchSettings   `hcl:"watch,block"`
}

// EngineSettings controls how often the action log is drained
type EngineSettings struct {
	Tick string `hcl:"tick,optional"`
}

// LogSettings controls the structured logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
	File   string `hcl:"file,optional"`
}

// DisplaySettings controls the console and TUI sinks
type DisplaySettings struct {
	Color     bool `hcl:"color,optional"`
	HoleCards bool `hcl:"hole_cards,optional"`
}

// displayBlock tells omitted attributes apart from false
type displayBlock struct {
	Color     *bool `hcl:"color,optional"`
	HoleCards *bool `hcl:"hole_cards,optional"`
}

// WatchSettings configures the websocket snapshot hub
type WatchSettings struct {
	Addr string `hcl:"addr,optional"`
}

// envOverrides is read with the HANDTRACKER_ prefix after the file is loaded
type envOverrides struct {
	LogLevel  string        `env:"LOG_LEVEL"`
	LogFormat string        `env:"LOG_FORMAT"`
	LogFile   string        `env:"LOG_FILE"`
	Tick      time.Duration `env:"TICK"`
	WatchAddr string        `env:"WATCH_ADDR"`
	NoColor   bool          `env:"NO_COLOR"`
}

const (
	defaultTick      = "250ms"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultWatchAddr = "localhost:8080"
)

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Engine:  EngineSettings{Tick: defaultTick},
		Log:     LogSettings{Level: defaultLogLevel, Format: defaultLogFormat},
		Display: DisplaySettings{Color: true, HoleCards: true},
		Watch:   WatchSettings{Addr: defaultWatchAddr},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source and fills in defaults for omitted blocks and
// attributes.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw struct {
		Engine  *EngineSettings  `hcl:"engine,block"`
		Log     *LogSettings     `hcl:"log,block"`
		Display *displayBlock    `hcl:"display,block"`
		Watch   *WatchSettings   `hcl:"watch,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := DefaultConfig()
	if raw.Engine != nil {
		cfg.Engine = *raw.Engine
	}
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}
	if d := raw.Display; d != nil {
		if d.Color != nil {
			cfg.Display.Color = *d.Color
		}
		if d.HoleCards != nil {
			cfg.Display.HoleCards = *d.HoleCards
		}
	}
	if raw.Watch != nil {
		cfg.Watch = *raw.Watch
	}

	if cfg.Engine.Tick == "" {
		cfg.Engine.Tick = defaultTick
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaultLogFormat
	}
	if cfg.Watch.Addr == "" {
		cfg.Watch.Addr = defaultWatchAddr
	}
	return cfg, nil
}

// ApplyEnv overrides settings from HANDTRACKER_* environment variables
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "HANDTRACKER_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
	if o.Tick > 0 {
		c.Engine.Tick = o.Tick.String()
	}
	if o.WatchAddr != "" {
		c.Watch.Addr = o.WatchAddr
	}
	if o.NoColor {
		c.Display.Color = false
	}
	return nil
}

// TickInterval returns the parsed engine tick
func (c *Config) TickInterval() time.Duration {
	d, err := time.ParseDuration(c.Engine.Tick)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultTick)
	}
	return d
}

// Validate validates the configuration
func (c *Config) Validate() error {
	d, err := time.ParseDuration(c.Engine.Tick)
	if err != nil {
		return fmt.Errorf("%w: engine tick %q: %v", ErrInvalid, c.Engine.Tick, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: engine tick must be positive", ErrInvalid)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := ParseFormatter(c.Log.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if c.Watch.Addr == "" {
		return fmt.Errorf("%w: watch address is required", ErrInvalid)
	}
	return nil
}

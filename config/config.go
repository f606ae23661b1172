// Package config implements the demo program's thin configuration
// surface: a TOML file decoded with github.com/pelletier/go-toml/v2,
// with CLI flags (github.com/spf13/cobra + github.com/spf13/pflag)
// layered on top following "flags override file". This lives outside
// pipeline/ entirely — the core never reads a config file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"terminalgl/pipeline"
)

// Config is the typed, decodable configuration surface for the demo
// program.
type Config struct {
	WidthMultiplier   float32 `toml:"width_multiplier"`
	TileModeName      string  `toml:"tile_mode"`
	LogLevel          string  `toml:"log_level"`
	SuppressBanner    bool    `toml:"suppress_banner"`
	LightCapacity     int     `toml:"light_capacity"`
	WaitMillis        int     `toml:"wait_millis"`
	SwapToRenderRatio int     `toml:"swap_to_render_ratio"`
}

// Default returns the configuration the demo ships with absent a file or
// flags.
func Default() Config {
	return Config{
		WidthMultiplier:   2.0,
		TileModeName:      "1x1",
		LogLevel:          "info",
		SuppressBanner:    false,
		LightCapacity:     2,
		WaitMillis:        17,
		SwapToRenderRatio: 10,
	}
}

// Load reads and decodes a TOML document at path, starting from Default
// so any field the document omits keeps its default. A malformed
// document is a decode error, never a panic.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values that don't correspond to a real enum before
// the demo ever calls into pipeline. Unlike pipeline's warn-and-ignore
// policy, a bad config value is a hard error: a CLI has no sensible
// silent fallback for "render to a tile mode that doesn't exist".
func (c Config) Validate() error {
	if _, err := c.tileMode(); err != nil {
		return err
	}
	if _, err := c.logLevel(); err != nil {
		return err
	}
	if c.WidthMultiplier <= 0 {
		return fmt.Errorf("width_multiplier must be positive, got %v", c.WidthMultiplier)
	}
	return nil
}

// TileMode resolves the configured string into a pipeline.TileMode.
func (c Config) TileMode() pipeline.TileMode {
	m, _ := c.tileMode()
	return m
}

func (c Config) tileMode() (pipeline.TileMode, error) {
	switch c.TileModeName {
	case "1x1", "":
		return pipeline.Tile1x1, nil
	case "2x1":
		return pipeline.Tile2x1, nil
	case "2x2":
		return pipeline.Tile2x2, nil
	case "3x2":
		return pipeline.Tile3x2, nil
	case "braille2x4", "braille":
		return pipeline.TileBraille2x4, nil
	case "4x1":
		return pipeline.Tile4x1, nil
	case "8x1":
		return pipeline.Tile8x1, nil
	default:
		return 0, fmt.Errorf("unrecognized tile_mode %q", c.TileModeName)
	}
}

func (c Config) logLevel() (string, error) {
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unrecognized log_level %q", c.LogLevel)
	}
}

// BindFlags registers pflag-backed CLI overrides on cmd that write
// straight into cfg's fields, defaulted to cfg's current values. A caller
// that later replaces *cfg with a loaded file has to re-apply the flags
// the user set (cmd/demo does) so that flags override file.
func BindFlags(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	flags.Float32Var(&cfg.WidthMultiplier, "width-multiplier", cfg.WidthMultiplier, "character-cell aspect correction factor")
	flags.StringVar(&cfg.TileModeName, "tile-mode", cfg.TileModeName, "glyph tiling mode (1x1, 2x1, 2x2, 3x2, braille2x4, 4x1, 8x1)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.SuppressBanner, "no-banner", cfg.SuppressBanner, "suppress the startup banner")
	flags.IntVar(&cfg.LightCapacity, "light-capacity", cfg.LightCapacity, "per-kind light registry capacity")
	flags.IntVar(&cfg.WaitMillis, "wait-millis", cfg.WaitMillis, "swap-goroutine frame budget in milliseconds")
	flags.IntVar(&cfg.SwapToRenderRatio, "swap-to-render-ratio", cfg.SwapToRenderRatio, "present-goroutine poll ratio")
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/gfx"
)

// Environment variables overriding the display file.
const (
	EnvBackend  = "PRISM_BACKEND"
	EnvTitle    = "PRISM_TITLE"
	EnvVSync    = "PRISM_VSYNC"
	EnvLogLevel = "PRISM_LOG_LEVEL"
)

type Size struct {
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// DisplayConfig describes the window and the backend to open it with.
// Nil sizes let the platform decide.
type DisplayConfig struct {
	Title         string `toml:"title"`
	Fullscreen    bool   `toml:"fullscreen"`
	Dimensions    *Size  `toml:"dimensions"`
	MinDimensions *Size  `toml:"min_dimensions"`
	MaxDimensions *Size  `toml:"max_dimensions"`
	VSync         bool   `toml:"vsync"`
	Multisampling uint16 `toml:"multisampling"`
	Visibility    bool   `toml:"visibility"`
	Backend       string `toml:"backend"`
	LogLevel      string `toml:"log_level"`
}

func Default() DisplayConfig {
	return DisplayConfig{
		Title:         "Prism",
		VSync:         true,
		Multisampling: 1,
		Visibility:    true,
		Backend:       gfx.KindNull.String(),
		LogLevel:      "info",
	}
}

// Load reads a display file on top of the defaults. Keys the file does
// not set keep their default value; unknown keys are rejected.
func Load(path string) (DisplayConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read display config '%s': %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse display config '%s': %w", path, err)
	}
	return cfg, nil
}

// Decode strictly decodes TOML data into cfg.
func Decode(data []byte, cfg *DisplayConfig) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", gfx.ErrConfig, strict.String())
		}
		return err
	}
	return nil
}

// LoadEnv loads the given .env files, if they exist, into the process
// environment. Variables already set are left alone.
func LoadEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("failed to load env files %v: %w", existing, err)
		}
	}
	envy.Reload()
	return nil
}

// ApplyEnv overrides cfg with the PRISM_* environment variables.
func (c *DisplayConfig) ApplyEnv() error {
	c.Backend = envy.Get(EnvBackend, c.Backend)
	c.Title = envy.Get(EnvTitle, c.Title)
	c.LogLevel = envy.Get(EnvLogLevel, c.LogLevel)

	if v := envy.Get(EnvVSync, ""); v != "" {
		vsync, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", gfx.ErrConfig, EnvVSync, v)
		}
		c.VSync = vsync
	}
	return nil
}

// Validate checks the config and resolves its backend kind.
func (c DisplayConfig) Validate() (gfx.Kind, error) {
	kind, err := gfx.ParseKind(c.Backend)
	if err != nil {
		return kind, err
	}
	if c.Multisampling == 0 || c.Multisampling&(c.Multisampling-1) != 0 {
		return kind, fmt.Errorf("%w: multisampling %d is not a power of two", gfx.ErrConfig, c.Multisampling)
	}
	for name, s := range map[string]*Size{"dimensions": c.Dimensions, "min_dimensions": c.MinDimensions, "max_dimensions": c.MaxDimensions} {
		if s != nil && (s.Width == 0 || s.Height == 0) {
			return kind, fmt.Errorf("%w: %s must be non zero", gfx.ErrConfig, name)
		}
	}
	if c.MinDimensions != nil && c.MaxDimensions != nil &&
		(c.MinDimensions.Width > c.MaxDimensions.Width || c.MinDimensions.Height > c.MaxDimensions.Height) {
		return kind, fmt.Errorf("%w: min_dimensions exceed max_dimensions", gfx.ErrConfig)
	}
	return kind, nil
}

// Resolve loads path (when not empty) and the env files, applies the
// environment and validates the result. The log level is applied as a
// side effect so that loading is logged at the requested level.
func Resolve(path string, envFiles ...string) (DisplayConfig, gfx.Kind, error) {
	cfg := Default()
	if err := LoadEnv(envFiles...); err != nil {
		return cfg, gfx.KindNull, err
	}
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, gfx.KindNull, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, gfx.KindNull, err
	}
	core.SetLogLevel(core.ParseLogLevel(cfg.LogLevel))

	kind, err := cfg.Validate()
	if err != nil {
		return cfg, gfx.KindNull, err
	}
	core.LogDebug("display config resolved: %+v", cfg)
	return cfg, kind, nil
}

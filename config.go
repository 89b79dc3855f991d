package greenflag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("greenflag: invalid config")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "GREENFLAG_"

// Config holds runtime settings. Zero values are not meaningful; start from
// DefaultConfig.
type Config struct {
	StageWidth  float64    `env:"STAGE_WIDTH"`
	StageHeight float64    `env:"STAGE_HEIGHT"`
	Origin      OriginMode `env:"ORIGIN"`
	TPS         int        `env:"TPS"`
	MaxClones   int        `env:"MAX_CLONES"`
	Seed        uint64     `env:"SEED"` // 0 picks a random seed
	LogLevel    string     `env:"LOG_LEVEL"`
	LogJSON     bool       `env:"LOG_JSON"`
	Debug       bool       `env:"DEBUG"`
}

// DefaultConfig returns the classic Scratch setup: a 480x360 center-origin
// stage at 60 ticks per second with at most 300 clones.
func DefaultConfig() Config {
	return Config{
		StageWidth:  DefaultStage.Width,
		StageHeight: DefaultStage.Height,
		Origin:      OriginCenter,
		TPS:         60,
		MaxClones:   300,
		LogLevel:    "info",
	}
}

// Stage returns the configured stage size.
func (c Config) Stage() Stage {
	return Stage{Width: c.StageWidth, Height: c.StageHeight}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if !(c.StageWidth > 0) || !(c.StageHeight > 0) {
		return fmt.Errorf("%w: stage %vx%v", ErrInvalidConfig, c.StageWidth, c.StageHeight)
	}
	if c.Origin != OriginCenter && c.Origin != OriginTopLeft {
		return fmt.Errorf("%w: origin %d", ErrInvalidConfig, c.Origin)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	}
	if c.MaxClones < 0 {
		return fmt.Errorf("%w: max_clones %d", ErrInvalidConfig, c.MaxClones)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

type fileConfig struct {
	StageWidth  float64 `toml:"stage_width"`
	StageHeight float64 `toml:"stage_height"`
	Origin      string  `toml:"origin"`
	TPS         int     `toml:"tps"`
	MaxClones   int     `toml:"max_clones"`
	Seed        int64   `toml:"seed"`
	LogLevel    string  `toml:"log_level"`
	LogJSON     bool    `toml:"log_json"`
	Debug       bool    `toml:"debug"`
}

// LoadConfig builds a Config from defaults, the TOML file at path, and
// GREENFLAG_* environment variables, in that order. Keys missing from the
// file keep their defaults. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := decodeConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func decodeConfigFile(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("stage_width") {
		cfg.StageWidth = raw.StageWidth
	}
	if meta.IsDefined("stage_height") {
		cfg.StageHeight = raw.StageHeight
	}
	if meta.IsDefined("origin") {
		o, err := ParseOriginMode(raw.Origin)
		if err != nil {
			return fmt.Errorf("parse origin: %w", err)
		}
		cfg.Origin = o
	}
	if meta.IsDefined("tps") {
		cfg.TPS = raw.TPS
	}
	if meta.IsDefined("max_clones") {
		cfg.MaxClones = raw.MaxClones
	}
	if meta.IsDefined("seed") {
		if raw.Seed < 0 {
			return fmt.Errorf("parse seed: negative value %d", raw.Seed)
		}
		cfg.Seed = uint64(raw.Seed)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_json") {
		cfg.LogJSON = raw.LogJSON
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	return nil
}

// ApplyEnv overrides cfg with any GREENFLAG_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// UnmarshalText lets env and text decoders parse an origin name.
func (o *OriginMode) UnmarshalText(text []byte) error {
	m, err := ParseOriginMode(string(text))
	if err != nil {
		return err
	}
	*o = m
	return nil
}

// MarshalText returns the config name of the origin.
func (o OriginMode) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Package config loads viewer settings from defaults, an optional config
// file, SURVEYMAP_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"surveymap/internal/geom"
	"surveymap/internal/scene"
)

// EnvPrefix is the prefix for environment overrides, e.g. SURVEYMAP_DEPTH_MAX.
const EnvPrefix = "SURVEYMAP"

// CanvasConfig is the plotting surface geometry in pixels.
type CanvasConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	Margin float64 `mapstructure:"margin"`
}

// DomainConfig is the world extent mapped onto the canvas.
type DomainConfig struct {
	MinX float64 `mapstructure:"min_x"`
	MaxX float64 `mapstructure:"max_x"`
	MinY float64 `mapstructure:"min_y"`
	MaxY float64 `mapstructure:"max_y"`
}

// BBox returns the domain as a bounding box.
func (d DomainConfig) BBox() geom.BBox {
	return geom.BBox{MinX: d.MinX, MaxX: d.MaxX, MinY: d.MinY, MaxY: d.MaxY}
}

// DepthConfig configures the depth range selector.
type DepthConfig struct {
	Min        float64 `mapstructure:"min"`
	Max        float64 `mapstructure:"max"`
	Step       float64 `mapstructure:"step"`
	Convention string  `mapstructure:"convention"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the full viewer configuration.
type Config struct {
	Canvas CanvasConfig `mapstructure:"canvas"`
	Domain DomainConfig `mapstructure:"domain"`
	Depth  DepthConfig  `mapstructure:"depth"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("canvas.width", 800)
	v.SetDefault("canvas.height", 800)
	v.SetDefault("canvas.margin", 50)

	v.SetDefault("domain.min_x", -1500)
	v.SetDefault("domain.max_x", 1400)
	v.SetDefault("domain.min_y", -1350)
	v.SetDefault("domain.max_y", 800)

	v.SetDefault("depth.min", 0)
	v.SetDefault("depth.max", 2000)
	v.SetDefault("depth.step", 50)
	v.SetDefault("depth.convention", string(scene.NegativeDown))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("server.addr", ":8080")
}

// Load reads configuration into a Config. path may be empty, in which case
// only defaults, environment and flags already bound on v apply.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration with only defaults applied.
func Default() Config {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		panic(err) // defaults are always valid
	}
	return cfg
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct {
		key string
		v   float64
	}{
		{"canvas.width", c.Canvas.Width}, {"canvas.height", c.Canvas.Height}, {"canvas.margin", c.Canvas.Margin},
		{"domain.min_x", c.Domain.MinX}, {"domain.max_x", c.Domain.MaxX},
		{"domain.min_y", c.Domain.MinY}, {"domain.max_y", c.Domain.MaxY},
		{"depth.min", c.Depth.Min}, {"depth.max", c.Depth.Max}, {"depth.step", c.Depth.Step},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			errs = append(errs, fmt.Errorf("%s %g must be a finite number", f.key, f.v))
		}
	}
	if c.Canvas.Width-2*c.Canvas.Margin <= 0 || c.Canvas.Height-2*c.Canvas.Margin <= 0 {
		errs = append(errs, fmt.Errorf("canvas %gx%g leaves no plot area inside margin %g", c.Canvas.Width, c.Canvas.Height, c.Canvas.Margin))
	}
	if c.Domain.MinX >= c.Domain.MaxX {
		errs = append(errs, fmt.Errorf("domain.min_x %g must be below domain.max_x %g", c.Domain.MinX, c.Domain.MaxX))
	}
	if c.Domain.MinY >= c.Domain.MaxY {
		errs = append(errs, fmt.Errorf("domain.min_y %g must be below domain.max_y %g", c.Domain.MinY, c.Domain.MaxY))
	}
	if c.Depth.Max <= 0 {
		errs = append(errs, fmt.Errorf("depth.max %g must be positive", c.Depth.Max))
	}
	if c.Depth.Min < 0 || c.Depth.Min > c.Depth.Max {
		errs = append(errs, fmt.Errorf("depth.min %g must lie in [0, %g]", c.Depth.Min, c.Depth.Max))
	}
	if c.Depth.Step < 0 {
		errs = append(errs, fmt.Errorf("depth.step %g must not be negative", c.Depth.Step))
	}
	if _, err := scene.ParseConvention(c.Depth.Convention); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Convention returns the parsed depth convention. Validate has already
// rejected unknown names.
func (c Config) Convention() scene.Convention {
	conv, _ := scene.ParseConvention(c.Depth.Convention)
	return conv
}

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveymap/internal/scene"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, CanvasConfig{Width: 800, Height: 800, Margin: 50}, cfg.Canvas)
	assert.Equal(t, DomainConfig{MinX: -1500, MaxX: 1400, MinY: -1350, MaxY: 800}, cfg.Domain)
	assert.Equal(t, 0.0, cfg.Depth.Min)
	assert.Equal(t, 2000.0, cfg.Depth.Max)
	assert.Equal(t, 50.0, cfg.Depth.Step)
	assert.Equal(t, scene.NegativeDown, cfg.Convention())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "surveymap.toml")
	content := `
[canvas]
width = 1000
margin = 20

[depth]
max = 500
convention = "positive-down"
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))

	cfg, err := Load(viper.New(), p)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, cfg.Canvas.Width)
	assert.Equal(t, 800.0, cfg.Canvas.Height)
	assert.Equal(t, 20.0, cfg.Canvas.Margin)
	assert.Equal(t, 500.0, cfg.Depth.Max)
	assert.Equal(t, scene.PositiveDown, cfg.Convention())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SURVEYMAP_DEPTH_MAX", "1234")
	t.Setenv("SURVEYMAP_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 1234.0, cfg.Depth.Max)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"margin too large", func(c *Config) { c.Canvas.Margin = 400 }},
		{"inverted x domain", func(c *Config) { c.Domain.MinX, c.Domain.MaxX = 10, -10 }},
		{"flat y domain", func(c *Config) { c.Domain.MinY = c.Domain.MaxY }},
		{"non-positive depth max", func(c *Config) { c.Depth.Max = 0 }},
		{"depth min above max", func(c *Config) { c.Depth.Min = 3000 }},
		{"negative step", func(c *Config) { c.Depth.Step = -1 }},
		{"unknown convention", func(c *Config) { c.Depth.Convention = "up" }},
		{"nan depth max", func(c *Config) { c.Depth.Max = math.NaN() }},
		{"nan domain bound", func(c *Config) { c.Domain.MinX = math.NaN() }},
		{"infinite canvas", func(c *Config) { c.Canvas.Width = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

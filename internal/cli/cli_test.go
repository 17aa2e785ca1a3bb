package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveymap/internal/visibility"
)

const sampleYAML = `markers:
  - id: a
    name: Alpha
    x: 0
    y: 0
    depth: 100
    marker_type: shaft
  - id: b
    name: Bravo
    x: 100
    y: 100
    depth: 300
    marker_type: tunnel
  - id: c
    name: Charlie
    x: -200
    y: 300
    depth: 500
    marker_type: tunnel
`

func writeSample(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "markers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	return dir, path
}

func execute(t *testing.T, args ...string) (stdout, logs string, err error) {
	t.Helper()
	var out, logBuf bytes.Buffer
	c := New(&logBuf, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), logBuf.String(), err
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestResolveLevel(t *testing.T) {
	level, err := resolveLevel("warn", false)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, level)

	level, err = resolveLevel("warn", true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	level, err = resolveLevel("", false)
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)

	_, err = resolveLevel("loud", false)
	assert.Error(t, err)
}

func TestFileLogger(t *testing.T) {
	p := filepath.Join(t.TempDir(), "view.log")
	logger, closeLog, err := fileLogger(p, log.InfoLevel)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closeLog())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")

	logger, closeLog, err = fileLogger("", log.InfoLevel)
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoError(t, closeLog())
}

func TestTypesCommand(t *testing.T) {
	_, path := writeSample(t)
	out, logs, err := execute(t, "types", path)
	require.NoError(t, err)
	assert.Equal(t, "shaft   1\ntunnel  2\n", out)
	assert.Contains(t, logs, "Loaded")
}

func TestRenderCommand(t *testing.T) {
	dir, path := writeSample(t)
	out := filepath.Join(dir, "map.svg")

	_, logs, err := execute(t, "render", path, "-o", out, "--min", "200", "--type", "tunnel")
	require.NoError(t, err)
	assert.Contains(t, logs, "Rendered 2 markers")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(b)
	assert.Contains(t, svg, ">Bravo<")
	assert.Contains(t, svg, ">Charlie<")
	assert.NotContains(t, svg, ">Alpha<")
	assert.Contains(t, svg, "depth 200-2,000")
}

func TestRenderCommand_InvertedRange(t *testing.T) {
	dir, path := writeSample(t)
	_, _, err := execute(t, "render", path, "-o", filepath.Join(dir, "x.svg"), "--min", "10", "--max", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, visibility.ErrInvalidRange)

	out := filepath.Join(dir, "nan.svg")
	_, _, err = execute(t, "render", path, "-o", out, "--min", "NaN")
	assert.ErrorIs(t, err, visibility.ErrInvalidRange)
	assert.NoFileExists(t, out)
}

func TestRenderCommand_ConfigFile(t *testing.T) {
	dir, path := writeSample(t)
	cfgPath := filepath.Join(dir, "surveymap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("depth:\n  max: 250\n"), 0o644))
	out := filepath.Join(dir, "map.svg")

	_, logs, err := execute(t, "--config", cfgPath, "render", path, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, logs, "Rendered 1 markers")
}

func TestRootCommand_BadConfig(t *testing.T) {
	_, path := writeSample(t)
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "types", path)
	assert.Error(t, err)
}

func TestTypesCommand_UnsupportedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "markers.txt")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	_, _, err := execute(t, "types", p)
	assert.Error(t, err)
}

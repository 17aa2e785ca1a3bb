// Package cli implements the surveymap command-line interface.
//
// # Commands
//
//   - view: interactive terminal viewer for a marker file
//   - render: write the filtered markers as an SVG map
//   - serve: HTTP host for markers, types and the SVG map
//   - types: list marker types with counts
//
// Every command reads configuration from defaults, an optional --config
// file and SURVEYMAP_* environment variables. --verbose enables debug
// logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"surveymap/internal/config"
	"surveymap/internal/marker"
)

const appName = "surveymap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	v       *viper.Viper
	cfgFile string
	verbose bool
	cfg     config.Config
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Surveymap plots survey markers on a 2D map",
		Long:         `Surveymap loads survey markers (CSV, GeoJSON, KML, TOML, YAML) and shows them on a planar map filtered by marker type and depth, in the terminal, as SVG, or over HTTP.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (toml, yaml or json)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.loadConfig()
	}

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.typesCommand())
	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	level, err := resolveLevel(cfg.Log.Level, c.verbose)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.SetLogLevel(level)
	if c.cfgFile != "" {
		c.Logger.Debug("config loaded", "file", c.cfgFile)
	}
	return nil
}

// loadMarkers reads a marker file and logs a short summary.
func (c *CLI) loadMarkers(path string) ([]marker.Marker, error) {
	p := newProgress(c.Logger)
	markers, err := marker.LoadFile(path)
	if err != nil {
		return nil, err
	}
	store := marker.NewStore(markers)
	if dups := store.DuplicateNames(); len(dups) > 0 {
		c.Logger.Warn("duplicate marker names", "names", dups)
	}
	p.logger.Debug("markers decoded", "count", store.Len(), "types", store.Types())
	p.done("Loaded " + path)
	return markers, nil
}

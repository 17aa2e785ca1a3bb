package cli

import (
	"github.com/spf13/cobra"

	"surveymap/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve markers, types and the SVG map over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markers, err := c.loadMarkers(args[0])
			if err != nil {
				return err
			}
			e := server.New(markers, c.cfg, c.Logger.WithPrefix("http"))
			return server.Run(cmd.Context(), e, c.cfg.Server.Addr, c.Logger)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from server.addr)")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

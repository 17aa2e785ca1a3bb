package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"surveymap/internal/tui"
)

// viewCommand opens the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse markers in the terminal",
		Long:  `Open the interactive viewer. Without a file, pick one from the file explorer (Tab).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := c.Logger.GetLevel()
			logger, closeLog, err := fileLogger(c.cfg.Log.File, level)
			if err != nil {
				return err
			}
			defer closeLog()

			var m tui.Model
			if len(args) == 1 {
				m, err = tui.NewWithPath(args[0], c.cfg, logger)
			} else {
				m, err = tui.New(c.cfg, logger)
			}
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithContext(cmd.Context()),
			).Run()
			return err
		},
	}
	cmd.Flags().String("log-file", "", "write logs to this file while the viewer runs")
	_ = c.v.BindPFlag("log.file", cmd.Flags().Lookup("log-file"))
	return cmd
}

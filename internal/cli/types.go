package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"surveymap/internal/marker"
)

func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types [file]",
		Short: "List marker types with counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markers, err := c.loadMarkers(args[0])
			if err != nil {
				return err
			}
			store := marker.NewStore(markers)
			counts := make(map[string]int)
			store.Each(func(m marker.Marker) { counts[m.Type]++ })

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range store.Types() {
				fmt.Fprintf(w, "%s\t%s\n", t, humanize.Comma(int64(counts[t])))
			}
			return w.Flush()
		},
	}
}

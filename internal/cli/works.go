package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ehsanpg/mazzehabi/internal/server"
	"github.com/ehsanpg/mazzehabi/pkg/logger"
)

func newWorksCommand(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "works",
		Short: "Fetch the works list from the configured source and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			catalog, err := server.NewCatalog(cfg, logger.Discard())
			if err != nil {
				return err
			}
			items, err := catalog.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tIMAGE")
			for _, it := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", it.ID, it.Title, it.Image)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

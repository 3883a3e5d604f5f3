package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newGasesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gases",
		Short: "List the gases of the gas table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := opts.jsonOutput()
			if err != nil {
				return err
			}
			table, err := opts.loadGases()
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(table.All())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GAS\tGROUP\tLEL (%)")
			for _, g := range table.All() {
				fmt.Fprintf(tw, "%s\t%s\t%g\n", g.Name, g.Group, g.LEL)
			}
			return tw.Flush()
		},
	}
}

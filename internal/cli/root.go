package cli

import (
	"fmt"
	"runtime"

	"Atex/internal/gas"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	gasSource string
	output    string
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "zonecalc",
		Short: "ATEX hazardous zone radius calculator",
		Long: `zonecalc estimates the extent of Zone 0, 1 and 2 around a flammable gas
release from the leak rate, ventilation and ambient conditions.

Scenarios can be calculated one at a time or read from a workbook and
exported as a PDF report or an Excel sheet.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.gasSource, "gases", "", "gas table file (.csv or .xlsx); built-in table when empty")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json)")

	rootCmd.AddCommand(newGasesCommand(opts))
	rootCmd.AddCommand(newCalcCommand(opts))
	rootCmd.AddCommand(newReportCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "dev" || version == "" {
				version = "development"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "zonecalc %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}

func (o *globalOptions) loadGases() (*gas.Table, error) {
	if o.gasSource == "" {
		return gas.Embedded()
	}
	return gas.LoadFile(o.gasSource)
}

func (o *globalOptions) jsonOutput() (bool, error) {
	switch o.output {
	case "text":
		return false, nil
	case "json":
		return true, nil
	}
	return false, fmt.Errorf("unknown output format %q", o.output)
}

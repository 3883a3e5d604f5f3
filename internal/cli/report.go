package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"Atex/internal/calc/batch"
	"Atex/internal/calc/importer"
	"Atex/internal/calc/report"
	"Atex/internal/scenario"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	in          string
	pdfPath     string
	xlsxPath    string
	withDiagram bool
	meta        report.Meta
	clock       clockwork.Clock
}

func newReportCommand(opts *globalOptions) *cobra.Command {
	ro := &reportOptions{clock: clockwork.NewRealClock()}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a scenario workbook as a PDF report or Excel sheet",
		Long: `Read scenarios from a workbook and export them with their zone radii.

The first sheet must have a header row followed by one scenario per row with
the columns: name, gas, leak_type, leak_rate, leak_duration, ventilation_rate,
ventilation_type, volume, temperature, pressure, notes.

Examples:
  zonecalc report --in scenarios.xlsx --pdf report.pdf
  zonecalc report --in scenarios.xlsx --xlsx results.xlsx --pdf report.pdf --diagram=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, ro)
		},
	}

	f := cmd.Flags()
	f.StringVar(&ro.in, "in", "", "scenario workbook (.xlsx)")
	f.StringVar(&ro.pdfPath, "pdf", "", "write the PDF report to this path")
	f.StringVar(&ro.xlsxPath, "xlsx", "", "write the results workbook to this path")
	f.BoolVar(&ro.withDiagram, "diagram", true, "append the zone diagram of the first scenario to the PDF")
	f.StringVar(&ro.meta.Title, "title", report.DefaultTitle, "report title")
	f.StringVar(&ro.meta.Project, "project", "", "project name")
	f.StringVar(&ro.meta.Author, "author", "", "author")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runReport(cmd *cobra.Command, opts *globalOptions, ro *reportOptions) error {
	if ro.pdfPath == "" && ro.xlsxPath == "" {
		return errors.New("nothing to do: set --pdf and/or --xlsx")
	}
	table, err := opts.loadGases()
	if err != nil {
		return err
	}

	src, err := os.Open(ro.in)
	if err != nil {
		return err
	}
	defer src.Close()

	scenarios, skipped, err := importer.Parse(src, table)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "row %d skipped: %s\n", s.Row, s.Error)
	}

	var list scenario.List
	for _, sc := range scenarios {
		list.Append(sc)
	}
	rows, err := batch.Calculate(list.Snapshot())
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no valid scenarios to export")
	}

	exp := report.NewExporter(ro.clock)
	if ro.pdfPath != "" {
		err := writeFile(ro.pdfPath, func(w io.Writer) error {
			return exp.WritePDF(w, ro.meta, rows, ro.withDiagram)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "PDF report written to %s\n", ro.pdfPath)
	}
	if ro.xlsxPath != "" {
		if err := writeFile(ro.xlsxPath, func(w io.Writer) error { return exp.WriteXLSX(w, rows) }); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", ro.xlsxPath)
	}
	return nil
}

// writeFile removes a partially written file when write fails.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Atex/internal/calc/batch"
	"Atex/internal/calc/zone"

	"github.com/jonboulle/clockwork"
	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

var (
	ErrRender = errors.New("diagram rendering failed")
	ErrExport = errors.New("report export failed")
)

const DefaultTitle = "ATEX Zone Calculation Report"

// Meta is the report header.
type Meta struct {
	Title   string
	Project string
	Author  string
}

// Field is one "label: value" line of a scenario section. Value keeps the raw
// number for spreadsheets; Text is the display form.
type Field struct {
	Label string
	Value any
	Text  string
}

var leakTypeLabels = map[zone.LeakType]string{
	zone.LeakContinuous: "Continuous",
	zone.LeakPrimary:    "Primary",
	zone.LeakSecondary:  "Secondary",
}

var ventilationLabels = map[zone.VentilationType]string{
	zone.VentilationNatural:    "Natural",
	zone.VentilationMechanical: "Mechanical",
}

// Fields lists every field of a row except the scenario name, which is used
// as the section heading.
func Fields(row batch.Row) []Field {
	sc, res := row.Scenario, row.Result
	num := func(label string, v float64) Field {
		return Field{label, v, strconv.FormatFloat(v, 'f', -1, 64)}
	}
	fixed := func(label string, v float64, prec int) Field {
		return Field{label, v, strconv.FormatFloat(v, 'f', prec, 64)}
	}
	text := func(label, v string) Field { return Field{label, v, v} }

	return []Field{
		text("Gas", sc.Gas.Name),
		text("Gas group", string(sc.Gas.Group)),
		num("LEL (% vol)", sc.Gas.LEL),
		text("Leak type", displayName(leakTypeLabels, sc.LeakType)),
		num("Leak rate (m³/h)", sc.LeakRate),
		num("Leak duration (h)", sc.LeakDuration),
		num("Ventilation rate (m³/h)", sc.VentilationRate),
		text("Ventilation type", displayName(ventilationLabels, sc.VentilationType)),
		num("Volume (m³)", sc.Volume),
		num("Temperature (°C)", sc.Temperature),
		num("Pressure (bar)", sc.Pressure),
		text("Notes", sc.Notes),
		fixed("Zone 0 radius (m)", res.Zone0RadiusM, 2),
		fixed("Zone 1 radius (m)", res.Zone1RadiusM, 2),
		fixed("Zone 2 radius (m)", res.Zone2RadiusM, 2),
		fixed("Dilution factor (D)", res.DilutionFactor, 4),
	}
}

func displayName[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// The core PDF fonts only cover cp1252. Turkish letters outside it fall back
// to their base letter instead of the translator's '.'; ç ö ü are in cp1252.
var cp1252Fallback = strings.NewReplacer(
	"ş", "s", "Ş", "S",
	"ğ", "g", "Ğ", "G",
	"ı", "i", "İ", "I",
)

// translator converts UTF-8 text to the cp1252 bytes the core fonts expect.
func translator(pdf *gofpdf.Fpdf) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return func(s string) string {
		return tr(cp1252Fallback.Replace(s))
	}
}

type Exporter struct {
	Clock clockwork.Clock
}

func NewExporter(clock clockwork.Clock) *Exporter {
	return &Exporter{Clock: clock}
}

// WritePDF renders one section per row. With withDiagram set, the zone
// diagram of the first row is appended on its own page.
func (e *Exporter) WritePDF(w io.Writer, meta Meta, rows []batch.Row, withDiagram bool) error {
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	now := e.Clock.Now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := translator(pdf)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreationDate(now)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(meta.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.CellFormat(0, 6, tr("Project: "+meta.Project), "", 1, "", false, 0, "")
	}
	if meta.Author != "" {
		pdf.CellFormat(0, 6, tr("Author: "+meta.Author), "", 1, "", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Date: "+now.Format("2006-01-02"), "", 1, "", false, 0, "")

	for _, row := range rows {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 10, tr("Scenario: "+row.Scenario.Name), "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, f := range Fields(row) {
			pdf.MultiCell(0, 8, tr(f.Label+": "+f.Text), "", "L", false)
		}
		pdf.Ln(2)
	}

	if withDiagram && len(rows) > 0 {
		pdf.AddPage()
		pageW, _ := pdf.GetPageSize()
		const size = 150.0
		first := rows[0]
		DrawDiagram(pdf, diagramTitle(first.Scenario.Name), first.Result, (pageW-size)/2, 40, size)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

const sheetName = "Scenarios"

// WriteXLSX writes a workbook with one header row and one row per scenario.
func (e *Exporter) WriteXLSX(w io.Writer, rows []batch.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	header := []any{"Scenario"}
	for _, fl := range Fields(batch.Row{}) {
		header = append(header, fl.Label)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	for i, row := range rows {
		values := []any{row.Scenario.Name}
		for _, fl := range Fields(row) {
			values = append(values, fl.Value)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

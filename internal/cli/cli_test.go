package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Atex/internal/calc/importer"
	"Atex/internal/calc/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("test", "abc123", "today")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGasesCommand(t *testing.T) {
	out, _, err := execute(t, "gases")
	require.NoError(t, err)
	assert.Contains(t, out, "GAS")
	assert.Contains(t, out, "Hydrogen")
	assert.Contains(t, out, "IIC")
}

func TestGasesCommand_CustomTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.csv")
	require.NoError(t, os.WriteFile(path, []byte("isim,grup,LEL\nSite gas,IIB,1.5\n"), 0o600))

	out, _, err := execute(t, "gases", "--gases", path, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Site gas"`)
	assert.NotContains(t, out, "Methane")
}

func TestCalcCommand(t *testing.T) {
	out, _, err := execute(t, "calc", "--gas", "Hydrogen", "--leak-type", "secondary",
		"--leak-rate", "50", "--ventilation-rate", "10", "--ventilation-type", "mechanical",
		"--volume", "5", "--temperature", "45", "--pressure", "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Zone 0 radius:   0.00 m")
	assert.Contains(t, out, "Zone 1 radius:   3.88 m")
	assert.Contains(t, out, "Zone 2 radius:   5.54 m")
	assert.Contains(t, out, "Dilution factor: 5.0000")
}

func TestCalcCommand_JSON(t *testing.T) {
	out, _, err := execute(t, "calc", "--gas", "Methane", "--leak-rate", "10", "--ventilation-rate", "100", "-o", "json")
	require.NoError(t, err)

	var resp zone.CalcResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Methane", resp.Scenario.Gas.Name)
	assert.Equal(t, 0.1, resp.Result.DilutionFactor)
	assert.Equal(t, 1.0, resp.Result.Zone2RadiusM)
}

func TestCalcCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "calc", "--gas", "Unobtainium", "--leak-rate", "10", "--ventilation-rate", "100")
	assert.ErrorContains(t, err, "Unobtainium")

	_, _, err = execute(t, "calc", "--gas", "Methane", "--leak-rate", "10", "--ventilation-rate", "100", "--pressure", "3")
	assert.ErrorIs(t, err, zone.ErrInvalidInput)

	_, _, err = execute(t, "calc", "--gas", "Methane")
	assert.Error(t, err)

	_, _, err = execute(t, "calc", "--gas", "Methane", "--leak-rate", "10", "--ventilation-rate", "100", "-o", "yaml")
	assert.ErrorContains(t, err, "yaml")
}

func writeWorkbook(t *testing.T, path string, rows ...[]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(importer.Columns))
	for i, c := range importer.Columns {
		header[i] = c
	}
	sheet := f.GetSheetName(0)
	for i, row := range append([][]any{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xlsx")
	writeWorkbook(t, in,
		[]any{"", "Methane", "continuous", 10, 1, 100, "natural", 100, 20, 1},
		[]any{"bad", "Methane", "continuous", 10, 1, 100, "natural", 100, 20, 9},
		[]any{"Compressor", "Hydrogen", "secondary", 50, 2, 10, "mechanical", 5, 45, 1.5},
	)
	pdfPath := filepath.Join(dir, "out.pdf")
	xlsxPath := filepath.Join(dir, "out.xlsx")

	out, errOut, err := execute(t, "report", "--in", in, "--pdf", pdfPath, "--xlsx", xlsxPath, "--project", "Plant 3")
	require.NoError(t, err)
	assert.Contains(t, out, pdfPath)
	assert.Contains(t, errOut, "row 3 skipped")

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Scenarios")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Scenario 1", rows[1][0])
	assert.Equal(t, "Compressor", rows[2][0])
}

func TestReportCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xlsx")
	writeWorkbook(t, in, []any{"bad", "Methane", "continuous", 10, 1, 100, "natural", 100, 20, 9})

	_, _, err := execute(t, "report", "--in", in)
	assert.ErrorContains(t, err, "nothing to do")

	pdfPath := filepath.Join(dir, "out.pdf")
	_, _, err = execute(t, "report", "--in", in, "--pdf", pdfPath)
	assert.ErrorContains(t, err, "no valid scenarios")
	assert.NoFileExists(t, pdfPath)

	_, _, err = execute(t, "report", "--in", filepath.Join(dir, "missing.xlsx"), "--pdf", pdfPath)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "zonecalc test (abc123)"))
}

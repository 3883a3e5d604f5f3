package gas

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestEmbedded(t *testing.T) {
	table, err := Embedded()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 10)

	methane, err := table.Resolve("Methane")
	require.NoError(t, err)
	assert.Equal(t, GroupIIA, methane.Group)
	assert.Equal(t, 4.4, methane.LEL)

	hydrogen, err := table.Resolve("Hydrogen")
	require.NoError(t, err)
	assert.Equal(t, GroupIIC, hydrogen.Group)

	for _, p := range table.All() {
		assert.Greater(t, p.LEL, 0.0, p.Name)
	}
}

func TestResolve_NotFound(t *testing.T) {
	table, err := Embedded()
	require.NoError(t, err)

	_, err = table.Resolve("Unobtainium")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Unobtainium")

	_, err = table.Resolve("methane")
	assert.ErrorIs(t, err, ErrNotFound, "lookup is exact")
}

func TestNamesKeepTableOrder(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("isim,grup,LEL\nB,IIB,2\nA,IIA,5\nC,IIC,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, table.Names())
}

func TestLoadCSV_HeaderOrderAndCase(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("lel, ISIM, Grup\n1.5, Propane, IIA\n"))
	require.NoError(t, err)

	p, err := table.Resolve("Propane")
	require.NoError(t, err)
	assert.Equal(t, Property{Name: "Propane", Group: GroupIIA, LEL: 1.5}, p)
}

func TestLoadCSV_Invalid(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing column", "isim,grup\nMethane,IIA\n"},
		{"unknown group", "isim,grup,LEL\nMethane,IID,4.4\n"},
		{"zero LEL", "isim,grup,LEL\nMethane,IIA,0\n"},
		{"negative LEL", "isim,grup,LEL\nMethane,IIA,-1\n"},
		{"bad LEL", "isim,grup,LEL\nMethane,IIA,abc\n"},
		{"duplicate name", "isim,grup,LEL\nMethane,IIA,4.4\nMethane,IIA,5\n"},
		{"header only", "isim,grup,LEL\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tc.csv))
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"isim", "grup", "LEL"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Hydrogen", "IIC", 4.0}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Ethylene", "IIB", 2.3}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := LoadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hydrogen", "Ethylene"}, table.Names())

	ethylene, err := table.Resolve("Ethylene")
	require.NoError(t, err)
	assert.Equal(t, GroupIIB, ethylene.Group)
	assert.Equal(t, 2.3, ethylene.LEL)
}

func TestLoadXLSX_FormattedNumbers(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"isim", "grup", "LEL"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Acetylene", "IIC", 1.4}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Heavy", "IIA", 1200.5}))
	integer, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	require.NoError(t, err)
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", integer))
	require.NoError(t, f.SetCellStyle(sheet, "C3", "C3", thousands))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := LoadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	acetylene, err := table.Resolve("Acetylene")
	require.NoError(t, err)
	assert.Equal(t, 1.4, acetylene.LEL)
	heavy, err := table.Resolve("Heavy")
	require.NoError(t, err)
	assert.Equal(t, 1200.5, heavy.LEL)
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup(" IIB ")
	require.NoError(t, err)
	assert.Equal(t, GroupIIB, g)

	_, err = ParseGroup("iib")
	assert.Error(t, err)
}

func TestAllReturnsCopy(t *testing.T) {
	table, err := NewTable([]Property{{Name: "X", Group: GroupIIA, LEL: 3}})
	require.NoError(t, err)

	all := table.All()
	all[0].LEL = 99

	p, err := table.Resolve("X")
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.LEL)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "gases.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("isim,grup,LEL\nPropane,IIA,2.1\n"), 0o600))

	table, err := LoadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Propane"}, table.Names())

	_, err = LoadFile(filepath.Join(dir, "gases.json"))
	assert.Error(t, err)

	txt := filepath.Join(dir, "gases.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))
	_, err = LoadFile(txt)
	assert.ErrorIs(t, err, ErrInvalidTable)
}

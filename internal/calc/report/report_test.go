package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"Atex/internal/calc/batch"
	"Atex/internal/calc/zone"
	"Atex/internal/gas"

	"github.com/jonboulle/clockwork"
	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var reportDate = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func sampleRows(t *testing.T, n int) []batch.Row {
	t.Helper()
	scenarios := make([]zone.Scenario, n)
	for i := range scenarios {
		scenarios[i] = zone.Scenario{
			Name:            fmt.Sprintf("Scenario %d", i+1),
			Gas:             gas.Property{Name: "Hydrogen", Group: gas.GroupIIC, LEL: 4},
			LeakType:        zone.LeakContinuous,
			LeakRate:        50,
			LeakDuration:    2,
			VentilationRate: 10,
			VentilationType: zone.VentilationMechanical,
			Volume:          100,
			Temperature:     20,
			Pressure:        1,
			Notes:           "valve flange",
		}
	}
	rows, err := batch.Calculate(scenarios)
	require.NoError(t, err)
	return rows
}

func TestFields(t *testing.T) {
	fields := Fields(sampleRows(t, 1)[0])

	text := map[string]string{}
	for _, f := range fields {
		text[f.Label] = f.Text
	}
	assert.Len(t, text, 16)
	assert.NotContains(t, text, "Scenario", "name is the heading, not a field")
	assert.Equal(t, "Hydrogen", text["Gas"])
	assert.Equal(t, "IIC", text["Gas group"])
	assert.Equal(t, "Continuous", text["Leak type"])
	assert.Equal(t, "Mechanical", text["Ventilation type"])
	assert.Equal(t, "50", text["Leak rate (m³/h)"])
	assert.Equal(t, "valve flange", text["Notes"])
	assert.Equal(t, "1.80", text["Zone 0 radius (m)"])
	assert.Equal(t, "4.20", text["Zone 1 radius (m)"])
	assert.Equal(t, "6.00", text["Zone 2 radius (m)"])
	assert.Equal(t, "5.0000", text["Dilution factor (D)"])
}

func TestWritePDF(t *testing.T) {
	e := NewExporter(clockwork.NewFakeClockAt(reportDate))

	var buf bytes.Buffer
	require.NoError(t, e.WritePDF(&buf, Meta{Project: "Tank farm", Author: "QA"}, sampleRows(t, 2), true))

	out := buf.String()
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out, "D:20260315")
}

func TestTranslator_TurkishText(t *testing.T) {
	tr := translator(gofpdf.New("P", "mm", "A4", ""))

	assert.Equal(t, "Sise dolum Igne vanasi", tr("Şişe dolum İğne vanası"))
	assert.Equal(t, "G\xfcnes \xc7a\xf6", tr("Güneş Çaö"), "cp1252 letters are kept")
}

func TestWritePDF_Paginates(t *testing.T) {
	e := NewExporter(clockwork.NewFakeClockAt(reportDate))

	var buf bytes.Buffer
	require.NoError(t, e.WritePDF(&buf, Meta{}, sampleRows(t, 12), false))

	m := regexp.MustCompile(`/Count (\d+)`).FindStringSubmatch(buf.String())
	require.Len(t, m, 2)
	pages, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	assert.Greater(t, pages, 2)
}

func TestWriteXLSX(t *testing.T) {
	e := NewExporter(clockwork.NewFakeClockAt(reportDate))

	var buf bytes.Buffer
	require.NoError(t, e.WriteXLSX(&buf, sampleRows(t, 2)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "Gas", rows[0][1])
	assert.Equal(t, "Dilution factor (D)", rows[0][len(rows[0])-1])
	assert.Equal(t, "Scenario 2", rows[2][0])
	assert.Equal(t, "Hydrogen", rows[2][1])
	assert.Equal(t, "6", rows[2][15])
	assert.Equal(t, "5", rows[2][16])
}

func TestWriteXLSX_HeaderOnlyWhenEmpty(t *testing.T) {
	e := NewExporter(clockwork.NewFakeClockAt(reportDate))

	var buf bytes.Buffer
	require.NoError(t, e.WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

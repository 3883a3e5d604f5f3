package report

import (
	"bytes"
	"testing"

	"Atex/internal/calc/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscs_LargestFirst(t *testing.T) {
	discs := Discs(zone.Result{Zone0RadiusM: 0.3, Zone1RadiusM: 0.7, Zone2RadiusM: 1})

	require.Len(t, discs, 3)
	assert.Equal(t, []string{"Zone 2", "Zone 1", "Zone 0"}, []string{discs[0].Label, discs[1].Label, discs[2].Label})
	assert.Equal(t, Zone2Color, discs[0].Color)
	assert.Equal(t, Zone1Color, discs[1].Color)
	assert.Equal(t, Zone0Color, discs[2].Color)
	assert.GreaterOrEqual(t, discs[0].Radius, discs[1].Radius)
	assert.GreaterOrEqual(t, discs[1].Radius, discs[2].Radius)
}

func TestDiscs_SkipsZeroRadius(t *testing.T) {
	discs := Discs(zone.Result{Zone1RadiusM: 3.88, Zone2RadiusM: 5.54})
	require.Len(t, discs, 2)
	assert.Equal(t, "Zone 1", discs[1].Label)

	assert.Empty(t, Discs(zone.Result{}))
}

func TestAxisLimit(t *testing.T) {
	assert.InDelta(t, 6.54, AxisLimit(zone.Result{Zone2RadiusM: 5.54}), 1e-9)
	assert.Equal(t, 1.0, AxisLimit(zone.Result{}))
}

func TestTicks(t *testing.T) {
	assert.Equal(t, []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2}, Ticks(2))
	assert.Equal(t, []float64{-6, -4, -2, 0, 2, 4, 6}, Ticks(6.54))

	ticks := Ticks(13.2)
	assert.Equal(t, []float64{-10, -5, 0, 5, 10}, ticks)
	assert.LessOrEqual(t, len(Ticks(1)), 11)
}

func TestWriteDiagramPDF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDiagramPDF(&buf, "Scenario 1", zone.Result{Zone0RadiusM: 0.3, Zone1RadiusM: 0.7, Zone2RadiusM: 1})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteDiagramPDF_NoZones(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiagramPDF(&buf, "empty", zone.Result{}))
	assert.NotZero(t, buf.Len())
}

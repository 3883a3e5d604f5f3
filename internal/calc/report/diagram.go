package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"Atex/internal/calc/zone"

	"github.com/phpdave11/gofpdf"
)

type Color struct{ R, G, B int }

var (
	Zone2Color = Color{0xFF, 0xD7, 0x00} // amber
	Zone1Color = Color{0xFF, 0x8C, 0x00} // orange
	Zone0Color = Color{0xFF, 0x00, 0x00} // red
)

const discOpacity = 0.3

// Disc is one filled zone circle centred on the leak source.
type Disc struct {
	Label  string
	Radius float64
	Color  Color
}

// Discs returns the zones in drawing order, largest first, so smaller zones
// end up on top. Zero radius zones are left out.
func Discs(res zone.Result) []Disc {
	all := []Disc{
		{"Zone 2", res.Zone2RadiusM, Zone2Color},
		{"Zone 1", res.Zone1RadiusM, Zone1Color},
		{"Zone 0", res.Zone0RadiusM, Zone0Color},
	}
	out := make([]Disc, 0, len(all))
	for _, d := range all {
		if d.Radius > 0 {
			out = append(out, d)
		}
	}
	return out
}

// AxisLimit is the half-width of both axes in metres.
func AxisLimit(res zone.Result) float64 {
	return res.Zone2RadiusM + 1
}

var tickSteps = []float64{0.25, 0.5, 1, 2, 5, 10, 20, 50}

// Ticks returns axis tick positions in metres for the range [-limit, limit],
// at most ten intervals.
func Ticks(limit float64) []float64 {
	step := tickSteps[len(tickSteps)-1]
	for _, s := range tickSteps {
		if 2*limit/s <= 10 {
			step = s
			break
		}
	}
	first := int(math.Ceil(-limit/step - 1e-9))
	last := int(math.Floor(limit/step + 1e-9))
	ticks := make([]float64, 0, last-first+1)
	for n := first; n <= last; n++ {
		ticks = append(ticks, float64(n)*step)
	}
	return ticks
}

// DrawDiagram draws the zone plot into a size x size millimetre square whose
// top-left corner is (x, y). Both axes share one scale.
func DrawDiagram(pdf *gofpdf.Fpdf, title string, res zone.Result, x, y, size float64) {
	tr := translator(pdf)
	limit := AxisLimit(res)
	scale := size / (2 * limit)
	cx, cy := x+size/2, y+size/2

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y-12)
	pdf.CellFormat(size, 6, tr(title), "", 0, "C", false, 0, "")

	// grid
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(220, 220, 220)
	ticks := Ticks(limit)
	for _, v := range ticks {
		pdf.Line(cx+v*scale, y, cx+v*scale, y+size)
		pdf.Line(x, cy-v*scale, x+size, cy-v*scale)
	}

	pdf.SetAlpha(discOpacity, "Normal")
	for _, d := range Discs(res) {
		pdf.SetFillColor(d.Color.R, d.Color.G, d.Color.B)
		pdf.Circle(cx, cy, d.Radius*scale, "F")
	}
	pdf.SetAlpha(1, "Normal")

	// frame and tick labels
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, size, size, "D")
	pdf.SetFont("Helvetica", "", 7)
	for _, v := range ticks {
		label := strconv.FormatFloat(v, 'f', -1, 64)
		px := cx + v*scale
		pdf.Line(px, y+size, px, y+size+1.5)
		pdf.Text(px-pdf.GetStringWidth(label)/2, y+size+4.5, label)

		py := cy - v*scale
		pdf.Line(x-1.5, py, x, py)
		pdf.Text(x-2.5-pdf.GetStringWidth(label), py+1, label)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(x, y+size+6)
	pdf.CellFormat(size, 5, "Metre", "", 0, "C", false, 0, "")
	pdf.TransformBegin()
	pdf.TransformRotate(90, x-11, cy)
	pdf.Text(x-11-pdf.GetStringWidth("Metre")/2, cy, "Metre")
	pdf.TransformEnd()

	drawLegend(pdf, res, x+size-32, y+3)
}

func drawLegend(pdf *gofpdf.Fpdf, res zone.Result, x, y float64) {
	discs := Discs(res)
	if len(discs) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, 30, float64(len(discs))*5+2, "FD")
	for i, d := range discs {
		row := y + 1 + float64(i)*5
		pdf.SetAlpha(discOpacity, "Normal")
		pdf.SetFillColor(d.Color.R, d.Color.G, d.Color.B)
		pdf.Rect(x+2, row+0.8, 4, 3.4, "F")
		pdf.SetAlpha(1, "Normal")
		pdf.Text(x+8, row+3.6, fmt.Sprintf("%s  %.2f m", d.Label, d.Radius))
	}
}

// WriteDiagramPDF renders a single-page diagram document for one scenario.
func WriteDiagramPDF(w io.Writer, name string, res zone.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Zone diagram: "+name, true)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	const size = 150.0
	DrawDiagram(pdf, diagramTitle(name), res, (pageW-size)/2, 40, size)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func diagramTitle(name string) string {
	return "Hazardous area boundaries (Zone 0/1/2) - " + name
}

package chart

import (
	"fmt"
	"io"

	"doegen/domain/design"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PairPlotter draws a k x k grid: histograms on the diagonal and scatter
// plots of every factor pair elsewhere, under a common title.
type PairPlotter struct {
	Palette   Palette
	PanelSize vg.Length
	Bins      int
}

// NewPairPlotter creates a PNG scatter matrix renderer
func NewPairPlotter(palette string) *PairPlotter {
	return &PairPlotter{
		Palette:   LookupPalette(palette),
		PanelSize: 2.5 * vg.Inch,
		Bins:      10,
	}
}

// ContentType returns the PNG mime type
func (p *PairPlotter) ContentType() string { return "image/png" }

// Render writes the scatter matrix as PNG
func (p *PairPlotter) Render(w io.Writer, table *design.Table, title string) error {
	if !table.Numeric() {
		return fmt.Errorf("scatter matrix needs a sampled table")
	}
	k := len(table.Columns)
	if k == 0 || table.Len() == 0 {
		return fmt.Errorf("scatter matrix needs at least one factor and one row")
	}

	columns := make([][]float64, k)
	for j := range columns {
		columns[j] = table.Column(j)
	}

	plots := make([][]*plot.Plot, k)
	for r := 0; r < k; r++ {
		plots[r] = make([]*plot.Plot, k)
		for c := 0; c < k; c++ {
			panel, err := p.panel(columns[c], columns[r], r == c)
			if err != nil {
				return fmt.Errorf("panel %s/%s: %w", table.Columns[r], table.Columns[c], err)
			}
			if r == k-1 {
				panel.X.Label.Text = table.Columns[c]
			}
			if c == 0 {
				panel.Y.Label.Text = table.Columns[r]
			}
			plots[r][c] = panel
		}
	}

	titleHeight := vg.Points(28)
	img := vgimg.New(vg.Length(k)*p.PanelSize, vg.Length(k)*p.PanelSize+titleHeight)
	dc := draw.New(img)

	titleStyle := plot.New().Title.TextStyle
	titleStyle.Font.Size = vg.Points(16)
	titleStyle.XAlign = text.XCenter
	titleStyle.YAlign = text.YTop
	dc.FillText(titleStyle, vg.Point{X: dc.Center().X, Y: dc.Max.Y - vg.Points(4)}, title)

	grid := draw.Crop(dc, 0, 0, 0, -titleHeight)
	tiles := draw.Tiles{
		Rows: k,
		Cols: k,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, grid)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// panel builds one grid cell; degenerate columns (all values equal) leave
// the cell empty
func (p *PairPlotter) panel(x, y []float64, diagonal bool) (*plot.Plot, error) {
	panel := plot.New()
	if floats.Max(x) == floats.Min(x) {
		return panel, nil
	}

	if diagonal {
		hist, err := plotter.NewHist(plotter.Values(x), p.Bins)
		if err != nil {
			return nil, err
		}
		hist.FillColor = p.Palette.Bar()
		hist.LineStyle.Width = vg.Points(0.5)
		panel.Add(hist)
		return panel, nil
	}

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = p.Palette.Marker()
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	panel.Add(scatter)
	return panel, nil
}

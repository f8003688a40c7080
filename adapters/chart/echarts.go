package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"

	"doegen/domain/design"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EChartsPlotter renders the scatter matrix as an HTML page of small charts,
// one per ordered factor pair, with histograms for the diagonal.
type EChartsPlotter struct {
	Palette    Palette
	AssetsHost string
	PanelSize  string
	Bins       int
}

// NewEChartsPlotter creates an interactive scatter matrix renderer
func NewEChartsPlotter(palette, assetsHost string) *EChartsPlotter {
	return &EChartsPlotter{
		Palette:    LookupPalette(palette),
		AssetsHost: assetsHost,
		PanelSize:  "320px",
		Bins:       10,
	}
}

// ContentType returns the HTML mime type
func (e *EChartsPlotter) ContentType() string { return "text/html; charset=utf-8" }

// Render writes a complete HTML page
func (e *EChartsPlotter) Render(w io.Writer, table *design.Table, title string) error {
	if !table.Numeric() {
		return fmt.Errorf("scatter matrix needs a sampled table")
	}
	k := len(table.Columns)
	columns := make([][]float64, k)
	for j := range columns {
		columns[j] = table.Column(j)
	}

	page := components.NewPage()
	page.PageTitle = title
	if e.AssetsHost != "" {
		page.SetAssetsHost(e.AssetsHost)
	}
	page.SetLayout(components.PageFlexLayout)

	for r := 0; r < k; r++ {
		for c := 0; c < k; c++ {
			if r == c {
				page.AddCharts(e.histogram(table.Columns[r], columns[r]))
				continue
			}
			page.AddCharts(e.scatter(table.Columns[c], table.Columns[r], columns[c], columns[r]))
		}
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (e *EChartsPlotter) init() opts.Initialization {
	return opts.Initialization{Width: e.PanelSize, Height: e.PanelSize, AssetsHost: e.AssetsHost}
}

func (e *EChartsPlotter) scatter(xName, yName string, x, y []float64) *charts.Scatter {
	data := make([]opts.ScatterData, len(x))
	for i := range x {
		data[i] = opts.ScatterData{Value: []interface{}{x[i], y[i]}}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(e.init()),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s vs %s", yName, xName)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Min: "dataMin", Max: "dataMax", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Min: "dataMin", Max: "dataMax", NameLocation: "middle", NameGap: 40}),
	)
	scatter.AddSeries(yName, data,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: Hex(e.Palette.Marker())}),
	)
	return scatter
}

func (e *EChartsPlotter) histogram(name string, values []float64) *charts.Bar {
	labels, counts := Histogram(values, e.Bins)
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		data[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(e.init()),
		charts.WithTitleOpts(opts.Title{Title: name}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries(name, data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: Hex(e.Palette.Bar())}),
	)
	return bar
}

// Histogram bins values into equal-width bins spanning their range and
// returns bin-centre labels with counts
func Histogram(values []float64, bins int) ([]string, []float64) {
	if len(values) == 0 || bins < 1 {
		return nil, nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []string{design.FormatFloat(lo)}, []float64{float64(len(values))}
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// the last divider is exclusive in stat.Histogram
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.4g", (dividers[i]+dividers[i+1])/2)
	}
	return labels, counts
}

package app

import (
	"math"

	"doegen/domain/design"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary describes one sampled factor
type ColumnSummary struct {
	Name   string  `json:"name"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// TableSummary describes a sampled table. Correlation is the Pearson matrix
// between factors; a good space-filling design keeps it near the identity.
type TableSummary struct {
	Rows              int             `json:"rows"`
	Columns           []ColumnSummary `json:"columns"`
	Correlation       [][]float64     `json:"correlation"`
	MaxAbsCorrelation float64         `json:"max_abs_correlation"`
}

// Summarize computes column statistics for sampled tables; level tables only
// report their row count.
func Summarize(table *design.Table) *TableSummary {
	summary := &TableSummary{Rows: table.Len()}
	if !table.Numeric() || table.Len() == 0 {
		return summary
	}

	k := len(table.Columns)
	columns := make([][]float64, k)
	for j := range columns {
		columns[j] = table.Column(j)

		data := stats.Float64Data(columns[j])
		min, _ := data.Min()
		max, _ := data.Max()
		mean, _ := data.Mean()
		median, _ := data.Median()
		stdDev, _ := data.StandardDeviation()
		summary.Columns = append(summary.Columns, ColumnSummary{
			Name:   table.Columns[j],
			Min:    min,
			Max:    max,
			Mean:   mean,
			Median: median,
			StdDev: stdDev,
		})
	}

	summary.Correlation = make([][]float64, k)
	for a := 0; a < k; a++ {
		summary.Correlation[a] = make([]float64, k)
		for b := 0; b < k; b++ {
			if a == b {
				summary.Correlation[a][b] = 1
				continue
			}
			r := stat.Correlation(columns[a], columns[b], nil)
			if math.IsNaN(r) {
				r = 0
			}
			summary.Correlation[a][b] = r
			if math.Abs(r) > summary.MaxAbsCorrelation {
				summary.MaxAbsCorrelation = math.Abs(r)
			}
		}
	}
	return summary
}

package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"doegen/domain/design"
	"doegen/ports"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// CSVExporter writes a header row of factor names followed by one line per
// design point, without an index column
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (e *CSVExporter) Format() string      { return "csv" }
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }
func (e *CSVExporter) Extension() string   { return ".csv" }

// Export writes the table as CSV
func (e *CSVExporter) Export(w io.Writer, table *design.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(table.Records()); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// XLSXExporter writes the table to a single sheet workbook. Sampled values
// are stored as numbers, levels as text.
type XLSXExporter struct {
	config Config
}

// NewXLSXExporter creates an XLSX exporter
func NewXLSXExporter(config Config) *XLSXExporter {
	if config.Sheet == "" {
		config.Sheet = DefaultConfig().Sheet
	}
	return &XLSXExporter{config: config}
}

func (e *XLSXExporter) Format() string { return "xlsx" }
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (e *XLSXExporter) Extension() string { return ".xlsx" }

// Export writes the table as an XLSX workbook
func (e *XLSXExporter) Export(w io.Writer, table *design.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.config.Sheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	if e.config.Title != "" || e.config.Creator != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: e.config.Title, Creator: e.config.Creator}); err != nil {
			return err
		}
	}

	// Header row
	for j, h := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows
	for i := 0; i < table.Len(); i++ {
		for j := range table.Columns {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			var v interface{} = table.Cell(i, j)
			if table.Numeric() {
				v = table.Values.At(i, j)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}

// Exporters returns the built-in exporters keyed by format
func Exporters(config Config) map[string]ports.TableExporter {
	csvExp := NewCSVExporter()
	xlsxExp := NewXLSXExporter(config)
	return map[string]ports.TableExporter{
		csvExp.Format():  csvExp,
		xlsxExp.Format(): xlsxExp,
	}
}

// WriteFile exports the table to path
func WriteFile(path string, exporter ports.TableExporter, table *design.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := exporter.Export(file, table); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Printf("[Export] Wrote %s (%d rows, %s)", path, table.Len(), exporter.Format())
	return nil
}

// Target pairs an output path with its exporter
type Target struct {
	Path     string
	Exporter ports.TableExporter
}

// WriteAll writes every target concurrently and returns the first failure
func WriteAll(ctx context.Context, table *design.Table, targets ...Target) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return WriteFile(target.Path, target.Exporter, table)
		})
	}
	return g.Wait()
}

package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doegen/app"
	"doegen/domain/design"
	"doegen/internal/config"
	"doegen/internal/container"

	"github.com/xuri/excelize/v2"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	Config    *config.Config
	Container *container.Container
}

// NewTestKit creates a test kit from the default configuration. The process
// environment is ignored so tests do not depend on a developer's .env.
func NewTestKit() (*TestKit, error) {
	return NewTestKitWithConfig(config.Default())
}

// NewTestKitWithConfig creates a test kit from an explicit configuration
func NewTestKitWithConfig(cfg *config.Config) (*TestKit, error) {
	c, err := container.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build container: %w", err)
	}
	return &TestKit{Config: cfg, Container: c}, nil
}

// DesignService returns the container's design service
func (t *TestKit) DesignService() *app.DesignService {
	return t.Container.DesignService
}

// DOEFactors is the two factor, two level fixture: A in {1,2}, B in {x,y}
func DOEFactors() []design.Factor {
	return []design.Factor{
		{Name: "A", Levels: []string{"1", "2"}},
		{Name: "B", Levels: []string{"x", "y"}},
	}
}

// LHSFactors is the two factor range fixture
func LHSFactors() []design.Factor {
	return []design.Factor{
		{Name: "height", Bounds: design.Bounds{Min: 50, Max: 200}},
		{Name: "width", Bounds: design.Bounds{Min: 0, Max: 1}},
	}
}

// WriteFactorSheet writes factors as a factor definition sheet in the layout
// the excel reader expects. The extension of path picks CSV or XLSX.
func WriteFactorSheet(path string, mode design.Mode, factors []design.Factor) error {
	rows := factorSheetRows(mode, factors)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f := excelize.NewFile()
		defer f.Close()
		for i, row := range rows {
			for j, v := range row {
				cell, err := excelize.CoordinatesToCellName(j+1, i+1)
				if err != nil {
					return err
				}
				if err := f.SetCellValue("Sheet1", cell, v); err != nil {
					return err
				}
			}
		}
		return f.SaveAs(path)
	case ".csv":
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		w := csv.NewWriter(out)
		if err := w.WriteAll(rows); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	default:
		return fmt.Errorf("unsupported factor sheet %s", path)
	}
}

func factorSheetRows(mode design.Mode, factors []design.Factor) [][]string {
	if mode == design.ModeDOE {
		rows := [][]string{{"name", "values"}}
		for _, f := range factors {
			rows = append(rows, []string{f.Name, strings.Join(f.Levels, ",")})
		}
		return rows
	}
	rows := [][]string{{"name", "min", "max"}}
	for _, f := range factors {
		rows = append(rows, []string{f.Name, design.FormatFloat(f.Bounds.Min), design.FormatFloat(f.Bounds.Max)})
	}
	return rows
}

package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doegen/domain/core"
	"doegen/domain/design"

	"github.com/xuri/excelize/v2"
)

// Factor sheet headers. A DOE sheet has name + values (levels comma
// separated inside the cell); an LHS sheet has name + min + max.
const (
	HeaderName   = "name"
	HeaderValues = "values"
	HeaderMin    = "min"
	HeaderMax    = "max"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   Config
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath, fileType: FileType(filePath), config: DefaultConfig()}
}

// FileType infers "csv" or "xlsx" from a file name
func FileType(name string) string {
	if strings.ToLower(filepath.Ext(name)) == ".csv" {
		return "csv"
	}
	return "xlsx"
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*SheetData, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", strings.ToUpper(r.fileType), err)
	}
	defer file.Close()

	return r.ReadFrom(file)
}

// ReadFrom reads sheet data from an already open stream
func (r *DataReader) ReadFrom(src io.Reader) (*SheetData, error) {
	switch r.fileType {
	case "csv":
		return r.readCSVData(src)
	case "xlsx":
		return r.readExcelData(src)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelData reads the configured sheet into structured format
func (r *DataReader) readExcelData(src io.Reader) (*SheetData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.config.Sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", r.config.Sheet,
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData(src io.Reader) (*SheetData, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read (%d rows)", len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

// processRows converts raw string rows into SheetData format
func (r *DataReader) processRows(rows [][]string) (*SheetData, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		rowData := make(RawRowData)
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &SheetData{Headers: headers, Rows: dataRows}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// FactorsFromSheet turns a factor definition sheet into factors for mode
func FactorsFromSheet(data *SheetData, mode design.Mode) ([]design.Factor, error) {
	names := data.Column(HeaderName)

	var factors []design.Factor
	var err error
	switch mode {
	case design.ModeDOE:
		if !data.HasHeaders(HeaderName, HeaderValues) {
			return nil, fmt.Errorf("%w: DOE factor sheet needs %q and %q columns",
				core.ErrInvalidInput, HeaderName, HeaderValues)
		}
		factors, err = design.BuildDOEFactors(names, data.Column(HeaderValues))
	case design.ModeLHS:
		if !data.HasHeaders(HeaderName, HeaderMin, HeaderMax) {
			return nil, fmt.Errorf("%w: LHS factor sheet needs %q, %q and %q columns",
				core.ErrInvalidInput, HeaderName, HeaderMin, HeaderMax)
		}
		mins, maxs := data.Column(HeaderMin), data.Column(HeaderMax)
		bounds := make([]string, len(names))
		for i := range names {
			bounds[i] = mins[i] + "," + maxs[i]
		}
		factors, err = design.BuildLHSFactors(names, bounds)
	default:
		return nil, fmt.Errorf("%w: mode %q", core.ErrInvalidInput, mode)
	}
	if err != nil {
		return nil, err
	}
	if err := design.ValidateNames(factors); err != nil {
		return nil, err
	}
	return factors, nil
}

// ReadFactors loads a factor definition file for the given mode
func ReadFactors(path string, mode design.Mode) ([]design.Factor, error) {
	data, err := NewDataReader(path).ReadData()
	if err != nil {
		return nil, err
	}
	return FactorsFromSheet(data, mode)
}

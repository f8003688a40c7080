package excel

// RawRowData represents a row of raw sheet data as header -> cell pairs
type RawRowData map[string]string

// SheetData represents a complete sheet read from CSV or XLSX
type SheetData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// Column returns the cells of one column in row order
func (d *SheetData) Column(header string) []string {
	out := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[header]
	}
	return out
}

// HasHeaders reports whether every named header is present
func (d *SheetData) HasHeaders(headers ...string) bool {
	present := make(map[string]bool, len(d.Headers))
	for _, h := range d.Headers {
		present[h] = true
	}
	for _, h := range headers {
		if !present[h] {
			return false
		}
	}
	return true
}

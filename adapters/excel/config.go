package excel

// Config holds spreadsheet settings shared by readers and writers
type Config struct {
	Sheet string `json:"sheet"`
	// Title and Creator are written to XLSX document properties
	Title   string `json:"title"`
	Creator string `json:"creator"`
}

// DefaultConfig returns the defaults: everything lives on Sheet1
func DefaultConfig() Config {
	return Config{
		Sheet:   "Sheet1",
		Creator: "doegen",
	}
}

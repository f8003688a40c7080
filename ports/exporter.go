package ports

import (
	"io"

	"doegen/domain/design"
)

// TableExporter serializes a design table into a downloadable file format
type TableExporter interface {
	// Format is the short name used in query strings ("csv", "xlsx")
	Format() string
	ContentType() string
	Extension() string
	Export(w io.Writer, table *design.Table) error
}

package ports

import (
	"io"

	"doegen/domain/design"
)

// MatrixPlotter renders a pairwise scatter matrix of a sampled table
type MatrixPlotter interface {
	ContentType() string
	Render(w io.Writer, table *design.Table, title string) error
}

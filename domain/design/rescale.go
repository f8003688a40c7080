package design

import (
	"doegen/domain/core"

	"gonum.org/v1/gonum/mat"
)

// Rescale maps a unit-interval matrix into per-factor bounds. Row i of unit
// belongs to bounds[i]; each element becomes (max-min)*v + min. Values that
// stray outside [0,1] are mapped as they are, without clamping.
func Rescale(bounds []Bounds, unit *mat.Dense) (*mat.Dense, error) {
	rows, _ := unit.Dims()
	if rows != len(bounds) {
		return nil, core.NewShapeError(len(bounds), rows)
	}

	var out mat.Dense
	out.Apply(func(i, _ int, v float64) float64 {
		return bounds[i].Apply(v)
	}, unit)
	return &out, nil
}

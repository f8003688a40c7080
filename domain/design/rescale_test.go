package design

import (
	"errors"
	"testing"

	"doegen/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRescale_Endpoints(t *testing.T) {
	bounds := []Bounds{{Min: 50, Max: 200}, {Min: -1, Max: 1}}
	unit := mat.NewDense(2, 3, []float64{
		0, 0.5, 1,
		0, 0.25, 1,
	})

	out, err := Rescale(bounds, unit)
	require.NoError(t, err)

	assert.Equal(t, 50.0, out.At(0, 0))
	assert.Equal(t, 125.0, out.At(0, 1))
	assert.Equal(t, 200.0, out.At(0, 2))
	assert.Equal(t, -1.0, out.At(1, 0))
	assert.Equal(t, -0.5, out.At(1, 1))
	assert.Equal(t, 1.0, out.At(1, 2))
}

func TestRescale_Linearity(t *testing.T) {
	b := Bounds{Min: 3, Max: 17}
	for _, u := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		unit := mat.NewDense(1, 1, []float64{u})
		out, err := Rescale([]Bounds{b}, unit)
		require.NoError(t, err)
		assert.InDelta(t, b.Min+u*(b.Max-b.Min), out.At(0, 0), 1e-12)
	}
}

func TestRescale_NoClamping(t *testing.T) {
	unit := mat.NewDense(1, 2, []float64{-1e-9, 1 + 1e-9})
	out, err := Rescale([]Bounds{{Min: 0, Max: 10}}, unit)
	require.NoError(t, err)
	assert.Less(t, out.At(0, 0), 0.0)
	assert.Greater(t, out.At(0, 1), 10.0)
}

func TestRescale_DoesNotMutateInput(t *testing.T) {
	unit := mat.NewDense(1, 2, []float64{0.5, 1})
	_, err := Rescale([]Bounds{{Min: 100, Max: 200}}, unit)
	require.NoError(t, err)
	assert.Equal(t, 0.5, unit.At(0, 0))
}

func TestRescale_ShapeMismatch(t *testing.T) {
	unit := mat.NewDense(2, 2, nil)
	_, err := Rescale([]Bounds{{Min: 0, Max: 1}}, unit)
	assert.True(t, errors.Is(err, core.ErrShapeMismatch))
}

func TestTabulate_Transposes(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		10, 20, 30,
	})

	table, err := Tabulate([]string{"a", "b"}, m)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.True(t, table.Numeric())
	assert.Equal(t, []string{"2", "20"}, table.Row(1))
	assert.Equal(t, []float64{10, 20, 30}, table.Column(1))
	assert.Equal(t, [][]string{
		{"a", "b"},
		{"1", "10"},
		{"2", "20"},
		{"3", "30"},
	}, table.Records())
}

func TestTabulate_ShapeMismatch(t *testing.T) {
	_, err := Tabulate([]string{"a"}, mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestLevelTable(t *testing.T) {
	table := NewLevelTable([]string{"A", "B"}, Combinations([]Factor{
		{Name: "A", Levels: []string{"1", "2"}},
		{Name: "B", Levels: []string{"x", "y"}},
	}))

	assert.False(t, table.Numeric())
	assert.Equal(t, 4, table.Len())
	assert.Nil(t, table.Column(0))
	assert.Equal(t, "y", table.Cell(3, 1))
	assert.Len(t, table.Head(2), 2)
	assert.Len(t, table.Head(100), 4)
}

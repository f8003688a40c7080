// Package design holds the factor model and the pure steps that turn factors
// into a design table: combination, rescaling and tabulation.
package design

import (
	"math"
	"strconv"

	"doegen/domain/core"
)

// Mode selects how design points are generated
type Mode string

const (
	// ModeDOE enumerates every level combination (full factorial)
	ModeDOE Mode = "doe"
	// ModeLHS draws a Latin Hypercube sample inside per-factor bounds
	ModeLHS Mode = "lhs"
)

// String returns the string representation
func (m Mode) String() string { return string(m) }

// Label is the human readable name used on the forms
func (m Mode) Label() string {
	switch m {
	case ModeDOE:
		return "DOE (grid of level combinations)"
	case ModeLHS:
		return "LHS (space-filling sample of a given size)"
	default:
		return string(m)
	}
}

// Bounds is the closed numeric range a factor is sampled in.
// Min greater than Max is allowed; the affine map is still well defined.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min
func (b Bounds) Span() float64 {
	return b.Max - b.Min
}

// Validate rejects bounds whose ends or span are not finite
func (b Bounds) Validate() error {
	if !isFinite(b.Min) || !isFinite(b.Max) || !isFinite(b.Span()) {
		return core.ErrInvalidBounds
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Apply maps a unit-interval value into the bounds without clamping
func (b Bounds) Apply(u float64) float64 {
	return b.Span()*u + b.Min
}

func (b Bounds) String() string {
	return strconv.FormatFloat(b.Min, 'g', -1, 64) + ", " + strconv.FormatFloat(b.Max, 'g', -1, 64)
}

// Factor is one experimental variable. DOE factors carry Levels, LHS factors
// carry Bounds.
type Factor struct {
	Name   string   `json:"name"`
	Levels []string `json:"levels,omitempty"`
	Bounds Bounds   `json:"bounds"`
}

// Names returns the factor names in input order
func Names(factors []Factor) []string {
	names := make([]string, len(factors))
	for i, f := range factors {
		names[i] = f.Name
	}
	return names
}

// AllBounds returns the factor bounds in input order
func AllBounds(factors []Factor) []Bounds {
	bounds := make([]Bounds, len(factors))
	for i, f := range factors {
		bounds[i] = f.Bounds
	}
	return bounds
}

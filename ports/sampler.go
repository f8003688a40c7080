package ports

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Sampler draws space-filling samples in the unit hypercube
type Sampler interface {
	// Name identifies the sampler on forms and in the API
	Name() string

	// Sample returns a dims x n matrix with every value in [0,1].
	// Row i holds the n draws of dimension i.
	Sample(ctx context.Context, dims, n int, seed int64) (*mat.Dense, error)
}

// SamplerRegistry resolves samplers by name
type SamplerRegistry interface {
	Get(name string) (Sampler, error)
	Names() []string
}

// Package sampling implements Latin Hypercube samplers on gonum matrices.
package sampling

import (
	"context"
	"fmt"

	"doegen/domain/core"
	"doegen/ports"

	"gonum.org/v1/gonum/mat"
)

// SamplerLHS and SamplerLHSMDU are the registered sampler names
const (
	SamplerLHS    = "lhs"
	SamplerLHSMDU = "lhsmdu"
)

// LatinHypercube is the classic stratified sampler: each dimension is cut
// into n equal strata and every stratum receives exactly one jittered point,
// with strata paired across dimensions by independent random permutations.
type LatinHypercube struct {
	rng ports.RNGPort
}

// NewLatinHypercube creates a classic LHS sampler
func NewLatinHypercube(rng ports.RNGPort) *LatinHypercube {
	return &LatinHypercube{rng: rng}
}

// Name returns the registered sampler name
func (s *LatinHypercube) Name() string { return SamplerLHS }

// Sample returns a dims x n matrix in [0,1)
func (s *LatinHypercube) Sample(ctx context.Context, dims, n int, seed int64) (*mat.Dense, error) {
	if dims < 1 || n < 1 {
		return nil, fmt.Errorf("%w: dims=%d n=%d", core.ErrInvalidSampleSize, dims, n)
	}
	r, err := s.rng.SeededStream(ctx, s.Name(), seed)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(dims, n, nil)
	for i := 0; i < dims; i++ {
		perm := r.Perm(n)
		for j := 0; j < n; j++ {
			out.Set(i, j, (float64(perm[j])+r.Float64())/float64(n))
		}
	}
	return out, nil
}

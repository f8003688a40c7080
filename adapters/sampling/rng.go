package sampling

import (
	"context"
	"math/rand"
)

// RNGAdapter hands out math/rand streams seeded from the caller's seed
type RNGAdapter struct{}

// NewRNGAdapter creates an RNG adapter
func NewRNGAdapter() *RNGAdapter {
	return &RNGAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}

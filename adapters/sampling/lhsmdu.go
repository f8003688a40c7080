package sampling

import (
	"context"
	"fmt"
	"math"
	"sort"

	"doegen/domain/core"
	"doegen/ports"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LHSMDU defaults
const (
	DefaultScale      = 5
	DefaultNeighbours = 2
	DefaultMaxSamples = 2000
)

// LHSMDU is Latin Hypercube Sampling with multidimensional uniformity
// (Deutsch & Deutsch, 2012). Scale*n uniform realizations are thinned by
// repeatedly dropping the one whose mean distance to its nearest neighbours
// is smallest; the n survivors are then stratified dimension by dimension.
type LHSMDU struct {
	rng        ports.RNGPort
	Scale      int
	Neighbours int
	MaxSamples int
}

// NewLHSMDU creates an LHS-MDU sampler with default tuning
func NewLHSMDU(rng ports.RNGPort) *LHSMDU {
	return &LHSMDU{
		rng:        rng,
		Scale:      DefaultScale,
		Neighbours: DefaultNeighbours,
		MaxSamples: DefaultMaxSamples,
	}
}

// Name returns the registered sampler name
func (s *LHSMDU) Name() string { return SamplerLHSMDU }

// neighbourhood is the k nearest alive realizations of one point, ascending
type neighbourhood struct {
	idx  []int
	dist []float64
}

func (nb neighbourhood) contains(p int) bool {
	for _, i := range nb.idx {
		if i == p {
			return true
		}
	}
	return false
}

func (nb neighbourhood) mean() float64 {
	if len(nb.dist) == 0 {
		return math.Inf(1)
	}
	return floats.Sum(nb.dist) / float64(len(nb.dist))
}

// Sample returns a dims x n matrix in [0,1)
func (s *LHSMDU) Sample(ctx context.Context, dims, n int, seed int64) (*mat.Dense, error) {
	if dims < 1 || n < 1 {
		return nil, fmt.Errorf("%w: dims=%d n=%d", core.ErrInvalidSampleSize, dims, n)
	}
	if s.MaxSamples > 0 && n > s.MaxSamples {
		return nil, fmt.Errorf("%w: %s supports at most %d samples, got %d",
			core.ErrInvalidSampleSize, s.Name(), s.MaxSamples, n)
	}
	scale := s.Scale
	if scale < 1 {
		scale = DefaultScale
	}
	k := s.Neighbours
	if k < 1 {
		k = DefaultNeighbours
	}

	r, err := s.rng.SeededStream(ctx, s.Name(), seed)
	if err != nil {
		return nil, err
	}

	total := scale * n
	points := make([][]float64, total)
	for j := range points {
		points[j] = make([]float64, dims)
		for i := range points[j] {
			points[j][i] = r.Float64()
		}
	}

	survivors, err := s.eliminate(ctx, points, n, k)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(dims, n, nil)
	order := make([]int, n)
	for i := 0; i < dims; i++ {
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return points[survivors[order[a]]][i] < points[survivors[order[b]]][i]
		})
		for rank, j := range order {
			out.Set(i, j, (float64(rank)+r.Float64())/float64(n))
		}
	}
	return out, nil
}

// eliminate thins points down to n survivors and returns their indices in
// ascending order
func (s *LHSMDU) eliminate(ctx context.Context, points [][]float64, n, k int) ([]int, error) {
	alive := make([]bool, len(points))
	for i := range alive {
		alive[i] = true
	}

	hoods := make([]neighbourhood, len(points))
	for i := range points {
		hoods[i] = nearest(points, alive, i, k)
	}

	remaining := len(points)
	for remaining > n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		victim := -1
		best := math.Inf(1)
		for i, ok := range alive {
			if !ok {
				continue
			}
			if m := hoods[i].mean(); m < best || victim < 0 {
				best, victim = m, i
			}
		}

		alive[victim] = false
		remaining--
		for i, ok := range alive {
			if ok && hoods[i].contains(victim) {
				hoods[i] = nearest(points, alive, i, k)
			}
		}
	}

	survivors := make([]int, 0, n)
	for i, ok := range alive {
		if ok {
			survivors = append(survivors, i)
		}
	}
	return survivors, nil
}

// nearest finds the k closest alive points to point p by Euclidean distance
func nearest(points [][]float64, alive []bool, p, k int) neighbourhood {
	nb := neighbourhood{
		idx:  make([]int, 0, k),
		dist: make([]float64, 0, k),
	}
	for j, ok := range alive {
		if !ok || j == p {
			continue
		}
		d := floats.Distance(points[p], points[j], 2)
		if len(nb.dist) == k && d >= nb.dist[k-1] {
			continue
		}
		pos := sort.SearchFloat64s(nb.dist, d)
		if len(nb.dist) < k {
			nb.dist = append(nb.dist, 0)
			nb.idx = append(nb.idx, 0)
		}
		copy(nb.dist[pos+1:], nb.dist[pos:len(nb.dist)-1])
		copy(nb.idx[pos+1:], nb.idx[pos:len(nb.idx)-1])
		nb.dist[pos] = d
		nb.idx[pos] = j
	}
	return nb
}

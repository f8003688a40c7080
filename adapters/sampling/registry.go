package sampling

import (
	"fmt"

	"doegen/domain/core"
	"doegen/ports"
)

// Registry resolves samplers by name, keeping registration order
type Registry struct {
	samplers map[string]ports.Sampler
	order    []string
}

// NewRegistry registers the given samplers
func NewRegistry(samplers ...ports.Sampler) *Registry {
	r := &Registry{samplers: make(map[string]ports.Sampler, len(samplers))}
	for _, s := range samplers {
		if _, dup := r.samplers[s.Name()]; !dup {
			r.order = append(r.order, s.Name())
		}
		r.samplers[s.Name()] = s
	}
	return r
}

// NewDefaultRegistry registers LHS-MDU and classic LHS sharing one RNG port
func NewDefaultRegistry(rng ports.RNGPort, scale, neighbours, maxSamples int) *Registry {
	mdu := NewLHSMDU(rng)
	if scale > 0 {
		mdu.Scale = scale
	}
	if neighbours > 0 {
		mdu.Neighbours = neighbours
	}
	if maxSamples > 0 {
		mdu.MaxSamples = maxSamples
	}
	return NewRegistry(mdu, NewLatinHypercube(rng))
}

// Get returns the sampler registered under name
func (r *Registry) Get(name string) (ports.Sampler, error) {
	s, ok := r.samplers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSampler, name)
	}
	return s, nil
}

// Names lists sampler names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

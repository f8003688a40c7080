package ui

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"doegen/domain/design"
	"doegen/internal/config"
	"doegen/internal/errors"
)

// factorInput is one per-factor text box on a form
type factorInput struct {
	Name  string
	Field string
	Value string
}

func fieldName(prefix string, i int) string {
	return fmt.Sprintf("%s_%d", prefix, i)
}

// doeForm is the two step DOE form: names first, then one levels box per name
type doeForm struct {
	FactorsText string
	Names       []string
	Levels      []string
}

func parseDOEForm(values url.Values) (*doeForm, error) {
	f := &doeForm{FactorsText: values.Get("factors")}
	if strings.TrimSpace(f.FactorsText) == "" {
		return f, nil
	}
	names, err := design.ParseFactorNames(f.FactorsText)
	if err != nil {
		return f, errors.Wrap(err, "invalid factor names")
	}
	f.Names = names
	f.Levels = make([]string, len(names))
	for i := range names {
		f.Levels[i] = values.Get(fieldName("levels", i))
	}
	return f, nil
}

// Started reports whether any levels box has content
func (f *doeForm) Started() bool {
	for _, l := range f.Levels {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

func (f *doeForm) Inputs() []factorInput {
	inputs := make([]factorInput, len(f.Names))
	for i, name := range f.Names {
		inputs[i] = factorInput{Name: name, Field: fieldName("levels", i), Value: f.Levels[i]}
	}
	return inputs
}

func (f *doeForm) Factors() ([]design.Factor, error) {
	factors, err := design.BuildDOEFactors(f.Names, f.Levels)
	if err != nil {
		return nil, errors.Wrap(err, "invalid factor values")
	}
	return factors, nil
}

// Query encodes the form so a download link regenerates the same table
func (f *doeForm) Query() template.URL {
	values := url.Values{}
	values.Set("factors", f.FactorsText)
	for i, l := range f.Levels {
		values.Set(fieldName("levels", i), l)
	}
	return template.URL(values.Encode())
}

// lhsForm is the LHS form. Samples, Seed and Sampler always hold resolved
// values so a rendered form and its download links agree.
type lhsForm struct {
	FactorsText string
	Names       []string
	Bounds      []string
	Samples     int
	Seed        int64
	Sampler     string
}

func parseLHSForm(values url.Values, limits config.LHSConfig) (*lhsForm, error) {
	f := &lhsForm{
		FactorsText: values.Get("factors"),
		Samples:     limits.DefaultSamples,
		Seed:        limits.Seed,
		Sampler:     limits.Sampler,
	}

	if strings.TrimSpace(f.FactorsText) != "" {
		names, err := design.ParseFactorNames(f.FactorsText)
		if err != nil {
			return f, errors.Wrap(err, "invalid factor names")
		}
		f.Names = names
		f.Bounds = make([]string, len(names))
		for i := range names {
			f.Bounds[i] = values.Get(fieldName("bounds", i))
		}
	}

	if raw := strings.TrimSpace(values.Get("sampler")); raw != "" {
		f.Sampler = raw
	}
	if raw := strings.TrimSpace(values.Get("seed")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, errors.InvalidInput(fmt.Sprintf("seed %q is not an integer", raw))
		}
		f.Seed = seed
	}
	if raw := strings.TrimSpace(values.Get("samples")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return f, errors.InvalidInput(fmt.Sprintf("sample count %q is not a whole number", raw))
		}
		f.Samples = n
		if n < limits.MinSamples {
			return f, errors.InvalidInput(fmt.Sprintf("sample count must be at least %d", limits.MinSamples))
		}
	}
	return f, nil
}

func (f *lhsForm) Started() bool {
	for _, b := range f.Bounds {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}

func (f *lhsForm) Inputs() []factorInput {
	inputs := make([]factorInput, len(f.Names))
	for i, name := range f.Names {
		inputs[i] = factorInput{Name: name, Field: fieldName("bounds", i), Value: f.Bounds[i]}
	}
	return inputs
}

func (f *lhsForm) Factors() ([]design.Factor, error) {
	factors, err := design.BuildLHSFactors(f.Names, f.Bounds)
	if err != nil {
		return nil, errors.Wrap(err, "invalid factor bounds")
	}
	return factors, nil
}

func (f *lhsForm) Query() template.URL {
	values := url.Values{}
	values.Set("factors", f.FactorsText)
	for i, b := range f.Bounds {
		values.Set(fieldName("bounds", i), b)
	}
	values.Set("samples", strconv.Itoa(f.Samples))
	values.Set("seed", strconv.FormatInt(f.Seed, 10))
	values.Set("sampler", f.Sampler)
	return template.URL(values.Encode())
}

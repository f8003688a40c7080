package design

import (
	"strconv"
	"strings"

	"doegen/domain/core"
)

// SplitList splits comma separated input and trims every entry.
// An empty string yields a single empty entry.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ParseFactorNames reads the comma separated factor name field. Blank entries
// are dropped; repeated names are rejected since names label table columns.
func ParseFactorNames(s string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, name := range SplitList(s) {
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, core.NewFactorError(name, core.ErrDuplicateFactor)
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, core.ErrNoFactors
	}
	return names, nil
}

// ParseLevels reads the discrete values of a DOE factor. Values are kept as
// strings, exactly as entered.
func ParseLevels(s string) []string {
	return SplitList(s)
}

// ParseBounds reads a "min, max" pair
func ParseBounds(s string) (Bounds, error) {
	parts := SplitList(s)
	if len(parts) != 2 {
		return Bounds{}, core.ErrInvalidBounds
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Bounds{}, core.ErrInvalidBounds
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Bounds{}, core.ErrInvalidBounds
	}
	b := Bounds{Min: lo, Max: hi}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// BuildDOEFactors pairs factor names with their raw level inputs
func BuildDOEFactors(names []string, rawLevels []string) ([]Factor, error) {
	if len(names) == 0 {
		return nil, core.ErrNoFactors
	}
	factors := make([]Factor, len(names))
	for i, name := range names {
		raw := ""
		if i < len(rawLevels) {
			raw = rawLevels[i]
		}
		if strings.TrimSpace(raw) == "" {
			return nil, core.NewFactorError(name, core.ErrMissingLevels)
		}
		factors[i] = Factor{Name: name, Levels: ParseLevels(raw)}
	}
	return factors, nil
}

// BuildLHSFactors pairs factor names with their raw "min, max" inputs
func BuildLHSFactors(names []string, rawBounds []string) ([]Factor, error) {
	if len(names) == 0 {
		return nil, core.ErrNoFactors
	}
	factors := make([]Factor, len(names))
	for i, name := range names {
		raw := ""
		if i < len(rawBounds) {
			raw = rawBounds[i]
		}
		b, err := ParseBounds(raw)
		if err != nil {
			return nil, core.NewFactorError(name, err)
		}
		factors[i] = Factor{Name: name, Bounds: b}
	}
	return factors, nil
}

// ValidateNames checks that factor names are present and unique
func ValidateNames(factors []Factor) error {
	if len(factors) == 0 {
		return core.ErrNoFactors
	}
	seen := make(map[string]bool, len(factors))
	for _, f := range factors {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return core.NewFactorError(f.Name, core.ErrInvalidInput)
		}
		if seen[name] {
			return core.NewFactorError(name, core.ErrDuplicateFactor)
		}
		seen[name] = true
	}
	return nil
}

// ValidateBounds checks every factor's bounds for finite ends and span
func ValidateBounds(factors []Factor) error {
	for _, f := range factors {
		if err := f.Bounds.Validate(); err != nil {
			return core.NewFactorError(f.Name, err)
		}
	}
	return nil
}

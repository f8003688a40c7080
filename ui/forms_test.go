package ui

import (
	"net/url"
	"testing"

	"doegen/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDOEForm(t *testing.T) {
	form, err := parseDOEForm(url.Values{
		"factors":  {" A ,B,, "},
		"levels_0": {"1, 2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, form.Names)
	assert.Equal(t, []string{"1, 2", ""}, form.Levels)
	assert.True(t, form.Started())

	_, err = form.Factors()
	assert.Error(t, err)
}

func TestParseDOEForm_Empty(t *testing.T) {
	form, err := parseDOEForm(url.Values{})
	require.NoError(t, err)
	assert.Empty(t, form.Names)
	assert.False(t, form.Started())
}

func TestDOEFormQuery_RoundTrip(t *testing.T) {
	form, err := parseDOEForm(url.Values{
		"factors":  {"A,B"},
		"levels_0": {"1,2"},
		"levels_1": {"x"},
	})
	require.NoError(t, err)

	values, err := url.ParseQuery(string(form.Query()))
	require.NoError(t, err)
	again, err := parseDOEForm(values)
	require.NoError(t, err)
	assert.Equal(t, form, again)
}

func TestParseLHSForm_Defaults(t *testing.T) {
	limits := config.Default().LHS
	form, err := parseLHSForm(url.Values{"factors": {"h"}, "bounds_0": {"0, 1"}}, limits)
	require.NoError(t, err)
	assert.Equal(t, limits.DefaultSamples, form.Samples)
	assert.Equal(t, limits.Seed, form.Seed)
	assert.Equal(t, limits.Sampler, form.Sampler)

	factors, err := form.Factors()
	require.NoError(t, err)
	assert.Equal(t, 0.0, factors[0].Bounds.Min)
	assert.Equal(t, 1.0, factors[0].Bounds.Max)
}

func TestParseLHSForm_Invalid(t *testing.T) {
	limits := config.Default().LHS
	tests := []struct {
		name   string
		values url.Values
	}{
		{"samples not a number", url.Values{"samples": {"many"}}},
		{"samples below minimum", url.Values{"samples": {"10"}}},
		{"seed not an integer", url.Values{"seed": {"1.5"}}},
		{"duplicate names", url.Values{"factors": {"a,a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLHSForm(tt.values, limits)
			assert.Error(t, err)
		})
	}
}

func TestParseLHSForm_InvalidSamplesKeepsBounds(t *testing.T) {
	limits := config.Default().LHS
	form, err := parseLHSForm(url.Values{
		"factors":  {"height, width"},
		"bounds_0": {"50, 200"},
		"bounds_1": {"0, 1"},
		"samples":  {"10"},
	}, limits)
	assert.Error(t, err)
	assert.Equal(t, []string{"height", "width"}, form.Names)
	assert.Equal(t, []string{"50, 200", "0, 1"}, form.Bounds)
	require.Len(t, form.Inputs(), 2)
	assert.Equal(t, "0, 1", form.Inputs()[1].Value)
}

func TestLHSFormQuery_CarriesSeed(t *testing.T) {
	limits := config.Default().LHS
	form, err := parseLHSForm(url.Values{"factors": {"h"}, "bounds_0": {"0,1"}}, limits)
	require.NoError(t, err)

	values, err := url.ParseQuery(string(form.Query()))
	require.NoError(t, err)
	assert.Equal(t, "777", values.Get("seed"))
	assert.Equal(t, "200", values.Get("samples"))
	assert.Equal(t, "lhsmdu", values.Get("sampler"))
}

package config

import (
	"testing"

	"doegen/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LHS_DEFAULT_SAMPLES", "LHS_MIN_SAMPLES", "LHS_SAMPLE_STEP",
		"LHS_SEED", "LHS_SAMPLER", "LHSMDU_SCALE", "LHSMDU_NEIGHBOURS", "LHS_MAX_SAMPLES",
		"MAX_DOE_ROWS", "OUTPUT_DIR", "PLOT_PALETTE", "ECHARTS_ASSETS_HOST", "PREVIEW_ROWS", "XLSX_SHEET",
		"API_CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 200, cfg.LHS.DefaultSamples)
	assert.Equal(t, 100, cfg.LHS.MinSamples)
	assert.Equal(t, 10, cfg.LHS.SampleStep)
	assert.Equal(t, int64(777), cfg.LHS.Seed)
	assert.Equal(t, "lhsmdu", cfg.LHS.Sampler)
	assert.Equal(t, "autumn", cfg.Output.Palette)
	assert.Equal(t, "", cfg.Output.Dir)
	assert.Empty(t, cfg.Server.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LHS_SEED", "12345")
	t.Setenv("LHS_SAMPLER", "lhs")
	t.Setenv("OUTPUT_DIR", "/tmp/designs")
	t.Setenv("MAX_DOE_ROWS", "not-a-number")
	t.Setenv("API_CORS_ORIGINS", "https://lab.example, ,http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(12345), cfg.LHS.Seed)
	assert.Equal(t, "lhs", cfg.LHS.Sampler)
	assert.Equal(t, "/tmp/designs", cfg.Output.Dir)
	assert.Equal(t, 100000, cfg.DOE.MaxRows, "unparsable values fall back to defaults")
	assert.Equal(t, []string{"https://lab.example", "http://localhost:3000"}, cfg.Server.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LHS_MIN_SAMPLES", "300")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

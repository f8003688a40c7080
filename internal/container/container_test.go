package container

import (
	"context"
	"testing"

	"doegen/app"
	"doegen/domain/core"
	"doegen/domain/design"
	"doegen/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.Output.SheetName = "Design"
	cfg.Output.Palette = "viridis"

	c, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"lhsmdu", "lhs"}, c.Samplers.Names())
	assert.Contains(t, c.Exporters, "csv")
	assert.Contains(t, c.Exporters, "xlsx")
	assert.Equal(t, "viridis", c.PairPlotter.Palette.Name)
	assert.Equal(t, "lhsmdu", c.DesignService.DefaultSampler())
}

func TestNew_SampleLimitReachesService(t *testing.T) {
	cfg := config.Default()
	cfg.LHS.MaxSamples = 300

	c, err := New(cfg)
	require.NoError(t, err)

	factors := []design.Factor{{Name: "h", Bounds: design.Bounds{Min: 0, Max: 1}}}
	_, err = c.DesignService.GenerateLHS(context.Background(), app.LHSRequest{
		Factors: factors, Samples: 301, Sampler: "lhs",
	})
	assert.ErrorIs(t, err, core.ErrInvalidSampleSize)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.LHS.Sampler = "sobol"
	_, err = New(cfg)
	assert.Error(t, err)
}

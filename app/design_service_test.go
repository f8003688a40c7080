package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"doegen/adapters/excel"
	"doegen/adapters/sampling"
	"doegen/domain/core"
	"doegen/domain/design"
	"doegen/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlotter struct{ calls int }

func (p *stubPlotter) ContentType() string { return "image/png" }

func (p *stubPlotter) Render(w io.Writer, table *design.Table, title string) error {
	p.calls++
	_, err := w.Write([]byte(title))
	return err
}

func newTestService(t *testing.T, archiveDir string, plotter *stubPlotter) *DesignService {
	t.Helper()
	registry := sampling.NewDefaultRegistry(sampling.NewRNGAdapter(), 0, 0, 0)
	if plotter == nil {
		plotter = &stubPlotter{}
	}
	return NewDesignService(registry, excel.NewCSVExporter(), plotter, DesignServiceConfig{
		DefaultSampler: sampling.SamplerLHSMDU,
		DefaultSeed:    777,
		MaxDOERows:     100,
		MaxSamples:     500,
		ArchiveDir:     archiveDir,
	})
}

func lhsFactors() []design.Factor {
	return []design.Factor{
		{Name: "height", Bounds: design.Bounds{Min: 50, Max: 200}},
		{Name: "width", Bounds: design.Bounds{Min: 0, Max: 1}},
	}
}

func TestGenerateDOE(t *testing.T) {
	svc := newTestService(t, "", nil)
	run, err := svc.GenerateDOE(context.Background(), DOERequest{Factors: []design.Factor{
		{Name: "A", Levels: []string{"1", "2"}},
		{Name: "B", Levels: []string{"x", "y", "z"}},
	}})
	require.NoError(t, err)

	assert.Equal(t, design.ModeDOE, run.Mode)
	assert.Equal(t, DOEFileBase, run.FileBase)
	assert.Equal(t, []string{"A", "B"}, run.Table.Columns)
	assert.Equal(t, 6, run.Table.Len())
	assert.Equal(t, []string{"1", "x"}, run.Table.Row(0))
	assert.Equal(t, []string{"2", "z"}, run.Table.Row(5))
	assert.NotEmpty(t, run.Fingerprint)
}

func TestGenerateDOE_RowLimit(t *testing.T) {
	svc := newTestService(t, "", nil)
	levels := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}
	_, err := svc.GenerateDOE(context.Background(), DOERequest{Factors: []design.Factor{
		{Name: "A", Levels: levels},
		{Name: "B", Levels: levels},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTooManyRows)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestGenerateDOE_DuplicateNames(t *testing.T) {
	svc := newTestService(t, "", nil)
	_, err := svc.GenerateDOE(context.Background(), DOERequest{Factors: []design.Factor{
		{Name: "A", Levels: []string{"1"}},
		{Name: "A", Levels: []string{"2"}},
	}})
	assert.ErrorIs(t, err, core.ErrDuplicateFactor)
	assert.Equal(t, 400, errors.HTTPStatus(err))
}

func TestGenerateLHS(t *testing.T) {
	svc := newTestService(t, "", nil)
	run, err := svc.GenerateLHS(context.Background(), LHSRequest{Factors: lhsFactors(), Samples: 20})
	require.NoError(t, err)

	assert.Equal(t, design.ModeLHS, run.Mode)
	assert.Equal(t, int64(777), run.Seed)
	assert.Equal(t, sampling.SamplerLHSMDU, run.Sampler)
	assert.Equal(t, 20, run.Table.Len())
	assert.True(t, run.Table.Numeric())
	assert.Contains(t, run.ArchiveBase, "_latin_hypercube")

	for i, f := range lhsFactors() {
		for _, v := range run.Table.Column(i) {
			assert.GreaterOrEqual(t, v, f.Bounds.Min)
			assert.LessOrEqual(t, v, f.Bounds.Max)
		}
	}
}

func TestGenerateLHS_Reproducible(t *testing.T) {
	svc := newTestService(t, "", nil)
	seed := int64(42)
	req := LHSRequest{Factors: lhsFactors(), Samples: 15, Seed: &seed, Sampler: sampling.SamplerLHS}

	a, err := svc.GenerateLHS(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.GenerateLHS(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a.Table.Records(), b.Table.Records())
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateLHS_Errors(t *testing.T) {
	svc := newTestService(t, "", nil)
	ctx := context.Background()

	_, err := svc.GenerateLHS(ctx, LHSRequest{Factors: lhsFactors(), Samples: 10, Sampler: "sobol"})
	assert.ErrorIs(t, err, core.ErrUnknownSampler)
	assert.Equal(t, 400, errors.HTTPStatus(err))

	_, err = svc.GenerateLHS(ctx, LHSRequest{Factors: lhsFactors(), Samples: 0})
	assert.ErrorIs(t, err, core.ErrInvalidSampleSize)

	_, err = svc.GenerateLHS(ctx, LHSRequest{Samples: 10})
	assert.ErrorIs(t, err, core.ErrNoFactors)
}

func TestGenerateLHS_SampleLimit(t *testing.T) {
	svc := newTestService(t, "", nil)
	ctx := context.Background()

	for _, name := range []string{sampling.SamplerLHS, sampling.SamplerLHSMDU} {
		_, err := svc.GenerateLHS(ctx, LHSRequest{Factors: lhsFactors(), Samples: 501, Sampler: name})
		assert.ErrorIs(t, err, core.ErrInvalidSampleSize, name)
		assert.Equal(t, 400, errors.HTTPStatus(err), name)
	}

	run, err := svc.GenerateLHS(ctx, LHSRequest{Factors: lhsFactors(), Samples: 500, Sampler: sampling.SamplerLHS})
	require.NoError(t, err)
	assert.Equal(t, 500, run.Table.Len())
}

func TestGenerateLHS_NonFiniteBounds(t *testing.T) {
	svc := newTestService(t, "", nil)
	factors := []design.Factor{{Name: "h", Bounds: design.Bounds{Min: -1e308, Max: 1e308}}}

	_, err := svc.GenerateLHS(context.Background(), LHSRequest{Factors: factors, Samples: 10, Sampler: sampling.SamplerLHS})
	assert.ErrorIs(t, err, core.ErrInvalidBounds)
	assert.Equal(t, 400, errors.HTTPStatus(err))
}

func TestArchive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")
	plotter := &stubPlotter{}
	svc := newTestService(t, dir, plotter)

	run, err := svc.GenerateLHS(context.Background(), LHSRequest{Factors: lhsFactors(), Samples: 10})
	require.NoError(t, err)

	written, err := svc.Archive(context.Background(), run)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(dir, run.ArchiveBase+".csv"), written[0])
	assert.Equal(t, filepath.Join(dir, run.ArchiveBase+".png"), written[1])
	assert.Equal(t, 1, plotter.calls)

	csv, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(csv, []byte("height,width\n")))
}

func TestArchive_Disabled(t *testing.T) {
	plotter := &stubPlotter{}
	svc := newTestService(t, "", plotter)

	run, err := svc.GenerateLHS(context.Background(), LHSRequest{Factors: lhsFactors(), Samples: 10})
	require.NoError(t, err)

	written, err := svc.Archive(context.Background(), run)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Zero(t, plotter.calls)
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"doegen/domain/core"
	"doegen/domain/design"
	"doegen/internal"
	"doegen/internal/errors"
	"doegen/ports"
)

// Download names offered to the browser; archived LHS runs get a dated name
const (
	DOEFileBase = "doe"
	LHSFileBase = "lhs"
	lhsArchive  = "latin_hypercube"
)

// DesignService turns parsed factors into design tables
type DesignService struct {
	samplers       ports.SamplerRegistry
	defaultSampler string
	defaultSeed    int64
	maxDOERows     int
	maxSamples     int

	archiveDir string
	csv        ports.TableExporter
	plotter    ports.MatrixPlotter

	logger *internal.Logger
	now    func() time.Time
}

// DesignServiceConfig carries the tunables of DesignService
type DesignServiceConfig struct {
	DefaultSampler string
	DefaultSeed    int64
	MaxDOERows     int
	MaxSamples     int
	ArchiveDir     string
}

// DOERequest asks for the full factorial of the factors' levels
type DOERequest struct {
	Factors []design.Factor
}

// LHSRequest asks for a Latin Hypercube sample inside the factors' bounds.
// Nil Seed and empty Sampler select the service defaults.
type LHSRequest struct {
	Factors []design.Factor
	Samples int
	Seed    *int64
	Sampler string
}

// DesignRun is the outcome of one generation request
type DesignRun struct {
	ID          core.RunID      `json:"run_id"`
	Mode        design.Mode     `json:"mode"`
	Factors     []design.Factor `json:"factors"`
	Table       *design.Table   `json:"-"`
	FileBase    string          `json:"file_base"`
	ArchiveBase string          `json:"archive_base,omitempty"`
	Samples     int             `json:"samples,omitempty"`
	Seed        int64           `json:"seed,omitempty"`
	Sampler     string          `json:"sampler,omitempty"`
	Fingerprint core.Hash       `json:"fingerprint"`
	CreatedAt   core.Timestamp  `json:"-"`
	RuntimeMs   int64           `json:"runtime_ms"`
}

// NewDesignService creates a design service. csv and plotter are only used
// when ArchiveDir is set.
func NewDesignService(samplers ports.SamplerRegistry, csv ports.TableExporter, plotter ports.MatrixPlotter, cfg DesignServiceConfig) *DesignService {
	return &DesignService{
		samplers:       samplers,
		defaultSampler: cfg.DefaultSampler,
		defaultSeed:    cfg.DefaultSeed,
		maxDOERows:     cfg.MaxDOERows,
		maxSamples:     cfg.MaxSamples,
		archiveDir:     cfg.ArchiveDir,
		csv:            csv,
		plotter:        plotter,
		logger:         internal.DefaultLogger.With("DesignService"),
		now:            time.Now,
	}
}

// DefaultSeed returns the seed used when a request leaves it empty
func (s *DesignService) DefaultSeed() int64 { return s.defaultSeed }

// DefaultSampler returns the sampler used when a request leaves it empty
func (s *DesignService) DefaultSampler() string { return s.defaultSampler }

// SamplerNames lists the selectable samplers
func (s *DesignService) SamplerNames() []string { return s.samplers.Names() }

// GenerateDOE enumerates every level combination
func (s *DesignService) GenerateDOE(ctx context.Context, req DOERequest) (*DesignRun, error) {
	start := s.now()
	if err := design.ValidateNames(req.Factors); err != nil {
		return nil, errors.Wrap(err, "invalid factors")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := design.CountCombinations(req.Factors)
	if s.maxDOERows > 0 && count > s.maxDOERows {
		return nil, &errors.AppError{
			Code:    errors.CodeInvalidInput,
			Message: fmt.Sprintf("%d combinations, limit is %d", count, s.maxDOERows),
			Cause:   core.ErrTooManyRows,
		}
	}

	table := design.NewLevelTable(design.Names(req.Factors), design.Combinations(req.Factors))
	run := &DesignRun{
		ID:          core.NewRunID(),
		Mode:        design.ModeDOE,
		Factors:     req.Factors,
		Table:       table,
		FileBase:    DOEFileBase,
		Fingerprint: core.ComputeInputHash(design.ModeDOE, req.Factors),
		CreatedAt:   core.NewTimestamp(start),
	}
	run.RuntimeMs = s.now().Sub(start).Milliseconds()

	s.logger.Info("DOE run %s: %d factors, %d rows", run.ID, len(req.Factors), table.Len())
	s.logger.Trace("DOE run %s fingerprint %s", run.ID, run.Fingerprint.Short())
	return run, nil
}

// GenerateLHS samples the unit hypercube, rescales each factor into its
// bounds and tabulates samples as rows
func (s *DesignService) GenerateLHS(ctx context.Context, req LHSRequest) (*DesignRun, error) {
	start := s.now()
	if err := design.ValidateNames(req.Factors); err != nil {
		return nil, errors.Wrap(err, "invalid factors")
	}
	if err := design.ValidateBounds(req.Factors); err != nil {
		return nil, errors.Wrap(err, "invalid factors")
	}
	if s.maxSamples > 0 && req.Samples > s.maxSamples {
		return nil, &errors.AppError{
			Code:    errors.CodeInvalidInput,
			Message: fmt.Sprintf("%d samples, limit is %d", req.Samples, s.maxSamples),
			Cause:   core.ErrInvalidSampleSize,
		}
	}

	samplerName := req.Sampler
	if samplerName == "" {
		samplerName = s.defaultSampler
	}
	sampler, err := s.samplers.Get(samplerName)
	if err != nil {
		return nil, errors.Wrap(err, "sampler lookup failed")
	}
	seed := s.defaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	unit, err := sampler.Sample(ctx, len(req.Factors), req.Samples, seed)
	if err != nil {
		return nil, errors.Wrapf(err, "%s sampling failed", samplerName)
	}
	scaled, err := design.Rescale(design.AllBounds(req.Factors), unit)
	if err != nil {
		return nil, errors.Wrap(err, "rescale failed")
	}
	table, err := design.Tabulate(design.Names(req.Factors), scaled)
	if err != nil {
		return nil, errors.Wrap(err, "tabulate failed")
	}

	created := core.NewTimestamp(start)
	run := &DesignRun{
		ID:          core.NewRunID(),
		Mode:        design.ModeLHS,
		Factors:     req.Factors,
		Table:       table,
		FileBase:    LHSFileBase,
		ArchiveBase: fmt.Sprintf("%s_%s", created.FileStamp(), lhsArchive),
		Samples:     req.Samples,
		Seed:        seed,
		Sampler:     samplerName,
		Fingerprint: core.ComputeInputHash(design.ModeLHS, req.Factors, req.Samples, seed, samplerName),
		CreatedAt:   created,
	}
	run.RuntimeMs = s.now().Sub(start).Milliseconds()

	s.logger.Info("LHS run %s: %d factors, %d samples, sampler=%s seed=%d (%dms)",
		run.ID, len(req.Factors), req.Samples, samplerName, seed, run.RuntimeMs)
	s.logger.Trace("LHS run %s fingerprint %s", run.ID, run.Fingerprint.Short())
	return run, nil
}

// Archive writes <yymmdd>_latin_hypercube.csv and .png into the archive
// directory. It is a no-op without a directory or for DOE runs.
func (s *DesignService) Archive(ctx context.Context, run *DesignRun) ([]string, error) {
	if s.archiveDir == "" || run.Mode != design.ModeLHS {
		return nil, nil
	}
	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create archive directory")
	}

	var written []string
	if s.csv != nil {
		path := filepath.Join(s.archiveDir, run.ArchiveBase+s.csv.Extension())
		if err := writeTo(path, func(f *os.File) error { return s.csv.Export(f, run.Table) }); err != nil {
			return written, errors.ExportFailed(s.csv.Format(), err)
		}
		written = append(written, path)
	}
	if err := ctx.Err(); err != nil {
		return written, err
	}
	if s.plotter != nil {
		path := filepath.Join(s.archiveDir, run.ArchiveBase+".png")
		if err := writeTo(path, func(f *os.File) error { return s.plotter.Render(f, run.Table, run.ArchiveBase) }); err != nil {
			return written, errors.ExportFailed("png", err)
		}
		written = append(written, path)
	}

	s.logger.Info("Archived run %s: %v", run.ID, written)
	return written, nil
}

func writeTo(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

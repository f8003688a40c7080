package container

import (
	"fmt"

	"doegen/adapters/chart"
	"doegen/adapters/excel"
	"doegen/adapters/sampling"
	"doegen/app"
	"doegen/internal"
	"doegen/internal/config"
	"doegen/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Sampling
	RNG      ports.RNGPort
	Samplers *sampling.Registry

	// Output adapters
	Exporters      map[string]ports.TableExporter
	PairPlotter    *chart.PairPlotter
	EChartsPlotter *chart.EChartsPlotter

	// Services
	DesignService *app.DesignService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level)).With("Container"),
	}
	internal.DefaultLogger = internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))

	c.initSampling()
	c.initOutputs()

	if _, err := c.Samplers.Get(cfg.LHS.Sampler); err != nil {
		return nil, fmt.Errorf("default sampler: %w", err)
	}

	c.DesignService = app.NewDesignService(c.Samplers, c.Exporters["csv"], c.PairPlotter, app.DesignServiceConfig{
		DefaultSampler: cfg.LHS.Sampler,
		DefaultSeed:    cfg.LHS.Seed,
		MaxDOERows:     cfg.DOE.MaxRows,
		MaxSamples:     cfg.LHS.MaxSamples,
		ArchiveDir:     cfg.Output.Dir,
	})

	c.Logger.Info("Container initialized: samplers=%v palette=%s archive=%q",
		c.Samplers.Names(), c.PairPlotter.Palette.Name, cfg.Output.Dir)
	return c, nil
}

func (c *Container) initSampling() {
	c.RNG = sampling.NewRNGAdapter()
	c.Samplers = sampling.NewDefaultRegistry(c.RNG,
		c.Config.LHS.MDUScale, c.Config.LHS.MDUNeighbours, c.Config.LHS.MaxSamples)
}

func (c *Container) initOutputs() {
	xlsx := excel.DefaultConfig()
	if c.Config.Output.SheetName != "" {
		xlsx.Sheet = c.Config.Output.SheetName
	}
	c.Exporters = excel.Exporters(xlsx)
	c.PairPlotter = chart.NewPairPlotter(c.Config.Output.Palette)
	c.EChartsPlotter = chart.NewEChartsPlotter(c.Config.Output.Palette, c.Config.Output.AssetsHost)
}

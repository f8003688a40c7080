package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"doegen/adapters/excel"
	"doegen/app"
	"doegen/domain/design"
	"doegen/internal/config"
	"doegen/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "doegen-cli",
		Short:         "Generate DOE and Latin Hypercube design tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newDOECmd(),
		newLHSCmd(),
		newSamplersCmd(),
	)
	return rootCmd
}

// outputFlags are shared by every generating command
type outputFlags struct {
	factors     []string
	factorsFile string
	out         string
	xlsx        string
}

func (o *outputFlags) register(cmd *cobra.Command, example string) {
	cmd.Flags().StringArrayVar(&o.factors, "factor", nil, "Factor definition, repeatable (e.g. "+example+")")
	cmd.Flags().StringVar(&o.factorsFile, "factors-file", "", "CSV or XLSX sheet of factor definitions")
	cmd.Flags().StringVar(&o.out, "out", "", "CSV output path (stdout when neither --out nor --xlsx is set)")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "XLSX output path")
}

func newDOECmd() *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "doe",
		Short: "Enumerate every combination of factor levels",
		Long: `Enumerate the full factorial of the given factors. The last factor varies fastest.

Example: doegen-cli doe --factor 'A=1,2' --factor 'B=x,y,z' --out doe.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			factors, err := collectFactors(flags, design.ModeDOE)
			if err != nil {
				return err
			}

			run, err := c.DesignService.GenerateDOE(cmd.Context(), app.DOERequest{Factors: factors})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Number of runs: %d\n", run.Table.Len())
			return writeOutputs(cmd.Context(), cmd.OutOrStdout(), c, run, flags)
		},
	}

	flags.register(cmd, "'A=1,2'")
	return cmd
}

func newLHSCmd() *cobra.Command {
	var flags outputFlags
	var samples int
	var seed int64
	var sampler string
	var plotPath string

	cmd := &cobra.Command{
		Use:   "lhs",
		Short: "Draw a Latin Hypercube sample inside factor bounds",
		Long: `Draw a space-filling sample of the given size. Each factor is a min,max pair.

Example: doegen-cli lhs --factor 'height=50,200' --factor 'width=10,20' --samples 200 --plot lhs.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			factors, err := collectFactors(flags, design.ModeLHS)
			if err != nil {
				return err
			}

			req := app.LHSRequest{Factors: factors, Samples: c.Config.LHS.DefaultSamples, Sampler: sampler}
			if cmd.Flags().Changed("samples") {
				req.Samples = samples
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			run, err := c.DesignService.GenerateLHS(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d samples (%s, seed %d)\n", run.Table.Len(), run.Sampler, run.Seed)

			if err := writeOutputs(cmd.Context(), cmd.OutOrStdout(), c, run, flags); err != nil {
				return err
			}
			if plotPath != "" {
				return writePlot(plotPath, c, run)
			}
			return nil
		},
	}

	flags.register(cmd, "'height=50,200'")
	cmd.Flags().IntVar(&samples, "samples", 200, "Number of samples")
	cmd.Flags().Int64Var(&seed, "seed", 777, "Random seed for reproducible samples")
	cmd.Flags().StringVar(&sampler, "sampler", "", "Sampler: lhsmdu or lhs (default from LHS_SAMPLER)")
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write the scatter matrix PNG to this path")

	return cmd
}

func newSamplersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samplers",
		Short: "List available samplers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			for _, name := range c.Samplers.Names() {
				marker := " "
				if name == c.DesignService.DefaultSampler() {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func loadContainer() (*container.Container, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return container.New(cfg)
}

// collectFactors merges factors from --factors-file with --factor flags,
// file entries first
func collectFactors(flags outputFlags, mode design.Mode) ([]design.Factor, error) {
	var factors []design.Factor
	if flags.factorsFile != "" {
		fromFile, err := excel.ReadFactors(flags.factorsFile, mode)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", flags.factorsFile, err)
		}
		factors = append(factors, fromFile...)
	}
	if len(flags.factors) == 0 {
		return factors, nil
	}

	names := make([]string, len(flags.factors))
	raws := make([]string, len(flags.factors))
	for i, f := range flags.factors {
		name, raw, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("factor %q must look like name=values", f)
		}
		names[i] = strings.TrimSpace(name)
		raws[i] = raw
	}

	var fromFlags []design.Factor
	var err error
	if mode == design.ModeDOE {
		fromFlags, err = design.BuildDOEFactors(names, raws)
	} else {
		fromFlags, err = design.BuildLHSFactors(names, raws)
	}
	if err != nil {
		return nil, err
	}
	return append(factors, fromFlags...), nil
}

// writeOutputs writes the requested files concurrently, or CSV to stdout
// when no file was requested
func writeOutputs(ctx context.Context, stdout io.Writer, c *container.Container, run *app.DesignRun, flags outputFlags) error {
	var targets []excel.Target
	if flags.out != "" {
		targets = append(targets, excel.Target{Path: flags.out, Exporter: c.Exporters["csv"]})
	}
	if flags.xlsx != "" {
		targets = append(targets, excel.Target{Path: flags.xlsx, Exporter: c.Exporters["xlsx"]})
	}
	if len(targets) == 0 {
		return c.Exporters["csv"].Export(stdout, run.Table)
	}
	return excel.WriteAll(ctx, run.Table, targets...)
}

func writePlot(path string, c *container.Container, run *app.DesignRun) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := c.PairPlotter.Render(f, run.Table, run.ArchiveBase); err != nil {
		f.Close()
		return fmt.Errorf("failed to render scatter matrix: %w", err)
	}
	return f.Close()
}

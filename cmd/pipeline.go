package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/asenetcky/complementary-suppression/internal/config"
	"github.com/asenetcky/complementary-suppression/internal/prepare"
	"github.com/asenetcky/complementary-suppression/internal/suppress"
	"github.com/asenetcky/complementary-suppression/internal/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig decodes viper state into a Config and validates the
// suppression settings.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Suppression.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// addPrepareFlags registers the preprocessing flags shared by commands
// that run suppression.
func addPrepareFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("pivot-ids", nil, "id columns kept when pivoting long data to wide")
	cmd.Flags().String("pivot-names", "", "column whose values become the new count columns")
	cmd.Flags().String("pivot-values", "", "column holding the counts to pivot")
	cmd.Flags().String("total", "", "append a row-total column with this name")
	cmd.Flags().StringArray("ratio", nil, `append a percentage column, "name=numerator/denominator" (repeatable)`)
}

// applyPrepareFlags overrides configured preprocessing with flags that were
// set on the command line.
func applyPrepareFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("pivot-ids") {
		cfg.Prepare.Pivot.IDs, _ = flags.GetStringSlice("pivot-ids")
	}
	if flags.Changed("pivot-names") {
		cfg.Prepare.Pivot.Names, _ = flags.GetString("pivot-names")
	}
	if flags.Changed("pivot-values") {
		cfg.Prepare.Pivot.Values, _ = flags.GetString("pivot-values")
	}
	if flags.Changed("total") {
		cfg.Prepare.Total, _ = flags.GetString("total")
	}
	if flags.Changed("ratio") {
		specs, _ := flags.GetStringArray("ratio")
		cfg.Prepare.Ratios = nil
		for _, spec := range specs {
			r, err := parseRatio(spec)
			if err != nil {
				return err
			}
			cfg.Prepare.Ratios = append(cfg.Prepare.Ratios, r)
		}
	}
	return nil
}

func parseRatio(spec string) (config.RatioConfig, error) {
	name, expr, ok := strings.Cut(spec, "=")
	if !ok {
		return config.RatioConfig{}, fmt.Errorf("invalid --ratio %q: want name=numerator/denominator", spec)
	}
	num, den, ok := strings.Cut(expr, "/")
	if !ok || name == "" || num == "" || den == "" {
		return config.RatioConfig{}, fmt.Errorf("invalid --ratio %q: want name=numerator/denominator", spec)
	}
	return config.RatioConfig{
		Name:        strings.TrimSpace(name),
		Numerator:   strings.TrimSpace(num),
		Denominator: strings.TrimSpace(den),
	}, nil
}

// run is one suppressed file.
type run struct {
	source   *table.Table
	before   *suppress.Table
	after    *suppress.Table
	result   *suppress.Result
	rendered *table.Table
	seed     uint64
}

// suppressFile reads, prepares and suppresses a single file.
func suppressFile(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) (*run, error) {
	delim, err := table.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}

	src, err := table.ReadFile(path, delim)
	if err != nil {
		return nil, err
	}

	src, columns, err := prepareTable(src, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s := cfg.Suppression
	tbl, err := suppress.Load(src, columns, s.MaskSymbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	timeout, err := s.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rng, seed := s.NewRand()
	logger = logger.With("file", path)
	logger.Info("suppressing", "rows", tbl.Rows(), "columns", len(columns), "cell_bound", s.CellBound, "seed", seed)

	before := tbl.Clone()
	result, err := suppress.Run(ctx, tbl, suppress.Options{
		CellBound:     s.CellBound,
		Rand:          rng,
		MaxIterations: s.MaxIterations,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("suppressed", "primary", result.Primary, "complementary", len(result.Repairs), "iterations", result.Iterations)

	rendered := tbl.Render(src, s.MaskSymbol)
	if err := deriveRatios(rendered, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &run{
		source:   src,
		before:   before,
		after:    tbl,
		result:   result,
		rendered: rendered,
		seed:     seed,
	}, nil
}

// prepareTable applies pivot and total preprocessing and returns the
// sensitive columns to suppress.
func prepareTable(src *table.Table, cfg *config.Config) (*table.Table, []string, error) {
	p := cfg.Prepare
	columns := cfg.Suppression.Columns

	if p.Pivot.Enabled() {
		wide, err := prepare.Pivot(src, p.Pivot.IDs, p.Pivot.Names, p.Pivot.Values)
		if err != nil {
			return nil, nil, err
		}
		src = wide
		if len(columns) == 0 {
			columns = append([]string(nil), wide.Header[len(p.Pivot.IDs):]...)
		}
	}

	if len(columns) == 0 {
		return nil, nil, &suppress.ConfigurationError{Field: "columns", Reason: "no sensitive columns given (use --columns)"}
	}

	if p.Total != "" {
		if err := prepare.AddTotal(src, columns, p.Total); err != nil {
			return nil, nil, err
		}
	}

	return src, columns, nil
}

// deriveRatios appends the configured percentage columns to a rendered
// table. Any operand masked by suppression masks the percentage too.
func deriveRatios(rendered *table.Table, cfg *config.Config) error {
	s := cfg.Suppression
	for _, r := range cfg.Prepare.Ratios {
		ratio := prepare.Ratio{Name: r.Name, Numerator: r.Numerator, Denominator: r.Denominator}
		if err := prepare.AddRatio(rendered, ratio, s.CellBound, s.MaskSymbol); err != nil {
			return err
		}
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

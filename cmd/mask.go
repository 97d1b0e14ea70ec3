package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/asenetcky/complementary-suppression/internal/config"
	"github.com/asenetcky/complementary-suppression/internal/output"
	"github.com/asenetcky/complementary-suppression/internal/table"
	"github.com/spf13/cobra"
)

var maskCmd = &cobra.Command{
	Use:   "mask [flags] <file>...",
	Short: "Suppress small counts and their complements",
	Long: `Mask every nonzero count at or below the bound, then mask the smallest
remaining counts until no row or sensitive column has exactly one masked
cell. The table keeps its shape and order; masked cells hold the symbol.

Long data can be pivoted to one column per category first, and a total
column can be added before suppression. Percentage columns are derived from
the suppressed table, so a masked operand masks the percentage.

Examples:
  compsup mask -c male,female counts.csv
  compsup mask -c male,female --seed 42 -o public.csv counts.csv
  compsup mask --pivot-ids year,county --pivot-names sex --pivot-values n long.csv
  compsup mask -c deaths,cases --ratio "cfr=deaths/cases" counts.csv
  compsup mask -c cases -o out/ data/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMask,
}

func init() {
	maskCmd.Flags().StringP("output", "o", "", "write to this file (or directory, for several inputs) instead of stdout")
	maskCmd.Flags().Bool("no-color", false, "disable colored output")
	addPrepareFlags(maskCmd)

	rootCmd.AddCommand(maskCmd)
}

func runMask(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyPrepareFlags(cmd, cfg); err != nil {
		return err
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}
	multiFile := len(files) > 1

	if multiFile && outPath != "" {
		info, err := os.Stat(outPath)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("--output must be an existing directory when masking %d files", len(files))
		}
		seen := make(map[string]string, len(files))
		for _, path := range files {
			base := filepath.Base(path)
			if prev, ok := seen[base]; ok {
				return fmt.Errorf("%s and %s would both be written to %s", prev, path, filepath.Join(outPath, base))
			}
			seen[base] = path
		}
	}

	delim, err := table.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return err
	}
	opts := output.TableOptions{Delimiter: delim, MaskSymbol: cfg.Suppression.MaskSymbol}
	if noColor {
		opts.Color = output.ColorNever
	}

	logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	format := output.ParseFormat(cfg.Format)

	// Every file is suppressed before anything is written, so a failure
	// leaves no partial output behind.
	runs := make([]*run, len(files))
	for i, path := range files {
		r, err := suppressFile(commandContext(cmd), cfg, path, logger)
		if err != nil {
			return err
		}
		runs[i] = r
	}

	if outPath == "" && multiFile && format == output.FormatJSON {
		tables := make([]*table.Table, len(runs))
		for i, r := range runs {
			tables[i] = r.rendered
		}
		return output.New(cmd.OutOrStdout(), format).WriteTablesJSON(files, tables)
	}

	for i, path := range files {
		switch {
		case outPath == "":
			if multiFile {
				fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", path)
			}
			if err := output.New(cmd.OutOrStdout(), format).WriteTable(runs[i].rendered, opts); err != nil {
				return err
			}
		case multiFile:
			dst := filepath.Join(outPath, filepath.Base(path))
			if err := writeTableFile(dst, format, runs[i].rendered, opts); err != nil {
				return err
			}
		default:
			if err := writeTableFile(outPath, format, runs[i].rendered, opts); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeTableFile writes t to path through a temporary sibling so readers
// never see a half-written table.
func writeTableFile(path string, format output.Format, t *table.Table, opts output.TableOptions) error {
	opts.Color = output.ColorNever

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := output.New(tmp, format).WriteTable(t, opts); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

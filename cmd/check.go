package cmd

import (
	"fmt"

	"github.com/asenetcky/complementary-suppression/internal/config"
	"github.com/asenetcky/complementary-suppression/internal/output"
	"github.com/asenetcky/complementary-suppression/internal/suppress"
	"github.com/asenetcky/complementary-suppression/internal/table"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file>...",
	Short: "Verify that a suppressed table is safe to publish",
	Long: `Check an already suppressed table: no visible nonzero count may be at
or below the bound, and no row or sensitive column may hold exactly one
masked cell. Cells equal to the mask symbol count as masked.

Exits with an error when any file fails.

Examples:
  compsup check -c male,female public.csv
  compsup check -c cases --symbol "<11" --bound 10 --format json public.csv`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Suppression.Columns) == 0 {
		return &suppress.ConfigurationError{Field: "columns", Reason: "no sensitive columns given (use --columns)"}
	}

	delim, err := table.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return err
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	colorMode := output.ColorAuto
	if noColor {
		colorMode = output.ColorNever
	}
	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Format))

	failed := 0
	for _, path := range files {
		src, err := table.ReadFile(path, delim)
		if err != nil {
			return err
		}
		tbl, err := suppress.Load(src, cfg.Suppression.Columns, cfg.Suppression.MaskSymbol)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		problems := suppress.Verify(tbl, cfg.Suppression.CellBound)
		if len(problems) > 0 {
			failed++
		}
		if err := writer.WriteProblems(path, problems, colorMode); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed the suppression check", failed, len(files))
	}
	return nil
}

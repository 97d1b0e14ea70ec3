package cmd

import (
	"fmt"

	"github.com/asenetcky/complementary-suppression/internal/config"
	"github.com/asenetcky/complementary-suppression/internal/output"
	"github.com/asenetcky/complementary-suppression/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file>",
	Short: "Show what suppression would hide",
	Long: `Run suppression without writing the table and report how many cells
were masked by the threshold and by complementary repair, and what share
of the total count ended up hidden.

Examples:
  compsup stats -c male,female counts.csv
  compsup stats -c male,female --format table counts.csv
  compsup stats -c male,female --format json --seed 7 counts.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	addPrepareFlags(statsCmd)

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyPrepareFlags(cmd, cfg); err != nil {
		return err
	}

	logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	r, err := suppressFile(commandContext(cmd), cfg, args[0], logger)
	if err != nil {
		return err
	}

	summary := report.Summarize(r.before, r.after, r.result)
	format := output.ParseFormat(cfg.Format)
	if format != output.FormatJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "File: %s\nSeed: %d\n", args[0], r.seed)
	}
	return output.New(cmd.OutOrStdout(), format).WriteSummary(summary)
}

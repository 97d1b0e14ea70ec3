package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asenetcky/complementary-suppression/internal/config"
	"github.com/asenetcky/complementary-suppression/internal/output"
	"github.com/asenetcky/complementary-suppression/internal/table"
	"github.com/asenetcky/complementary-suppression/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Re-run suppression whenever a file changes",
	Long: `Watch a count table and write a freshly suppressed copy every time it
is saved. Editors that save by replacing the file are followed.

A run that fails (for example a row with no repair candidate) is reported
and the previous output is left in place.

Examples:
  compsup watch -c male,female -o public.csv counts.csv
  compsup watch -c cases --seed 1 --debounce 1s -o public.csv counts.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "file to (re)write with the suppressed table")
	watchCmd.Flags().Duration("debounce", 200*time.Millisecond, "quiet period after a change before re-running")
	_ = watchCmd.MarkFlagRequired("output")
	addPrepareFlags(watchCmd)

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	outPath, _ := cmd.Flags().GetString("output")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	if outPath == "" {
		return fmt.Errorf("--output is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyPrepareFlags(cmd, cfg); err != nil {
		return err
	}
	delim, err := table.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return err
	}

	logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	format := output.ParseFormat(cfg.Format)
	opts := output.TableOptions{Delimiter: delim, MaskSymbol: cfg.Suppression.MaskSymbol}

	onChange := func(ctx context.Context) error {
		r, err := suppressFile(ctx, cfg, filePath, logger)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: not updated: %v\n", outPath, err)
			return err
		}
		if err := writeTableFile(outPath, format, r.rendered, opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: wrote %d rows (%d primary, %d complementary)\n",
			outPath, r.rendered.Len(), r.result.Primary, len(r.result.Repairs))
		return nil
	}

	w := watch.New(watch.Options{
		FilePath: filePath,
		Debounce: debounce,
		OnChange: onChange,
		Logger:   logger,
	})

	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return w.Run(ctx)
}

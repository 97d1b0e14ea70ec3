package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newWatchTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "watch"}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.Flags().StringP("output", "o", "", "")
	cmd.Flags().Duration("debounce", 20*time.Millisecond, "")
	addPrepareFlags(cmd)
	return cmd
}

func TestWatchWritesOutput(t *testing.T) {
	resetConfig(t, map[string]interface{}{
		"suppression.columns":    []string{"male", "female"},
		"suppression.cell_bound": 5,
	})
	dir := t.TempDir()
	file := writeTempFile(t, dir, "counts.csv", countsCSV)
	dst := filepath.Join(dir, "public.csv")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newWatchTestCmd(&bytes.Buffer{})
	cmd.SetContext(ctx)
	_ = cmd.Flags().Set("output", dst)

	errCh := make(chan error, 1)
	go func() {
		errCh <- runWatch(cmd, []string{file})
	}()

	deadline := time.Now().Add(3 * time.Second)
	for {
		got, err := os.ReadFile(dst)
		if err == nil && string(got) == maskedCSV {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("output never written, last read = %q, %v", got, err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("runWatch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runWatch() did not return after cancel")
	}
}

func TestWatchRequiresOutput(t *testing.T) {
	resetConfig(t, map[string]interface{}{"suppression.columns": []string{"male"}})
	file := writeTempFile(t, t.TempDir(), "counts.csv", countsCSV)

	if err := runWatch(newWatchTestCmd(&bytes.Buffer{}), []string{file}); err == nil {
		t.Fatal("expected error without --output")
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	if out.String() != "compsup dev (commit: none, built: unknown)\n" {
		t.Errorf("version output = %q", out.String())
	}
}

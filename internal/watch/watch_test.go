package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counts.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return path
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func startWatcher(t *testing.T, opts Options) (cancel func() error) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- New(opts).Run(ctx)
	}()
	return func() error {
		stop()
		select {
		case err := <-errCh:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop after cancel")
			return nil
		}
	}
}

func TestWatcher_RunsOnStartAndChange(t *testing.T) {
	path := createTempFile(t, "a,b\n1,2\n")
	var calls atomic.Int32

	stop := startWatcher(t, Options{
		FilePath: path,
		Debounce: 50 * time.Millisecond,
		OnChange: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	if !waitFor(t, time.Second, func() bool { return calls.Load() == 1 }) {
		t.Fatalf("expected initial run, got %d calls", calls.Load())
	}

	if err := os.WriteFile(path, []byte("a,b\n3,4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 2 }) {
		t.Fatalf("expected a run after write, got %d calls", calls.Load())
	}

	if err := stop(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	path := createTempFile(t, "a\n1\n")
	var calls atomic.Int32

	stop := startWatcher(t, Options{
		FilePath: path,
		Debounce: 150 * time.Millisecond,
		OnChange: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})
	defer stop()

	waitFor(t, time.Second, func() bool { return calls.Load() == 1 })

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := f.WriteString("2\n"); err != nil {
			t.Fatal(err)
		}
	}
	f.Close()

	waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 2 })
	time.Sleep(400 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("expected burst to coalesce into one run, got %d runs", got)
	}
}

func TestWatcher_FollowsReplacedFile(t *testing.T) {
	path := createTempFile(t, "a\n1\n")
	var calls atomic.Int32

	stop := startWatcher(t, Options{
		FilePath: path,
		Debounce: 50 * time.Millisecond,
		OnChange: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})
	defer stop()

	waitFor(t, time.Second, func() bool { return calls.Load() == 1 })

	// Atomic save: write a sibling and rename it over the original.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte("a\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 2 }) {
		t.Fatalf("expected run after replace, got %d", calls.Load())
	}

	before := calls.Load()
	if err := os.WriteFile(path, []byte("a\n3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() > before }) {
		t.Fatal("expected new file to be watched after replace")
	}
}

func TestWatcher_FileGone(t *testing.T) {
	path := createTempFile(t, "a\n1\n")

	errCh := make(chan error, 1)
	go func() {
		errCh <- New(Options{
			FilePath: path,
			Reappear: 100 * time.Millisecond,
			OnChange: func(ctx context.Context) error { return nil },
		}).Run(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrFileGone) {
			t.Errorf("Run() error = %v, want ErrFileGone", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not give up on removed file")
	}
}

func TestWatcher_KeepsWatchingAfterFailure(t *testing.T) {
	path := createTempFile(t, "a\n1\n")
	var calls atomic.Int32

	stop := startWatcher(t, Options{
		FilePath: path,
		Debounce: 50 * time.Millisecond,
		OnChange: func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("no repair candidate")
		},
	})

	waitFor(t, time.Second, func() bool { return calls.Load() == 1 })
	if err := os.WriteFile(path, []byte("a\n2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 2 }) {
		t.Fatalf("expected a second run despite the first failing, got %d", calls.Load())
	}

	if err := stop(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestWatcher_MissingFile(t *testing.T) {
	w := New(Options{
		FilePath: filepath.Join(t.TempDir(), "missing.csv"),
		OnChange: func(ctx context.Context) error { return nil },
	})
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

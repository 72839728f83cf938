package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"go.dw1.io/doclink/internal/logging"
)

func TestNewDefaultsDebounce(t *testing.T) {
	w, err := New([]string{"a.md"}, 0, logging.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	abs, err := filepath.Abs("a.md")
	require.NoError(t, err)
	assert.Contains(t, w.files, abs)
	assert.Contains(t, w.dirs, filepath.Dir(abs))
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")

	w, err := New([]string{target}, time.Millisecond, logging.NewNullLogger())
	require.NoError(t, err)

	assert.True(t, w.relevant(fsnotify.Event{Name: target, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: target, Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: target, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.md"), Op: fsnotify.Write}))
}

func TestRunCallsActionOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(target, []byte("one"), 0o644))

	w, err := New([]string{target}, 20*time.Millisecond, logging.NewNullLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() error {
			calls.Add(1)
			return nil
		})
	}()

	assert.Eventually(t, func() bool {
		// Keep writing until the watcher is registered and picks a change up.
		_ = os.WriteFile(target, []byte(time.Now().String()), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRunMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New([]string{filepath.Join(t.TempDir(), "nope", "doc.md")}, 0, logging.NewNullLogger())
	require.NoError(t, err)

	err = w.Run(context.Background(), func() error { return nil })
	assert.Error(t, err)
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDebouncer_CoalescesCalls(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Debounce(func() { calls.Add(1) })
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Debounce(func() { calls.Add(1) })
	d.Cancel()
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())

	d.Immediate(func() { calls.Add(1) })
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_DeliversReload(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	updated := DefaultConfig()
	updated.UI.Theme = "dark"
	require.NoError(t, updated.Save(path))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, "dark", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcher_SkipsInvalidReload(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: neon\n"), 0644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	select {
	case <-w.Updates():
		t.Fatal("reload triggered by an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
}

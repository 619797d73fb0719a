package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scrwatch/internal/adapters/watcher"
	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/scrwatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const testInterval = 20 * time.Millisecond

func newCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range domain.CacheFiles() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	return dir
}

func newWatcher(t *testing.T) *watcher.Watcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return watcher.NewWatcher(mockLogger)
}

func appendTo(t *testing.T, path, data string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func receive(t *testing.T, events <-chan ports.WatchEvent) ports.WatchEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no event received")
	}
	return ports.WatchEvent{}
}

func TestWatcher_MissingFile(t *testing.T) {
	dir := newCacheDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "data_3")))

	events, err := newWatcher(t).Watch(context.Background(), dir, domain.CacheFiles(), testInterval)
	require.ErrorIs(t, err, domain.ErrWatchRegisterFailed)
	assert.Nil(t, events)
	assert.Contains(t, err.Error(), "cache file not watchable")
}

func TestWatcher_ReportsWrite(t *testing.T) {
	dir := newCacheDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := newWatcher(t).Watch(ctx, dir, domain.CacheFiles(), testInterval)
	require.NoError(t, err)

	appendTo(t, filepath.Join(dir, "data_1"), "more")

	ev := receive(t, events)
	assert.Equal(t, filepath.Join(dir, "data_1"), ev.Path)
	assert.Equal(t, ports.OpWrite, ev.Operation)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := newCacheDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := newWatcher(t).Watch(ctx, dir, domain.CacheFiles(), testInterval)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f_000001"), []byte("long key"), 0o600))
	select {
	case ev := <-events:
		require.Failf(t, "unexpected event", "%+v", ev)
	case <-time.After(10 * testInterval):
	}

	appendTo(t, filepath.Join(dir, "index"), "more")
	ev := receive(t, events)
	assert.Equal(t, filepath.Join(dir, "index"), ev.Path)
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	dir := newCacheDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := newWatcher(t).Watch(ctx, dir, domain.CacheFiles(), testInterval)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "data_0")))

	ev := receive(t, events)
	assert.Equal(t, filepath.Join(dir, "data_0"), ev.Path)
	assert.Equal(t, ports.OpRemove, ev.Operation)
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	dir := newCacheDir(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := newWatcher(t).Watch(ctx, dir, domain.CacheFiles(), testInterval)
	require.NoError(t, err)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, testInterval)
}

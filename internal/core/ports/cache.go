package ports

import (
	"context"
	"iter"
	"time"

	"go.trai.ch/scrwatch/internal/core/domain"
)

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

// SnapshotReader decodes the browser cache stored in a directory.
type SnapshotReader interface {
	// Read lazily yields every entry of the cache in dir. The first non-nil
	// error ends the sequence and invalidates everything yielded before it.
	Read(dir string) iter.Seq2[domain.CacheEntry, error]
}

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the path of the file that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// FileWatcher delivers change notifications for files in a directory.
type FileWatcher interface {
	// Watch registers interest in each of names inside dir. Registration is
	// all-or-nothing. Changes are reported at most once per interval. The
	// returned channel is closed once ctx is done.
	Watch(ctx context.Context, dir string, names []string, interval time.Duration) (<-chan WatchEvent, error)
}

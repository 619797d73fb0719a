package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheUnstable is returned when consecutive cache reads never agree within the retry budget.
	ErrCacheUnstable = zerr.New("cache snapshot did not stabilize")

	// ErrCacheReadFailed is returned when the cache files cannot be decoded.
	ErrCacheReadFailed = zerr.New("failed to read cache snapshot")

	// ErrCacheCorrupt is returned when a cache structure fails validation.
	ErrCacheCorrupt = zerr.New("cache structure is corrupt")

	// ErrWatchRegisterFailed is returned when a required cache file cannot be watched.
	ErrWatchRegisterFailed = zerr.New("failed to register cache file watch")

	// ErrWatcherClosed is returned when the notification source stops unexpectedly.
	ErrWatcherClosed = zerr.New("file watcher closed")

	// ErrDeliveryFailed is reported when a sink rejects an event or request.
	ErrDeliveryFailed = zerr.New("failed to deliver to sink")

	// ErrSinkPanicked is reported when a sink panics during delivery.
	ErrSinkPanicked = zerr.New("sink panicked")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrHomeDirUnknown is returned when the default cache directory cannot be resolved.
	ErrHomeDirUnknown = zerr.New("cannot resolve home directory")

	// ErrInvalidOutputMode is returned when an unknown output mode is requested.
	ErrInvalidOutputMode = zerr.New("invalid output mode, expected 'auto', 'pretty' or 'json'")

	// ErrNoURLs is returned when classify is invoked without arguments.
	ErrNoURLs = zerr.New("no urls specified")
)

package domain

import "time"

// Defaults for the watch pipeline.
const (
	DefaultProcessName    = "StarCraft.exe"
	DefaultPollInterval   = time.Second
	DefaultNotifyInterval = 50 * time.Millisecond
	DefaultMaxAttempts    = 10
	DefaultInitialBackoff = 10 * time.Millisecond
	DefaultMaxBackoff     = 250 * time.Millisecond
	DefaultWindowCapacity = 30
	DefaultChatLookback   = 5
	DefaultCacheSubdir    = "AppData/Local/Temp/blizzard_browser_cache"
	DefaultConfigFileName = "scrwatch.yaml"
)

// CacheFiles returns the cache files whose changes trigger a sync.
func CacheFiles() []string {
	return []string{"index", "data_0", "data_1", "data_2", "data_3"}
}

// Config is the resolved runtime configuration.
type Config struct {
	Cache   CacheConfig
	Process ProcessConfig
	Deriver DeriverConfig
}

// CacheConfig configures the cache file watcher.
type CacheConfig struct {
	Dir            string
	NotifyInterval time.Duration
	Retry          RetryConfig
}

// RetryConfig bounds the snapshot consistency loop.
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// ProcessConfig configures the process and port watcher.
type ProcessConfig struct {
	Name         string
	PollInterval time.Duration
}

// DeriverConfig configures the event window.
type DeriverConfig struct {
	WindowCapacity int
	ChatLookback   int
}

// DefaultConfig returns the built-in configuration. Cache.Dir is left empty
// and resolved against the user's home directory by the loader.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			NotifyInterval: DefaultNotifyInterval,
			Retry: RetryConfig{
				MaxAttempts:    DefaultMaxAttempts,
				InitialBackoff: DefaultInitialBackoff,
				MaxBackoff:     DefaultMaxBackoff,
			},
		},
		Process: ProcessConfig{
			Name:         DefaultProcessName,
			PollInterval: DefaultPollInterval,
		},
		Deriver: DeriverConfig{
			WindowCapacity: DefaultWindowCapacity,
			ChatLookback:   DefaultChatLookback,
		},
	}
}

package config

import (
	"time"

	"go.trai.ch/scrwatch/internal/core/domain"
)

// File represents the structure of the scrwatch.yaml configuration file.
type File struct {
	Cache   CacheDTO   `yaml:"cache"`
	Process ProcessDTO `yaml:"process"`
	Deriver DeriverDTO `yaml:"deriver"`
}

// CacheDTO is the cache section.
type CacheDTO struct {
	Dir            string        `yaml:"dir"`
	NotifyInterval time.Duration `yaml:"notify_interval"`
	Retry          RetryDTO      `yaml:"retry"`
}

// RetryDTO is the cache.retry section.
type RetryDTO struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// ProcessDTO is the process section.
type ProcessDTO struct {
	Name         string        `yaml:"name"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DeriverDTO is the deriver section.
type DeriverDTO struct {
	WindowCapacity int `yaml:"window_capacity"`
	ChatLookback   int `yaml:"chat_lookback"`
}

// fileFrom seeds a File with cfg so that keys absent from YAML keep their value.
func fileFrom(cfg domain.Config) File {
	return File{
		Cache: CacheDTO{
			Dir:            cfg.Cache.Dir,
			NotifyInterval: cfg.Cache.NotifyInterval,
			Retry: RetryDTO{
				MaxAttempts:    cfg.Cache.Retry.MaxAttempts,
				InitialBackoff: cfg.Cache.Retry.InitialBackoff,
				MaxBackoff:     cfg.Cache.Retry.MaxBackoff,
			},
		},
		Process: ProcessDTO{
			Name:         cfg.Process.Name,
			PollInterval: cfg.Process.PollInterval,
		},
		Deriver: DeriverDTO{
			WindowCapacity: cfg.Deriver.WindowCapacity,
			ChatLookback:   cfg.Deriver.ChatLookback,
		},
	}
}

func (f File) toDomain() domain.Config {
	return domain.Config{
		Cache: domain.CacheConfig{
			Dir:            f.Cache.Dir,
			NotifyInterval: f.Cache.NotifyInterval,
			Retry: domain.RetryConfig{
				MaxAttempts:    f.Cache.Retry.MaxAttempts,
				InitialBackoff: f.Cache.Retry.InitialBackoff,
				MaxBackoff:     f.Cache.Retry.MaxBackoff,
			},
		},
		Process: domain.ProcessConfig{
			Name:         f.Process.Name,
			PollInterval: f.Process.PollInterval,
		},
		Deriver: domain.DeriverConfig{
			WindowCapacity: f.Deriver.WindowCapacity,
			ChatLookback:   f.Deriver.ChatLookback,
		},
	}
}

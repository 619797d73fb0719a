// Package config provides the configuration loader for scrwatch.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var errEmptyHome = errors.New("home directory is empty")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// HomeDir resolves the user's home directory. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, HomeDir: os.UserHomeDir}
}

// Load reads the configuration at path on top of the built-in defaults.
// An empty path or a missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	file := fileFrom(domain.DefaultConfig())

	if path != "" {
		if err := readAndUnmarshalYAML(path, &file); err != nil {
			return nil, err
		}
	}

	cfg := file.toDomain()
	dir, err := l.resolveDir(cfg.Cache.Dir)
	if err != nil {
		return nil, err
	}
	cfg.Cache.Dir = dir

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.Cache.Dir); errors.Is(err, fs.ErrNotExist) && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("cache directory %s does not exist yet", cfg.Cache.Dir))
	}

	return &cfg, nil
}

// resolveDir expands a leading ~ and fills in the default cache location.
func (l *Loader) resolveDir(dir string) (string, error) {
	if dir != "" && dir != "~" && !strings.HasPrefix(dir, "~/") {
		return filepath.Clean(dir), nil
	}

	home, err := l.HomeDir()
	if err != nil || home == "" {
		if err == nil {
			err = errEmptyHome
		}
		return "", zerr.Wrap(err, domain.ErrHomeDirUnknown.Error())
	}

	switch {
	case dir == "":
		return filepath.Join(home, filepath.FromSlash(domain.DefaultCacheSubdir)), nil
	case dir == "~":
		return home, nil
	default:
		return filepath.Join(home, filepath.FromSlash(dir[2:])), nil
	}
}

// Validate checks that every value is usable by the pipeline.
func Validate(cfg domain.Config) error {
	checks := []struct {
		field string
		value any
		ok    bool
	}{
		{"cache.dir", cfg.Cache.Dir, cfg.Cache.Dir != ""},
		{"cache.notify_interval", cfg.Cache.NotifyInterval, cfg.Cache.NotifyInterval > 0},
		{"cache.retry.max_attempts", cfg.Cache.Retry.MaxAttempts, cfg.Cache.Retry.MaxAttempts >= 2},
		{"cache.retry.initial_backoff", cfg.Cache.Retry.InitialBackoff, cfg.Cache.Retry.InitialBackoff > 0},
		{"cache.retry.max_backoff", cfg.Cache.Retry.MaxBackoff, cfg.Cache.Retry.MaxBackoff >= cfg.Cache.Retry.InitialBackoff},
		{"process.name", cfg.Process.Name, cfg.Process.Name != ""},
		{"process.poll_interval", cfg.Process.PollInterval, cfg.Process.PollInterval > 0},
		{"deriver.window_capacity", cfg.Deriver.WindowCapacity, cfg.Deriver.WindowCapacity > 0},
		{"deriver.chat_lookback", cfg.Deriver.ChatLookback, cfg.Deriver.ChatLookback > 0 && cfg.Deriver.ChatLookback <= cfg.Deriver.WindowCapacity},
	}

	for _, c := range checks {
		if c.ok {
			continue
		}
		err := zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "value out of range"), "field", c.field)
		if d, isDuration := c.value.(time.Duration); isDuration {
			return zerr.With(err, "value", d.String())
		}
		return zerr.With(err, "value", c.value)
	}
	return nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is supplied by the user on purpose
	configFile, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}

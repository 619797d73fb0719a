package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scrwatch/internal/adapters/config"
	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, home string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	loader := config.NewLoader(mockLogger)
	loader.HomeDir = func() (string, error) { return home, nil }
	return loader
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_Defaults(t *testing.T) {
	home := t.TempDir()
	loader := newLoader(t, home)

	for _, path := range []string{"", filepath.Join(t.TempDir(), domain.DefaultConfigFileName)} {
		cfg, err := loader.Load(path)
		require.NoError(t, err)

		want := domain.DefaultConfig()
		want.Cache.Dir = filepath.Join(home, "AppData", "Local", "Temp", "blizzard_browser_cache")
		assert.Equal(t, want, *cfg)
	}
}

func TestLoader_Load_Overrides(t *testing.T) {
	cacheDir := t.TempDir()
	path := createFile(t, t.TempDir(), domain.DefaultConfigFileName, `
cache:
  dir: `+cacheDir+`
  notify_interval: 100ms
  retry:
    max_attempts: 4
process:
  name: StarCraft
deriver:
  chat_lookback: 3
`)

	cfg, err := newLoader(t, t.TempDir()).Load(path)
	require.NoError(t, err)

	assert.Equal(t, cacheDir, cfg.Cache.Dir)
	assert.Equal(t, 100*time.Millisecond, cfg.Cache.NotifyInterval)
	assert.Equal(t, 4, cfg.Cache.Retry.MaxAttempts)
	assert.Equal(t, domain.DefaultInitialBackoff, cfg.Cache.Retry.InitialBackoff, "unset keys keep defaults")
	assert.Equal(t, domain.DefaultMaxBackoff, cfg.Cache.Retry.MaxBackoff)
	assert.Equal(t, "StarCraft", cfg.Process.Name)
	assert.Equal(t, domain.DefaultPollInterval, cfg.Process.PollInterval)
	assert.Equal(t, domain.DefaultWindowCapacity, cfg.Deriver.WindowCapacity)
	assert.Equal(t, 3, cfg.Deriver.ChatLookback)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	home := t.TempDir()
	path := createFile(t, t.TempDir(), domain.DefaultConfigFileName, "")

	cfg, err := newLoader(t, home).Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxAttempts, cfg.Cache.Retry.MaxAttempts)
}

func TestLoader_Load_TildeExpansion(t *testing.T) {
	home := t.TempDir()
	path := createFile(t, t.TempDir(), domain.DefaultConfigFileName, "cache:\n  dir: ~/cache\n")

	cfg, err := newLoader(t, home).Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), cfg.Cache.Dir)
}

func TestLoader_Load_WarnsOnMissingCacheDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	missing := filepath.Join(t.TempDir(), "missing")
	mockLogger.EXPECT().Warn("cache directory " + missing + " does not exist yet").Times(1)

	path := createFile(t, t.TempDir(), domain.DefaultConfigFileName, "cache:\n  dir: "+missing+"\n")
	_, err := config.NewLoader(mockLogger).Load(path)
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
		isErr   error
	}{
		{
			name:    "malformed yaml",
			content: "cache: [",
			wantMsg: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "unknown key",
			content: "cache:\n  directory: /tmp\n",
			wantMsg: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "bad duration",
			content: "process:\n  poll_interval: soon\n",
			wantMsg: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "single attempt",
			content: "cache:\n  retry:\n    max_attempts: 1\n",
			isErr:   domain.ErrInvalidConfig,
		},
		{
			name:    "lookback beyond window",
			content: "deriver:\n  window_capacity: 4\n  chat_lookback: 5\n",
			isErr:   domain.ErrInvalidConfig,
		},
		{
			name:    "empty process name",
			content: "process:\n  name: \"\"\n",
			isErr:   domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createFile(t, t.TempDir(), domain.DefaultConfigFileName, tt.content)

			cfg, err := newLoader(t, t.TempDir()).Load(path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestLoader_Load_ReadFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := newLoader(t, t.TempDir()).Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
}

func TestLoader_Load_HomeUnknown(t *testing.T) {
	loader := newLoader(t, "")
	_, err := loader.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrHomeDirUnknown.Error())

	loader.HomeDir = func() (string, error) { return "", errors.New("$HOME is not defined") }
	_, err = loader.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$HOME is not defined")
}

func TestValidate(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Cache.Dir = "/cache"
	require.NoError(t, config.Validate(cfg))

	cfg.Cache.Retry.MaxBackoff = time.Millisecond
	err := config.Validate(cfg)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "value out of range")
}

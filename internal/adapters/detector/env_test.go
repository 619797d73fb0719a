package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/scrwatch/internal/adapters/detector"
	"go.trai.ch/scrwatch/internal/core/domain"
)

func TestDetectEnvironment_CI(t *testing.T) {
	for _, ci := range []string{"true", "1"} {
		t.Run("CI="+ci, func(t *testing.T) {
			t.Setenv("CI", ci)
			assert.Equal(t, detector.ModeJSON, detector.DetectEnvironment())
		})
	}
}

func TestDetectEnvironment_NotTerminal(t *testing.T) {
	t.Setenv("CI", "")
	// go test redirects stdout to a pipe.
	assert.Equal(t, detector.ModeJSON, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{"auto respects detection (pretty)", detector.ModePretty, "auto", detector.ModePretty},
		{"auto respects detection (json)", detector.ModeJSON, "auto", detector.ModeJSON},
		{"empty flag respects detection", detector.ModePretty, "", detector.ModePretty},
		{"pretty overrides detection", detector.ModeJSON, "pretty", detector.ModePretty},
		{"json overrides detection", detector.ModePretty, "json", detector.ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detector.ResolveMode(tt.autoDetected, tt.userFlag)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveMode_Invalid(t *testing.T) {
	_, err := detector.ResolveMode(detector.ModePretty, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidOutputMode.Error())
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "pretty", detector.ModePretty.String())
	assert.Equal(t, "json", detector.ModeJSON.String())
}

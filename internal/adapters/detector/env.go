// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents how events are written to stdout.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty forces coloured human-readable lines.
	ModePretty
	// ModeJSON forces one JSON envelope per line.
	ModeJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// Pretty output needs a terminal on stdout outside of CI.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeJSON
	}
	return ModePretty
}

// ResolveMode applies the user's --output-mode flag to auto-detection.
func ResolveMode(autoDetected OutputMode, userFlag string) (OutputMode, error) {
	switch userFlag {
	case "pretty":
		return ModePretty, nil
	case "json":
		return ModeJSON, nil
	case "auto", "":
		return autoDetected, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidOutputMode, "output_mode", userFlag)
	}
}

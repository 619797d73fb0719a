// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Sky    = lipgloss.Color("#0EA5E9")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// EventColor returns the accent color for a wire event name.
func EventColor(name string) lipgloss.Color {
	switch name {
	case "WebServerRunning":
		return Green
	case "WebServerDown":
		return Red
	case "MatchFound":
		return Iris
	case "GameEnded":
		return Yellow
	case "ProfileSelect":
		return Sky
	default:
		return Slate
	}
}

// EventIcon returns the glyph printed before a wire event name.
func EventIcon(name string) string {
	switch name {
	case "WebServerRunning":
		return Dot
	case "WebServerDown":
		return Circle
	case "GameEnded":
		return Check
	default:
		return Arrow
	}
}

// Package tui provides terminal output components for gittyup.
//
// All colors use AdaptiveColor for light/dark terminal support. Status
// displays keep triple redundancy: icon + color + text, so output stays
// readable with colors disabled.
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR
// environment variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/gittyup/gittyup/internal/domain"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for active states and primary text.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for clean repositories and successful operations.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for dirty/diverged repositories and warnings.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failed operations.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for skipped operations and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for
// light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// CheckNoColor respects the NO_COLOR environment variable. Call this at the
// start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors. Returns
// false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return true
}

// StateColors returns the semantic color for each repository state.
func StateColors() map[domain.RepositoryState]lipgloss.AdaptiveColor {
	return map[domain.RepositoryState]lipgloss.AdaptiveColor{
		domain.StateClean:    ColorSuccess,
		domain.StateDirty:    ColorWarning,
		domain.StateAhead:    ColorPrimary,
		domain.StateBehind:   ColorWarning,
		domain.StateDiverged: ColorError,
		domain.StateNoRemote: ColorMuted,
		domain.StateUnknown:  ColorMuted,
	}
}

// StateIcon returns the icon for a given repository state.
func StateIcon(state domain.RepositoryState) string {
	icons := map[domain.RepositoryState]string{
		domain.StateClean:    "✓",
		domain.StateDirty:    "●",
		domain.StateAhead:    "↑",
		domain.StateBehind:   "↓",
		domain.StateDiverged: "⇅",
		domain.StateNoRemote: "○",
		domain.StateUnknown:  "?",
	}
	if icon, ok := icons[state]; ok {
		return icon
	}
	return "?"
}

// StatusIcon returns the icon for a given operation status.
func StatusIcon(status domain.OperationStatus) string {
	icons := map[domain.OperationStatus]string{
		domain.StatusSuccess: "✓",
		domain.StatusWarning: "⚠",
		domain.StatusError:   "✗",
		domain.StatusSkipped: "○",
		domain.StatusTimeout: "⏱",
	}
	if icon, ok := icons[status]; ok {
		return icon
	}
	return "?"
}

// StatusStyle returns the render style for a given operation status.
func StatusStyle(styles *OutputStyles, status domain.OperationStatus) lipgloss.Style {
	switch status {
	case domain.StatusSuccess:
		return styles.Success
	case domain.StatusWarning:
		return styles.Warning
	case domain.StatusError, domain.StatusTimeout:
		return styles.Error
	case domain.StatusSkipped:
		return styles.Dim
	default:
		return styles.Info
	}
}

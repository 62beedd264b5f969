package output

import "github.com/charmbracelet/lipgloss"

// Color palette - single accent color, kept close to default terminal themes.
const (
	ColorGreen    = "34"  // Pass lines, success notices
	ColorRed      = "196" // Fail lines, errors
	ColorYellow   = "220" // Warnings
	ColorWhite    = "255" // Section headers
	ColorGray     = "245" // Secondary text, targets
	ColorDarkGray = "238" // Separators
)

// Styles holds the lipgloss styles used for CLI rendering.
type Styles struct {
	Header  lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warning lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns styled components for TTY output.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	}
}

// NoColorStyles returns unstyled components for piped/plain output.
func NoColorStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Pass:    lipgloss.NewStyle(),
		Fail:    lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

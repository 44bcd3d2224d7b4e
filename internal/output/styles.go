package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Every color used by the CLI is declared here.
var (
	// ColorCyan is used for identifiable nouns: element names, paths, commands.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" file status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "overwritten" file status and advisories.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failures.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (element names, paths, commands).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// File status constants.
const (
	StatusCreated     = "created"
	StatusOverwritten = "overwritten"
	StatusFailed      = "failed"
)

// StatusStyle returns the style for a file status. Unknown statuses are unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusOverwritten:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// Styles groups the styles used by tree rendering.
type Styles struct {
	Bold  lipgloss.Style
	Muted lipgloss.Style
	Noun  lipgloss.Style
}

// GetStyles returns the default styles.
func GetStyles() *Styles {
	return &Styles{
		Bold:  lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Foreground(ColorDimGray),
		Noun:  StyleNoun,
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCommand renders a shell command as a noun.
func FormatCommand(command string) string {
	return StyleNoun.Render(command)
}

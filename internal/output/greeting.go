package output

import (
	"github.com/charmbracelet/lipgloss"
)

// greetingWidth is the wrap width of the greeting text inside the box.
const greetingWidth = 36

// RenderGreeting renders msg inside a rounded box, the way generators greet
// the user before asking questions.
func RenderGreeting(msg string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDimGray).
		Padding(0, 1).
		Width(greetingWidth)

	return box.Render(msg)
}

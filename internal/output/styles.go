package output

import "github.com/charmbracelet/lipgloss"

var (
	shellNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Faint(true)
	branchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

// paint applies style only when color output is enabled.
func paint(style lipgloss.Style, s string, colorEnabled bool) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

package views

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69")).
			MarginBottom(1)

	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	detailStyle = mutedStyle.PaddingLeft(4)
	helpStyle   = mutedStyle.MarginTop(1)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// listRow renders one list entry, marked with a cursor when selected
func listRow(text string, selected bool) string {
	if selected {
		return selectedStyle.Render("▸ "+text) + "\n"
	}
	return itemStyle.Render("  "+text) + "\n"
}

// wrapIndex moves i by delta within [0, n), wrapping at both ends
func wrapIndex(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

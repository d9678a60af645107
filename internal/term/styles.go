package term

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	subtleStyle  = lipgloss.NewStyle().Faint(true)
)

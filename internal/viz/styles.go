package viz

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238"))

	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// seriesStyles cycles per trajectory
var seriesStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func seriesStyle(i int) lipgloss.Style {
	return seriesStyles[i%len(seriesStyles)]
}

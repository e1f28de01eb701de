package tui

import "github.com/charmbracelet/lipgloss"

var (
	cyanBold   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	redBold    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

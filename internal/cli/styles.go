package cli

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for help output.
type Styles struct {
	// Header is the style for section headers (bold).
	Header lipgloss.Style

	// Command is the style for subcommand names (cyan).
	Command lipgloss.Style

	// Flag is the style for flag names (cyan).
	Flag lipgloss.Style

	// Placeholder is the style for positional display names (yellow).
	Placeholder lipgloss.Style
}

// DefaultStyles returns the standard styles for help output.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
	}
}

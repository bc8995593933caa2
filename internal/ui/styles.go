package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for sicpctl output
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - titles, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - on/healthy states
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failures
	WarningColor = lipgloss.Color("#FFA500") // Orange - partial results
	MutedColor   = lipgloss.Color("#626262") // Gray - labels, secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - values
)

// Layout constants
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	MaxContentWidth  = 96 // Maximum content width before capping
	fieldLabelWidth  = 20 // Aligned label column inside status blocks
)

// Shared styles for status block rendering
var (
	// BlockTitleStyle is for the display name in a status block header
	BlockTitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// BlockTargetStyle is for the host:port or serial device next to the name
	BlockTargetStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	// SectionTitleStyle is for section headings inside a block
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// FieldLabelStyle is for the left-hand field names
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(fieldLabelWidth)

	// FieldValueStyle is for field values
	FieldValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// MissingValueStyle is for fields the display did not answer
	MissingValueStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Italic(true)

	// PartialWarningStyle is for the partial-snapshot warning line
	PartialWarningStyle = lipgloss.NewStyle().
				Foreground(WarningColor)

	// PromptStyle is for interactive confirmation prompts
	PromptStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// GetTerminalWidth returns the current terminal width clamped to the
// supported range, falling back to the minimum when stdout is not a
// terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether stdout is attached to a terminal. Styled
// output is reserved for terminals; pipes get plain text.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// BlockBorderStyle returns the border style for status blocks
func BlockBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Padding(0, 2)
}

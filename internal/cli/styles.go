// Package cli provides styled terminal output and prompts for the ledgerlens
// commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette for command output, taken from the TUI default theme.
var (
	AccentColor  = lipgloss.Color("#2563eb")
	SuccessColor = lipgloss.Color("#10b981")
	WarningColor = lipgloss.Color("#f59e0b")
	ErrorColor   = lipgloss.Color("#ef4444")
	MutedColor   = lipgloss.Color("#94a3b8")
	BorderColor  = lipgloss.Color("#334155")
)

var (
	// HeadingStyle renders box titles.
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// TableHeaderStyle renders column headings in listings.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// BoldStyle emphasizes totals and section names.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// SubtleStyle de-emphasizes empty states and footers.
	SubtleStyle = lipgloss.NewStyle().Foreground(MutedColor)

	successStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	warningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	infoStyle    = lipgloss.NewStyle().Foreground(AccentColor)
	promptStyle  = lipgloss.NewStyle().Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	ChartIcon   = "📊"
	FileIcon    = "📄"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return successStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return errorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return warningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return infoStyle.Render(InfoIcon + " " + message)
}

// FormatPrompt formats a question put to the user.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt)
}

// RenderBox draws content under a heading inside a rounded border.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, HeadingStyle.Render(title), "", content))
}

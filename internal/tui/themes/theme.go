// Package themes holds the color schemes of the terminal UI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Faint         lipgloss.Style
	Selected      lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	ChipActive    lipgloss.Style
	ChipInactive  lipgloss.Style
	Card          lipgloss.Style
	Banner        lipgloss.Style
	Label         lipgloss.Style
	LabelFocused  lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

type palette struct {
	primary, accent, success, warning, errorColor, info lipgloss.Color
	foreground, faint, border, surface, onPrimary       lipgloss.Color
}

func build(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Accent:     p.accent,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.errorColor,
		Info:       p.info,
		Foreground: p.foreground,
		Border:     p.border,
		Muted:      p.faint,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.faint),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Faint: lipgloss.NewStyle().
			Foreground(p.faint),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.onPrimary).
			Bold(true),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.onPrimary).
			Background(p.primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.faint).
			Padding(0, 2),
		ChipActive: lipgloss.NewStyle().
			Foreground(p.onPrimary).
			Background(p.accent).
			Padding(0, 1),
		ChipInactive: lipgloss.NewStyle().
			Foreground(p.faint).
			Background(p.surface).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 2),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.onPrimary).
			Background(p.warning).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(p.faint).
			Width(16),
		LabelFocused: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Width(16),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errorColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:    lipgloss.Color("#2563eb"),
	accent:     lipgloss.Color("#10b981"),
	success:    lipgloss.Color("#10b981"),
	warning:    lipgloss.Color("#f59e0b"),
	errorColor: lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
	foreground: lipgloss.Color("#f8fafc"),
	faint:      lipgloss.Color("#94a3b8"),
	border:     lipgloss.Color("#334155"),
	surface:    lipgloss.Color("#1e293b"),
	onPrimary:  lipgloss.Color("#ffffff"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    lipgloss.Color("#89b4fa"),
	accent:     lipgloss.Color("#a6e3a1"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	errorColor: lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
	foreground: lipgloss.Color("#cdd6f4"),
	faint:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	surface:    lipgloss.Color("#313244"),
	onPrimary:  lipgloss.Color("#1e1e2e"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[string]string{
	"Electronics":       "💻",
	"Furniture":         "🛋️",
	"Clothing":          "👕",
	"Kitchen":           "🍳",
	"Books":             "📚",
	"Tools":             "🔧",
	"Art/Decor":         "🖼️",
	"Appliances":        "🔌",
	"Fixtures/Lighting": "💡",
	"HVAC/Systems":      "🌡️",
	"Other":             "📦",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}

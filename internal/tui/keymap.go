package tui

import (
	"github.com/Veraticus/ledgerlens/internal/router"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Tabs      key.Binding
	AltTabs   key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Cycle     key.Binding

	// Add item
	Save          key.Binding
	Appraise      key.Binding
	AttachPhoto   key.Binding
	AttachReceipt key.Binding
	SnapPhoto     key.Binding
	SnapReceipt   key.Binding
	ToggleFacing  key.Binding

	// Inventory
	Search      key.Binding
	Filter      key.Binding
	ClearSearch key.Binding

	// Insurance
	InsuranceReport  key.Binding
	ConveyanceReport key.Binding

	// Settings
	Activate key.Binding
	Confirm  key.Binding
	Cancel   key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tabs: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "switch tab"),
		),
		AltTabs: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"),
			key.WithHelp("alt+1-5", "switch tab"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "change choice"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save item"),
		),
		Appraise: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "AI appraise"),
		),
		AttachPhoto: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "photo from file"),
		),
		AttachReceipt: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "receipt from file"),
		),
		SnapPhoto: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "snap photo"),
		),
		SnapReceipt: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "snap receipt"),
		),
		ToggleFacing: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "flip camera"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear search"),
		),

		InsuranceReport: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insurance PDF"),
		),
		ConveyanceReport: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "real estate PDF"),
		),

		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tabs, k.Back, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tabs, k.AltTabs, k.Back, k.Up, k.Down},
		{k.Save, k.Appraise, k.AttachPhoto, k.AttachReceipt, k.SnapPhoto, k.SnapReceipt, k.ToggleFacing},
		{k.Search, k.Filter, k.ClearSearch, k.InsuranceReport, k.ConveyanceReport},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// viewKeys is the help for a single screen.
type viewKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (v viewKeys) ShortHelp() []key.Binding  { return v.short }
func (v viewKeys) FullHelp() [][]key.Binding { return v.full }

// ForView narrows the help to the bindings that apply on v.
func (k KeyMap) ForView(v router.View) help.KeyMap {
	switch v {
	case router.Details:
		return viewKeys{
			short: []key.Binding{k.Search, k.Filter, k.Up, k.Down, k.Back, k.Help},
			full:  [][]key.Binding{{k.Search, k.Filter, k.ClearSearch}, {k.Up, k.Down}, {k.Tabs, k.Back, k.Quit}},
		}
	case router.Add:
		return viewKeys{
			short: []key.Binding{k.NextField, k.Cycle, k.Save, k.Appraise, k.AttachPhoto, k.SnapPhoto, k.Back},
			full: [][]key.Binding{
				{k.NextField, k.PrevField, k.Cycle, k.Save},
				{k.Appraise, k.AttachPhoto, k.AttachReceipt},
				{k.SnapPhoto, k.SnapReceipt, k.ToggleFacing},
				{k.AltTabs, k.Back, k.ForceQuit},
			},
		}
	case router.Insurance:
		return viewKeys{
			short: []key.Binding{k.InsuranceReport, k.ConveyanceReport, k.Tabs, k.Back, k.Help},
			full:  [][]key.Binding{{k.InsuranceReport, k.ConveyanceReport}, {k.Tabs, k.Back, k.Quit}},
		}
	case router.Settings:
		return viewKeys{
			short: []key.Binding{k.Up, k.Down, k.Activate, k.AltTabs, k.Back},
			full:  [][]key.Binding{{k.Up, k.Down, k.Activate}, {k.Confirm, k.Cancel}, {k.AltTabs, k.Back, k.ForceQuit}},
		}
	default:
		return k
	}
}

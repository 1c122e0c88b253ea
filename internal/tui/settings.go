package tui

import (
	"strconv"

	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Settings rows in focus order.
const (
	settingLimit = iota
	settingReset
	settingClear
	settingCount
)

// settingsAction is what an enter or confirmation on the settings screen
// asks the root model to do.
type settingsAction int

const (
	actionNone settingsAction = iota
	actionSetLimit
	actionResetLimit
	actionClearAll
)

type settingsModel struct {
	theme      themes.Theme
	limitInput textinput.Model
	focus      int
	confirming bool
}

func newSettingsModel(theme themes.Theme) settingsModel {
	in := textinput.New()
	in.Prompt = "$ "
	in.Placeholder = "100,000"
	in.CharLimit = 16

	return settingsModel{theme: theme, limitInput: in}
}

// reset shows limit in the input and focuses it.
func (s *settingsModel) reset(limit float64) tea.Cmd {
	s.limitInput.SetValue(strconv.FormatFloat(limit, 'f', -1, 64))
	s.confirming = false
	s.focus = settingLimit
	return s.limitInput.Focus()
}

// typing reports whether printable keys belong to the limit input.
func (s settingsModel) typing() bool {
	return s.focus == settingLimit && !s.confirming
}

// limit parses the input.
func (s settingsModel) limit() (float64, error) {
	return common.ParseAmount(s.limitInput.Value())
}

func (s *settingsModel) move(delta int) tea.Cmd {
	s.focus = ((s.focus+delta)%settingCount + settingCount) % settingCount
	if s.focus == settingLimit {
		return s.limitInput.Focus()
	}
	s.limitInput.Blur()
	return nil
}

// update handles keys and reports the action to carry out, if any.
func (s settingsModel) update(msg tea.KeyMsg) (settingsModel, settingsAction, tea.Cmd) {
	if s.confirming {
		switch msg.String() {
		case "y", "Y":
			s.confirming = false
			return s, actionClearAll, nil
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, actionNone, nil
	}

	switch msg.String() {
	case "tab", "down":
		return s, actionNone, s.move(1)
	case "shift+tab", "up":
		return s, actionNone, s.move(-1)
	case "enter":
		switch s.focus {
		case settingLimit:
			return s, actionSetLimit, nil
		case settingReset:
			return s, actionResetLimit, nil
		case settingClear:
			s.confirming = true
		}
		return s, actionNone, nil
	}

	if s.focus == settingLimit {
		var cmd tea.Cmd
		s.limitInput, cmd = s.limitInput.Update(msg)
		return s, actionNone, cmd
	}
	return s, actionNone, nil
}

func (s settingsModel) view(currentLimit float64, itemCount int) string {
	t := s.theme

	row := func(i int, text string) string {
		if i == s.focus {
			return t.Selected.Render("› " + text)
		}
		return t.Normal.Render("  " + text)
	}

	limitLabel := t.Label
	if s.focus == settingLimit {
		limitLabel = t.LabelFocused
	}

	rows := []string{
		t.Title.Render("⚙️  Settings"),
		t.Subtitle.Render("Insurance policy"),
		lipgloss.JoinHorizontal(lipgloss.Top, limitLabel.Render("Policy limit"), s.limitInput.View()),
		t.Faint.Render("Current limit: " + common.FormatCurrency(currentLimit) + " · press enter to save"),
		"",
		row(settingReset, "Reset policy limit to "+common.FormatCurrency(model.DefaultPolicyLimit)),
		"",
		t.Subtitle.Render("Data"),
		row(settingClear, "Clear all data"),
	}

	if s.confirming {
		prompt := t.StatusError.Render("Delete all "+strconv.Itoa(itemCount)+" items? This cannot be undone.") +
			"\n" + t.Bold.Render("y") + t.Faint.Render(" to confirm · ") + t.Bold.Render("n") + t.Faint.Render(" to cancel")
		rows = append(rows, "", t.Card.BorderForeground(t.Error).Render(prompt))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

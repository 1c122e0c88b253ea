package components

import (
	"fmt"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CoverageModel shows documented value against the policy limit.
type CoverageModel struct {
	theme       themes.Theme
	progressBar progress.Model
	summary     analysis.Summary
	width       int
	compact     bool
}

// NewCoverageModel creates a coverage panel.
func NewCoverageModel(theme themes.Theme) CoverageModel {
	prog := progress.New(progress.WithSolidFill(string(theme.Success)))
	prog.ShowPercentage = false
	prog.Width = 40

	return CoverageModel{
		theme:       theme,
		progressBar: prog,
	}
}

// SetSummary replaces the figures shown.
func (m *CoverageModel) SetSummary(s analysis.Summary) {
	m.summary = s
}

// SetCompact switches to the single-line layout.
func (m *CoverageModel) SetCompact(compact bool) {
	m.compact = compact
}

// Update handles messages.
func (m CoverageModel) Update(msg tea.Msg) (CoverageModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.progressBar.Width = max(10, min(m.width-8, 40))
	}
	return m, nil
}

// View renders the panel.
func (m CoverageModel) View() string {
	s := m.summary
	pct := fmt.Sprintf("%.0f%%", s.CoveragePercent)

	if m.compact {
		line := fmt.Sprintf("Coverage %s of %s", pct, common.FormatCurrency(s.PolicyLimit))
		if s.IsUnderInsured {
			return m.theme.StatusWarning.Render(line + " ⚠ under-insured")
		}
		return m.theme.Normal.Render(line)
	}

	bar := m.progressBar
	if s.IsUnderInsured {
		bar.FullColor = string(m.theme.Warning)
	}

	lines := []string{
		m.theme.Subtitle.Render("Coverage"),
		lipgloss.JoinHorizontal(lipgloss.Center, bar.ViewAs(s.CoveragePercent/100), " ", m.theme.Bold.Render(pct)),
		m.theme.Normal.Render(fmt.Sprintf("%s documented of %s limit",
			common.FormatCurrency(s.TotalValue),
			common.FormatCurrency(s.PolicyLimit))),
	}

	if s.IsUnderInsured {
		lines = append(lines, m.theme.StatusWarning.Render(fmt.Sprintf(
			"⚠ Under-insured by %s. Consider raising your policy limit.",
			common.FormatCurrency(s.TotalValue-s.PolicyLimit))))
	} else if s.ItemCount > 0 {
		lines = append(lines, m.theme.StatusSuccess.Render("✓ Within policy limit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/router"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderTabs()}
	if !m.online {
		sections = append(sections, m.theme.Banner.Render("📡 "+intake.MsgOffline))
	}
	sections = append(sections, "", m.renderBody(), "")
	if s := m.renderStatus(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.help.View(m.keymap.ForView(m.router.Current())))

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderBody() string {
	switch m.router.Current() {
	case router.Details:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Title.Render("📋 Inventory"),
			m.list.View())
	case router.Add:
		spin := ""
		if m.session.Appraising() {
			spin = m.spinner.View()
		}
		return m.form.view(m.session.Photo(), m.session.Receipt(), m.facing, m.session.Appraising(), spin)
	case router.Insurance:
		return m.renderInsurance()
	case router.Settings:
		return m.settings.view(m.ledger.PolicyLimit(), m.ledger.Len())
	default:
		return m.renderDashboard()
	}
}

// renderTabs renders the app title and the five numbered tabs.
func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(router.Views))
	for i, v := range router.Views {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == m.router.Current() {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("🏠 LedgerLens")
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, ""))
}

func (m Model) renderStatus() string {
	if m.status.text == "" {
		return ""
	}
	switch m.status.level {
	case statusSuccess:
		return m.theme.StatusSuccess.Render("✓ " + m.status.text)
	case statusWarning:
		return m.theme.StatusWarning.Render("⚠ " + m.status.text)
	case statusError:
		return m.theme.StatusError.Render("✗ " + m.status.text)
	default:
		return m.theme.StatusInfo.Render(m.status.text)
	}
}

func greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// renderDashboard shows totals, coverage, the busiest rooms and the
// newest items.
func (m Model) renderDashboard() string {
	t := m.theme
	items := m.ledger.Items()
	s := analysis.Summarize(items, m.ledger.PolicyLimit())

	header := lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render(greeting(m.now().Hour())+" 👋"),
		t.Subtitle.Render("Here's your home inventory at a glance."),
	)

	totals := t.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		t.Subtitle.Render("Total documented value"),
		lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Render(common.FormatCurrency(s.TotalValue)),
		t.Faint.Render(fmt.Sprintf("%d items · %d fixtures · %d personal", s.ItemCount, s.FixtureCount, s.PersonalCount)),
	))

	coverage := t.Card.Render(m.coverage.View())

	rooms := []string{t.Subtitle.Render("Top rooms")}
	if len(s.Rooms) == 0 {
		rooms = append(rooms, t.Faint.Render("No rooms yet"))
	}
	for _, rc := range s.Rooms {
		noun := "items"
		if rc.Count == 1 {
			noun = "item"
		}
		rooms = append(rooms, t.Normal.Render(fmt.Sprintf("%-20s %d %s", rc.Room, rc.Count, noun)))
	}

	recent := []string{t.Subtitle.Render("Recently added")}
	if len(s.Recent) == 0 {
		recent = append(recent, t.Faint.Render("Nothing yet. Press 3 to add an item."))
	}
	for _, item := range s.Recent {
		recent = append(recent, t.Normal.Render(fmt.Sprintf("%s %s · %s · %s",
			themes.GetCategoryIcon(item.Category.String()), item.Name, item.Room,
			common.FormatCurrency(item.Value))))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, totals, " ", coverage)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rooms...)), " ",
		t.Card.Render(lipgloss.JoinVertical(lipgloss.Left, recent...)))

	if m.width > 0 && m.width < 80 {
		top = lipgloss.JoinVertical(lipgloss.Left, totals, coverage)
		bottom = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinVertical(lipgloss.Left, rooms...), "",
			lipgloss.JoinVertical(lipgloss.Left, recent...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, top, bottom)
}

// renderInsurance shows coverage with the value breakdowns and report keys.
func (m Model) renderInsurance() string {
	t := m.theme
	s := analysis.Summarize(m.ledger.Items(), m.ledger.PolicyLimit())

	categories := []string{t.Subtitle.Render("Value by category")}
	if len(s.CategoryValues) == 0 {
		categories = append(categories, t.Faint.Render("No items yet"))
	}
	for _, cv := range s.CategoryValues {
		label := themes.GetCategoryIcon(cv.Category.String()) + " " + cv.Category.String()
		categories = append(categories, t.Normal.Render(fmt.Sprintf("%-24s %12s", label, common.FormatCurrency(cv.Value))))
	}

	rooms := []string{t.Subtitle.Render("Value by room")}
	for _, rv := range s.RoomValues {
		rooms = append(rooms, t.Normal.Render(fmt.Sprintf("%-20s %12s", rv.Room, common.FormatCurrency(rv.Value))))
	}

	conveyance := []string{
		t.Subtitle.Render("Conveyance"),
		t.Normal.Render(fmt.Sprintf("Fixtures (stay):   %3d  %12s", s.FixtureCount, common.FormatCurrency(s.FixtureValue))),
		t.Normal.Render(fmt.Sprintf("Personal (moves):  %3d  %12s", s.PersonalCount, common.FormatCurrency(s.PersonalValue))),
		t.Faint.Render(fmt.Sprintf("Receipts on file for %d of %d items", s.ReceiptCount, s.ItemCount)),
	}

	reports := lipgloss.JoinVertical(lipgloss.Left,
		t.Subtitle.Render("Reports"),
		t.Normal.Render("i  Insurance report (PDF)"),
		t.Normal.Render("r  Real estate conveyance schedule (PDF)"),
		t.Faint.Render("Saved to "+m.reportDir),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render("🛡️  Insurance"),
		t.Card.Render(m.coverage.View()),
		lipgloss.JoinHorizontal(lipgloss.Top,
			t.Card.Render(lipgloss.JoinVertical(lipgloss.Left, categories...)), " ",
			t.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rooms...))),
		t.Card.Render(lipgloss.JoinVertical(lipgloss.Left, conveyance...)),
		reports,
	)
}

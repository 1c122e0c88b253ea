package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListMode represents the current mode of the list.
type ListMode int

// List modes.
const (
	ModeBrowse ListMode = iota
	ModeSearch
)

// filterOrder is the chip order; "f" cycles through it.
var filterOrder = []analysis.TypeFilter{
	analysis.FilterAll,
	analysis.FilterFixtures,
	analysis.FilterPersonal,
}

// ItemListModel is the searchable inventory table.
type ItemListModel struct {
	theme       themes.Theme
	filter      analysis.TypeFilter
	items       []model.InventoryItem
	filtered    []model.InventoryItem
	searchInput textinput.Model
	table       table.Model
	mode        ListMode
	width       int
	height      int
}

// NewItemList creates an empty list.
func NewItemList(theme themes.Theme) ItemListModel {
	// "f" belongs to the filter chips, not paging.
	km := table.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown", " "))

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithKeyMap(km),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search name, room, category..."
	searchInput.Prompt = "🔍 "
	searchInput.CharLimit = 60

	m := ItemListModel{
		theme:       theme,
		filter:      analysis.FilterAll,
		table:       t,
		searchInput: searchInput,
		width:       80,
		height:      24,
	}
	m.updateColumns()
	return m
}

// SetItems replaces the collection and reapplies the search and filter.
func (m *ItemListModel) SetItems(items []model.InventoryItem) {
	m.items = items
	m.applyFilters()
}

// SetFilter selects a chip.
func (m *ItemListModel) SetFilter(f analysis.TypeFilter) {
	m.filter = f
	m.applyFilters()
}

// Filter returns the active chip.
func (m ItemListModel) Filter() analysis.TypeFilter {
	return m.filter
}

// Query returns the search text.
func (m ItemListModel) Query() string {
	return m.searchInput.Value()
}

// Searching reports whether keystrokes go to the search box.
func (m ItemListModel) Searching() bool {
	return m.mode == ModeSearch
}

// Visible returns the items passing the search and filter.
func (m ItemListModel) Visible() []model.InventoryItem {
	return m.filtered
}

// Selected returns the item under the cursor.
func (m ItemListModel) Selected() (model.InventoryItem, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.filtered) {
		return model.InventoryItem{}, false
	}
	return m.filtered[i], true
}

// Update handles messages.
func (m ItemListModel) Update(msg tea.Msg) (ItemListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m.handleSearchMode(msg)
		}
		if cmd, handled := m.handleBrowseMode(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, m.height-14))
		m.updateColumns()
		m.table.SetRows(m.buildRows())
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ItemListModel) handleBrowseMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "/":
		m.mode = ModeSearch
		m.searchInput.Focus()
		return textinput.Blink, true

	case "f":
		m.filter = nextFilter(m.filter)
		m.applyFilters()
		return nil, true

	case "c":
		m.searchInput.SetValue("")
		m.applyFilters()
		return nil, true
	}
	return nil, false
}

func (m ItemListModel) handleSearchMode(msg tea.KeyMsg) (ItemListModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "down":
		m.mode = ModeBrowse
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.mode = ModeBrowse
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applyFilters()
	return m, cmd
}

func nextFilter(f analysis.TypeFilter) analysis.TypeFilter {
	for i, candidate := range filterOrder {
		if candidate == f {
			return filterOrder[(i+1)%len(filterOrder)]
		}
	}
	return analysis.FilterAll
}

func (m *ItemListModel) applyFilters() {
	m.filtered = analysis.FilterItems(m.items, m.searchInput.Value(), m.filter)
	m.table.SetRows(m.buildRows())
	if c := m.table.Cursor(); c >= len(m.filtered) {
		m.table.SetCursor(max(0, len(m.filtered)-1))
	}
}

func (m *ItemListModel) updateColumns() {
	// Fixed columns take 12+10+9 plus padding; the rest is split.
	flex := max(20, m.width-12-10-9-12)
	nameWidth := flex * 45 / 100
	roomWidth := flex * 25 / 100
	categoryWidth := flex - nameWidth - roomWidth

	m.table.SetColumns([]table.Column{
		{Title: "Item", Width: nameWidth},
		{Title: "Room", Width: roomWidth},
		{Title: "Category", Width: categoryWidth},
		{Title: "Value", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Receipt", Width: 9},
	})
}

func (m ItemListModel) buildRows() []table.Row {
	rows := make([]table.Row, 0, len(m.filtered))
	for _, item := range m.filtered {
		kind := "Personal"
		if item.Type == model.ItemTypeFixture {
			kind = "Fixture"
		}
		receipt := ""
		if item.HasReceipt() {
			receipt = "✓"
		}
		rows = append(rows, table.Row{
			item.Name,
			item.Room,
			themes.GetCategoryIcon(item.Category.String()) + " " + item.Category.String(),
			common.FormatCurrency(item.Value),
			kind,
			receipt,
		})
	}
	return rows
}

// View renders the chips, search box, table and the selected item.
func (m ItemListModel) View() string {
	sections := []string{m.renderChips(), m.renderSearch(), ""}

	if len(m.filtered) == 0 {
		empty := "No items yet. Press 3 to add your first item."
		if len(m.items) > 0 {
			empty = "No items match your search."
		}
		sections = append(sections, m.theme.Faint.Render(empty))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		m.table.View(),
		m.theme.Faint.Render(fmt.Sprintf("%d of %d items · %s",
			len(m.filtered), len(m.items),
			common.FormatCurrency(analysis.TotalValue(m.filtered)))),
	)

	if item, ok := m.Selected(); ok {
		sections = append(sections, "", m.renderDetail(item))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ItemListModel) renderChips() string {
	chips := make([]string, 0, len(filterOrder))
	for _, f := range filterOrder {
		style := m.theme.ChipInactive
		if f == m.filter {
			style = m.theme.ChipActive
		}
		chips = append(chips, style.Render(f.Label()))
	}
	return strings.Join(chips, " ")
}

func (m ItemListModel) renderSearch() string {
	if m.mode == ModeSearch || m.searchInput.Value() != "" {
		return m.searchInput.View()
	}
	return m.theme.Faint.Render("Press / to search, f to filter")
}

func (m ItemListModel) renderDetail(item model.InventoryItem) string {
	lines := []string{
		m.theme.Bold.Render(item.Name),
		m.theme.Normal.Render(fmt.Sprintf("%s · %s · %s",
			item.Type.Label(), item.Condition.String(), item.PurchaseDate)),
	}
	if item.Description != "" {
		lines = append(lines, m.theme.Faint.Render(item.Description))
	}
	if item.HasReceipt() {
		lines = append(lines, m.theme.StatusSuccess.Render("Receipt on file"))
	}
	return m.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

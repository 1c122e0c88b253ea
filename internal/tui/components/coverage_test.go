package components

import (
	"testing"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewCoverageModel(t *testing.T) {
	m := NewCoverageModel(themes.Default)

	assert.False(t, m.progressBar.ShowPercentage)
	assert.Equal(t, 40, m.progressBar.Width)
	assert.False(t, m.compact)
}

func TestCoverageModel_View(t *testing.T) {
	tests := []struct {
		name     string
		limit    float64
		contains []string
		excludes []string
	}{
		{
			name:     "within limit",
			limit:    10000,
			contains: []string{"20%", "$2,000 documented of $10,000 limit", "Within policy limit"},
			excludes: []string{"Under-insured"},
		},
		{
			name:     "under-insured clamps at 100",
			limit:    1500,
			contains: []string{"100%", "Under-insured by $500"},
			excludes: []string{"Within policy limit"},
		},
		{
			name:     "exactly at limit",
			limit:    2000,
			contains: []string{"100%", "Within policy limit"},
			excludes: []string{"Under-insured"},
		},
	}

	items := sampleItems()[:2]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewCoverageModel(themes.Default)
			m.SetSummary(analysis.Summarize(items, tt.limit))

			view := m.View()
			for _, s := range tt.contains {
				assert.Contains(t, view, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, view, s)
			}
		})
	}
}

func TestCoverageModel_Compact(t *testing.T) {
	m := NewCoverageModel(themes.Default)
	m.SetCompact(true)
	m.SetSummary(analysis.Summarize(sampleItems(), 1000))

	view := m.View()
	assert.Contains(t, view, "Coverage 100% of $1,000")
	assert.Contains(t, view, "under-insured")
}

func TestCoverageModel_EmptyLedger(t *testing.T) {
	m := NewCoverageModel(themes.Default)
	m.SetSummary(analysis.Summarize(nil, 100000))

	view := m.View()
	assert.Contains(t, view, "0%")
	assert.NotContains(t, view, "Within policy limit")
}

func TestCoverageModel_ResizesBar(t *testing.T) {
	m := NewCoverageModel(themes.Default)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Equal(t, 22, m.progressBar.Width)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: 10})
	assert.Equal(t, 40, m.progressBar.Width)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 5, Height: 10})
	assert.Equal(t, 10, m.progressBar.Width)
}

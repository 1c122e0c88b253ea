package tui

import (
	"testing"
	"time"

	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoice_MoveWraps(t *testing.T) {
	c := choice{options: []string{"a", "b", "c"}}

	c.move(-1)
	assert.Equal(t, "c", c.value())
	c.move(2)
	assert.Equal(t, "b", c.value())

	empty := choice{}
	empty.move(1)
	assert.Empty(t, empty.value())
}

func TestChoice_SelectOption(t *testing.T) {
	base := []string{"Electronics", "Other"}

	var c choice
	c.selectOption("Other", base)
	assert.Equal(t, 1, c.index)

	c.selectOption("Musical Instruments", base)
	assert.Equal(t, "Musical Instruments", c.value())
	assert.Len(t, c.options, 3)
	assert.Len(t, base, 2, "base list is not modified")

	c.selectOption("", base)
	assert.Equal(t, "Electronics", c.value())
	assert.Len(t, c.options, 2)
}

func TestForm_LoadAndApply(t *testing.T) {
	f := newFormModel(themes.Default)
	d := model.NewDraft(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	d.Name = "Piano"
	d.SetValue(3200.5)
	d.Category = model.ParseCategory("Musical Instruments")

	f.load(d)
	assert.Equal(t, fieldName, f.focus)
	assert.Equal(t, "3200.5", f.inputs[fieldValue].Value())
	assert.Equal(t, "2024-03-10", f.inputs[fieldDate].Value())
	assert.Equal(t, "Musical Instruments", f.category.value())

	var out model.Draft
	require.NoError(t, f.apply(&out))
	assert.Equal(t, "Piano", out.Name)
	require.NotNil(t, out.Value)
	assert.Equal(t, 3200.5, *out.Value)
	assert.Equal(t, "Musical Instruments", out.Category.String())
	assert.False(t, out.Category.Known())
	assert.Equal(t, model.ItemTypePersonal, out.Type)
	assert.Equal(t, model.ConditionGood, out.Condition)
}

func TestForm_ApplyBlankValue(t *testing.T) {
	f := newFormModel(themes.Default)
	f.load(model.NewDraft(time.Now()))

	d := model.Draft{Value: new(float64)}
	require.NoError(t, f.apply(&d))
	assert.Nil(t, d.Value)
}

func TestForm_FocusCycles(t *testing.T) {
	f := newFormModel(themes.Default)
	f.load(model.Draft{})

	f, _ = f.update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldDescription, f.focus)
	f, _ = f.update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldName, f.focus)

	assert.True(t, f.inputs[fieldName].Focused())
	assert.False(t, f.inputs[fieldDescription].Focused())
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form fields in focus order.
const (
	fieldName = iota
	fieldValue
	fieldCategory
	fieldRoom
	fieldType
	fieldCondition
	fieldDate
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Item name",
	"Value ($)",
	"Category",
	"Room",
	"Type",
	"Condition",
	"Purchase date",
	"Description",
}

// choice is a cycling selector.
type choice struct {
	options []string
	index   int
}

func (c *choice) move(delta int) {
	n := len(c.options)
	if n == 0 {
		return
	}
	c.index = ((c.index+delta)%n + n) % n
}

func (c choice) value() string {
	if c.index < 0 || c.index >= len(c.options) {
		return ""
	}
	return c.options[c.index]
}

// selectOption points c at label, adding it when it is not one of the
// options. Appraisals may name categories outside the known set.
func (c *choice) selectOption(label string, base []string) {
	c.options = append([]string(nil), base...)
	for i, opt := range c.options {
		if opt == label {
			c.index = i
			return
		}
	}
	if label == "" {
		c.index = 0
		return
	}
	c.options = append(c.options, label)
	c.index = len(c.options) - 1
}

var typeOptions = []model.ItemType{model.ItemTypePersonal, model.ItemTypeFixture}

func typeLabels() []string {
	labels := make([]string, len(typeOptions))
	for i, t := range typeOptions {
		labels[i] = t.Label()
	}
	return labels
}

func conditionLabels() []string {
	conditions := model.Conditions()
	labels := make([]string, len(conditions))
	for i, c := range conditions {
		labels[i] = c.String()
	}
	return labels
}

// formModel is the add-item screen's editable state. The draft itself lives
// in the intake session; the form is loaded from it and written back on save.
type formModel struct {
	theme      themes.Theme
	inputs     map[int]*textinput.Model
	category   choice
	itemType   choice
	condition  choice
	pathInput  textinput.Model
	pathTarget attachTarget
	focus      int
	choosing   bool
}

func newFormModel(theme themes.Theme) formModel {
	newInput := func(placeholder string, limit int) *textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Prompt = ""
		return &in
	}

	path := textinput.New()
	path.Placeholder = "~/Pictures/item.jpg"
	path.Prompt = "Path: "
	path.CharLimit = 512

	f := formModel{
		theme: theme,
		inputs: map[int]*textinput.Model{
			fieldName:        newInput("e.g. MacBook Pro", 80),
			fieldValue:       newInput("e.g. 1,200", 16),
			fieldRoom:        newInput("e.g. Living Room", 40),
			fieldDate:        newInput(model.DateLayout, 10),
			fieldDescription: newInput("Brand, model, serial number...", 200),
		},
		pathInput: path,
	}
	return f
}

// load replaces every field from the draft and focuses the first field.
func (f *formModel) load(d model.Draft) tea.Cmd {
	f.inputs[fieldName].SetValue(d.Name)
	f.inputs[fieldValue].SetValue("")
	if d.Value != nil {
		f.inputs[fieldValue].SetValue(strconv.FormatFloat(*d.Value, 'f', -1, 64))
	}
	f.inputs[fieldRoom].SetValue(d.Room)
	f.inputs[fieldDate].SetValue(d.PurchaseDate)
	f.inputs[fieldDescription].SetValue(d.Description)

	f.category.selectOption(d.Category.String(), model.CategoryLabels())
	f.itemType.selectOption(d.Type.Label(), typeLabels())
	f.condition.selectOption(d.Condition.String(), conditionLabels())

	f.choosing = false
	f.pathInput.Blur()
	f.pathInput.SetValue("")
	return f.focusField(fieldName)
}

// refresh reloads the fields an appraisal fills without moving focus.
func (f *formModel) refresh(d model.Draft) {
	focus := f.focus
	_ = f.load(d)
	_ = f.focusField(focus)
}

// apply writes the fields into d. Only the value can fail to parse; a blank
// value is left unset so validation reports it.
func (f formModel) apply(d *model.Draft) error {
	var value *float64
	if text := strings.TrimSpace(f.inputs[fieldValue].Value()); text != "" {
		v, err := common.ParseAmount(text)
		if err != nil {
			return common.NewUserError("Please enter a dollar amount like 1200 or 1,200.50.", err)
		}
		value = &v
	}

	d.Name = f.inputs[fieldName].Value()
	d.Value = value
	d.Room = f.inputs[fieldRoom].Value()
	d.PurchaseDate = f.inputs[fieldDate].Value()
	d.Description = f.inputs[fieldDescription].Value()
	d.Category = model.ParseCategory(f.category.value())
	d.Condition = model.ParseCondition(f.condition.value())
	if t, err := model.ParseItemType(f.itemType.value()); err == nil {
		d.Type = t
	}
	return nil
}

func (f *formModel) focusField(i int) tea.Cmd {
	f.focus = ((i % fieldCount) + fieldCount) % fieldCount
	var cmd tea.Cmd
	for idx, in := range f.inputs {
		if idx == f.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// choiceAt returns the selector at field i, if that field is one.
func (f formModel) choiceAt(i int) (choice, bool) {
	switch i {
	case fieldCategory:
		return f.category, true
	case fieldType:
		return f.itemType, true
	case fieldCondition:
		return f.condition, true
	}
	return choice{}, false
}

// promptPath opens the file path box for target.
func (f *formModel) promptPath(target attachTarget) tea.Cmd {
	f.choosing = true
	f.pathTarget = target
	f.pathInput.SetValue("")
	for _, in := range f.inputs {
		in.Blur()
	}
	return f.pathInput.Focus()
}

// closePath hides the path box and returns focus to the form.
func (f *formModel) closePath() tea.Cmd {
	f.choosing = false
	f.pathInput.Blur()
	return f.focusField(f.focus)
}

// update handles keys for the focused field.
func (f formModel) update(msg tea.KeyMsg) (formModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "enter":
		return f, f.focusField(f.focus + 1)
	case "shift+tab", "up":
		return f, f.focusField(f.focus - 1)
	}

	switch f.focus {
	case fieldCategory:
		cycleChoice(&f.category, msg)
		return f, nil
	case fieldType:
		cycleChoice(&f.itemType, msg)
		return f, nil
	case fieldCondition:
		cycleChoice(&f.condition, msg)
		return f, nil
	}

	in := f.inputs[f.focus]
	updated, cmd := in.Update(msg)
	*in = updated
	return f, cmd
}

func cycleChoice(c *choice, msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "h":
		c.move(-1)
	case "right", "l", " ":
		c.move(1)
	}
}

// view renders the form with the attachment state above it.
func (f formModel) view(photo, receipt capture.Frame, facing capture.Facing, appraising bool, spin string) string {
	t := f.theme
	rows := []string{t.Title.Render("📷 Add Item"), f.renderAttachments(photo, receipt, facing)}

	if appraising {
		rows = append(rows, t.StatusInfo.Render(spin+" Analyzing photo with AI..."))
	}
	rows = append(rows, "")

	for i := 0; i < fieldCount; i++ {
		label := t.Label
		if i == f.focus && !f.choosing {
			label = t.LabelFocused
		}

		var value string
		if c, ok := f.choiceAt(i); ok {
			text := c.value()
			if i == fieldCategory {
				text = themes.GetCategoryIcon(text) + " " + text
			}
			value = "‹ " + text + " ›"
			if i == f.focus && !f.choosing {
				value = t.Selected.Render(value)
			} else {
				value = t.Normal.Render(value)
			}
		} else {
			value = f.inputs[i].View()
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[i]), value))
	}

	if f.choosing {
		rows = append(rows, "",
			t.Bold.Render(fmt.Sprintf("Attach %s from file", f.pathTarget)),
			f.pathInput.View(),
			t.Faint.Render("enter to load · esc to cancel"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (f formModel) renderAttachments(photo, receipt capture.Frame, facing capture.Facing) string {
	t := f.theme
	mark := func(frame capture.Frame, name string) string {
		if frame.IsZero() {
			return t.Faint.Render("○ " + name)
		}
		return t.StatusSuccess.Render(fmt.Sprintf("● %s (%dx%d)", name, frame.Width, frame.Height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		mark(photo, "Photo"), "   ",
		mark(receipt, "Receipt"), "   ",
		t.Faint.Render("camera: "+string(facing)))
}

package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/festify/internal/editor"
	"github.com/desertthunder/festify/internal/models"
)

var fieldLabels = map[editor.Field]string{
	editor.FieldName:      "Name",
	editor.FieldGenres:    "Genres (comma separated)",
	editor.FieldCountry:   "Country",
	editor.FieldListeners: "Listeners",
	editor.FieldStatus:    "Status",
	editor.FieldBiography: "Biography",
}

// editView renders an [editor.Controller] as a form of bubbles widgets.
//
// The controller owns the state; widgets are refreshed from it after loads and resets.
type editView struct {
	ctrl      *editor.Controller
	focus     int
	inputs    map[editor.Field]textinput.Model
	bio       textarea.Model
	countries []models.Country
	country   int // index into countries, -1 when the form holds an unlisted code
	loading   bool
	warning   string
}

func newEditView(ctrl *editor.Controller, width int) *editView {
	inputs := make(map[editor.Field]textinput.Model, 3)
	for _, f := range []editor.Field{editor.FieldName, editor.FieldGenres, editor.FieldListeners} {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 256
		ti.Width = max(width-32, 20)
		inputs[f] = ti
	}

	listeners := inputs[editor.FieldListeners]
	listeners.Placeholder = "0"
	listeners.CharLimit = 12
	inputs[editor.FieldListeners] = listeners

	bio := textarea.New()
	bio.ShowLineNumbers = false
	bio.Placeholder = "Tell us about the artist"
	bio.SetWidth(max(width-32, 20))
	bio.SetHeight(4)

	v := &editView{
		ctrl:      ctrl,
		inputs:    inputs,
		bio:       bio,
		countries: models.Countries(),
		loading:   ctrl.ID() != "",
	}
	v.sync()
	return v
}

func (v *editView) field() editor.Field {
	return editor.Fields[v.focus]
}

// sync copies the controller form into the widgets.
func (v *editView) sync() {
	form := v.ctrl.Form()
	v.setInput(editor.FieldName, form.Name)
	v.setInput(editor.FieldGenres, form.Genres)
	v.setInput(editor.FieldListeners, form.ListenersText())
	v.bio.SetValue(form.Biography)
	v.country = -1
	if c, ok := models.LookupCountry(form.Country); ok {
		for i := range v.countries {
			if v.countries[i].Code == c.Code {
				v.country = i
				break
			}
		}
	}
}

func (v *editView) setInput(f editor.Field, value string) {
	ti := v.inputs[f]
	ti.SetValue(value)
	ti.CursorEnd()
	v.inputs[f] = ti
}

// focusField blurs every widget and focuses the current one.
func (v *editView) focusField() tea.Cmd {
	for f, ti := range v.inputs {
		ti.Blur()
		v.inputs[f] = ti
	}
	v.bio.Blur()

	switch f := v.field(); f {
	case editor.FieldBiography:
		return v.bio.Focus()
	case editor.FieldName, editor.FieldGenres, editor.FieldListeners:
		ti := v.inputs[f]
		cmd := ti.Focus()
		v.inputs[f] = ti
		return cmd
	}
	return nil
}

func (v *editView) move(delta int) tea.Cmd {
	n := len(editor.Fields)
	v.focus = (v.focus + delta + n) % n
	return v.focusField()
}

func (v *editView) reset() tea.Cmd {
	v.ctrl.Reset()
	v.warning = ""
	v.sync()
	return v.focusField()
}

func (v *editView) cycleCountry(delta int) {
	n := len(v.countries)
	if n == 0 {
		return
	}
	if v.country < 0 && delta < 0 {
		v.country = 0
	}
	v.country = (v.country + delta + n) % n
	if err := v.ctrl.UpdateField(editor.FieldCountry, v.countries[v.country].Code); err != nil {
		v.warning = err.Error()
	}
}

func (v *editView) toggleStatus() {
	next := models.StatusActive
	if v.ctrl.Form().Status == models.StatusActive {
		next = models.StatusDraft
	}
	_ = v.ctrl.UpdateField(editor.FieldStatus, string(next))
}

// update routes a key press to the focused widget and merges the new value into the controller.
func (v *editView) update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.next):
		return v.move(1)
	case key.Matches(msg, keys.prev):
		return v.move(-1)
	}

	field := v.field()
	switch field {
	case editor.FieldCountry:
		switch {
		case key.Matches(msg, keys.left):
			v.cycleCountry(-1)
		case key.Matches(msg, keys.right):
			v.cycleCountry(1)
		}
		return nil
	case editor.FieldStatus:
		if key.Matches(msg, keys.left, keys.right) {
			v.toggleStatus()
		}
		return nil
	case editor.FieldBiography:
		var cmd tea.Cmd
		v.bio, cmd = v.bio.Update(msg)
		_ = v.ctrl.UpdateField(editor.FieldBiography, v.bio.Value())
		return cmd
	}

	ti, cmd := v.inputs[field].Update(msg)
	v.warning = ""
	if err := v.ctrl.UpdateField(field, ti.Value()); err != nil {
		switch {
		case field == editor.FieldListeners && errors.Is(err, editor.ErrInvalidField):
			v.warning = "listeners must be a whole number"
			ti.SetValue(v.ctrl.Form().ListenersText())
		default:
			v.warning = err.Error()
		}
	}
	v.inputs[field] = ti
	return cmd
}

// forward passes non-key messages (cursor blinks) to the focused widget.
func (v *editView) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f := v.field(); f {
	case editor.FieldBiography:
		v.bio, cmd = v.bio.Update(msg)
	case editor.FieldName, editor.FieldGenres, editor.FieldListeners:
		ti := v.inputs[f]
		ti, cmd = ti.Update(msg)
		v.inputs[f] = ti
	}
	return cmd
}

func (v *editView) label(f editor.Field) string {
	if v.field() == f {
		return styles.focused.Render("› " + fieldLabels[f])
	}
	return styles.label.Render("  " + fieldLabels[f])
}

func (v *editView) view() string {
	title := styles.title.Render(fmt.Sprintf("Edit artist %s", v.ctrl.ID()))
	if v.ctrl.Creating() {
		title = styles.title.Render("New artist")
	}
	if v.loading {
		return fmt.Sprintf("%s\n%s", title, styles.help.Render("Loading artist..."))
	}

	form := v.ctrl.Form()
	country := "-"
	switch {
	case v.country >= 0 && v.country < len(v.countries):
		c := v.countries[v.country]
		country = fmt.Sprintf("‹ %s · %s ›", c.Code, c.Name)
	case form.Country != "":
		country = fmt.Sprintf("‹ %s · not in list ›", form.Country)
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, v.label(editor.FieldName), v.inputs[editor.FieldName].View()),
		lipgloss.JoinHorizontal(lipgloss.Top, v.label(editor.FieldGenres), v.inputs[editor.FieldGenres].View()),
		lipgloss.JoinHorizontal(lipgloss.Top, v.label(editor.FieldCountry), country),
		lipgloss.JoinHorizontal(lipgloss.Top, v.label(editor.FieldListeners), v.inputs[editor.FieldListeners].View()),
		lipgloss.JoinHorizontal(lipgloss.Top, v.label(editor.FieldStatus), fmt.Sprintf("‹ %s ›", form.Status.Label())),
		lipgloss.JoinHorizontal(lipgloss.Top, v.label(editor.FieldBiography), v.bio.View()),
	}

	var status []string
	if !form.Valid() {
		status = append(status, styles.warn.Render("Name and genres need more than 2 characters"))
	}
	if v.warning != "" {
		status = append(status, styles.warn.Render(v.warning))
	}
	if v.ctrl.Dirty() {
		status = append(status, styles.help.Render("unsaved changes"))
	}

	button := styles.button.Render("Save")
	switch {
	case v.ctrl.Submitting():
		button = styles.disabled.Render("Saving...")
	case !v.ctrl.CanSubmit():
		button = styles.disabled.Render("Save")
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, strings.Join(rows, "\n"), strings.Join(status, "\n"), button)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is one labelled input of a form; exactly one of input/area is set.
type field struct {
	label string
	input *textinput.Model
	area  *textarea.Model
}

func newInput(label, placeholder string, secret bool) *field {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &field{label: label, input: &ti}
}

func newArea(label, placeholder string) *field {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetWidth(42)
	ta.SetHeight(4)
	ta.Cursor.SetMode(cursor.CursorStatic)
	return &field{label: label, area: &ta}
}

func (f *field) focus() tea.Cmd {
	if f.area != nil {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if f.area != nil {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *field) value() string {
	if f.area != nil {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *field) setValue(v string) {
	if f.area != nil {
		f.area.SetValue(v)
		return
	}
	f.input.SetValue(v)
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.area != nil {
		*f.area, cmd = f.area.Update(msg)
		return cmd
	}
	*f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *field) view() string {
	if f.area != nil {
		return f.area.View()
	}
	return f.input.View()
}

type fieldSet struct {
	fields []*field
	focus  int
}

func newFieldSet(fields ...*field) fieldSet {
	return fieldSet{fields: fields}
}

func (fs *fieldSet) focusAt(i int) tea.Cmd {
	var cmd tea.Cmd
	for j, f := range fs.fields {
		if j == i {
			cmd = f.focus()
		} else {
			f.blur()
		}
	}
	fs.focus = i
	return cmd
}

func (fs *fieldSet) next() tea.Cmd {
	return fs.focusAt((fs.focus + 1) % len(fs.fields))
}

func (fs *fieldSet) prev() tea.Cmd {
	return fs.focusAt((fs.focus - 1 + len(fs.fields)) % len(fs.fields))
}

func (fs *fieldSet) blur() {
	for _, f := range fs.fields {
		f.blur()
	}
}

func (fs *fieldSet) current() *field { return fs.fields[fs.focus] }

func (fs *fieldSet) update(msg tea.Msg) tea.Cmd {
	return fs.current().update(msg)
}

func (fs *fieldSet) value(i int) string { return fs.fields[i].value() }

func (fs *fieldSet) reset() {
	for _, f := range fs.fields {
		f.setValue("")
	}
}

func (fs *fieldSet) view() string {
	var b strings.Builder
	for i, f := range fs.fields {
		label := f.label
		if i == fs.focus {
			label = accentStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		b.WriteString(label + "\n" + f.view())
		if i < len(fs.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

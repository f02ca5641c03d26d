package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todos/internal/model"
)

const (
	fieldSubject = iota
	fieldNotes
	fieldCount
)

// form holds the live values of the create/edit modal.
type form struct {
	subject textinput.Model
	notes   textarea.Model
	focused int
	err     string
}

func newForm() form {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200
	ti.Width = 50

	ta := textarea.New()
	ta.Placeholder = "Notes (optional)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(50)
	ta.SetHeight(5)

	return form{subject: ti, notes: ta}
}

// reset clears both fields and focuses the subject.
func (f *form) reset() {
	f.seed(model.Todo{})
}

// seed fills the fields from t and focuses the subject.
func (f *form) seed(t model.Todo) {
	f.subject.SetValue(t.Subject)
	f.subject.CursorEnd()
	f.notes.SetValue(t.Notes)
	f.err = ""
	f.focus(fieldSubject)
}

func (f *form) focus(field int) {
	f.focused = field
	if field == fieldSubject {
		f.notes.Blur()
		f.subject.Focus()
		return
	}
	f.subject.Blur()
	f.notes.Focus()
}

func (f *form) next() { f.focus((f.focused + 1) % fieldCount) }

func (f *form) values() (subject, notes string) {
	return f.subject.Value(), f.notes.Value()
}

// update routes msg to the focused field.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focused == fieldSubject {
		f.subject, cmd = f.subject.Update(msg)
	} else {
		f.notes, cmd = f.notes.Update(msg)
	}
	return cmd
}

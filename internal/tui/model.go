// Package tui is the interactive front end: a Bubble Tea program that turns
// key presses into store operations and keeps the modal state.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todos/internal/debug"
	"github.com/idilsaglam/todos/internal/model"
)

// Store is the part of the todo store the TUI drives.
type Store interface {
	Create(subject, notes string) (model.Todo, bool)
	Update(id int, subject, notes string) (model.Todo, bool)
	Delete(id int)
	List() []model.Todo
	Get(id int) (model.Todo, bool)
	Len() int
}

// Options tune the TUI.
type Options struct {
	Markdown  bool // render notes as Markdown in the details view
	AltScreen bool
}

type keyMap struct {
	Add, Edit, View, Delete, Quit key.Binding
}

var keys = keyMap{
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	View:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for one session.
type Model struct {
	store  Store
	list   list.Model
	mode   Mode
	form   form

	status    string
	statusErr bool

	width, height int

	md     *glamour.TermRenderer // nil renders notes as plain text
	copyFn func(string) error
}

// New builds the model over s. The store is owned by the caller.
func New(s Store, opt Options) Model {
	w, h := widthHeight()

	l := list.New(nil, itemDelegate{}, w-2, h-4)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("to-do", "to-dos")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.View, keys.Delete, keys.Quit}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	m := Model{
		store:  s,
		list:   l,
		mode:   Closed{},
		form:   newForm(),
		width:  w,
		height: h,
		copyFn: clipboard.WriteAll,
	}
	if opt.Markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(60),
		)
		if err != nil {
			debug.Log("markdown renderer: %v", err)
		} else {
			m.md = r
		}
	}
	m.refresh()
	return m
}

// Mode returns the current modal state.
func (m Model) Mode() Mode { return m.mode }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// refresh reloads the list from the store and keeps the header count live.
func (m *Model) refresh() {
	todos := m.store.List()
	idx := m.list.Index()
	m.list.SetItems(toItems(todos))
	if idx >= len(todos) {
		idx = len(todos) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.list.Title = fmt.Sprintf("%s   %s %d",
		titleStyle.Render("My To-Do List"),
		accentStyle.Render("Total"), m.store.Len(),
	)
}

// selected returns the todo under the cursor.
func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.Todo, true
}

// openCreate opens the form with empty fields.
func (m *Model) openCreate() {
	m.form.reset()
	m.mode = Creating{}
}

// openEdit opens the form seeded from the todo with id.
func (m *Model) openEdit(id int) {
	t, ok := m.store.Get(id)
	if !ok {
		m.close()
		return
	}
	m.form.seed(t)
	m.mode = Editing{ID: id}
}

func (m *Model) openView(id int) {
	if _, ok := m.store.Get(id); !ok {
		m.close()
		return
	}
	m.mode = Viewing{ID: id}
}

// close returns to the list and drops any unsaved form input and the
// modal's status line.
func (m *Model) close() {
	m.setStatus("", false)
	m.form.reset()
	m.form.subject.Blur()
	m.form.notes.Blur()
	m.mode = Closed{}
}

// save applies the form: Create when creating, Update when editing.
func (m *Model) save() {
	subject, notes := m.form.values()
	if !model.ValidSubject(subject) {
		m.form.err = "Subject cannot be empty"
		return
	}
	mode := m.mode
	m.close()
	switch md := mode.(type) {
	case Creating:
		if _, ok := m.store.Create(subject, notes); ok {
			m.setStatus("added", false)
			m.refresh()
			m.list.Select(len(m.list.Items()) - 1)
		}
	case Editing:
		if _, ok := m.store.Update(md.ID, subject, notes); ok {
			m.setStatus("saved", false)
		} else {
			m.setStatus("to-do no longer exists", true)
		}
		m.refresh()
	}
}

func (m *Model) delete(id int) {
	m.store.Delete(id)
	m.setStatus("deleted", false)
	m.refresh()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m Model) statusLine() string {
	if m.statusErr {
		return errorStyle.Render("✖ " + m.status)
	}
	return successStyle.Render("✔ " + m.status)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(ws.Width-2, ws.Height-4)
		return m, nil
	}

	if formOpen(m.mode) {
		return m.updateForm(msg)
	}
	if v, ok := m.mode.(Viewing); ok {
		return m.updateView(msg, v.ID)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		m.setStatus("", false)
		switch {
		case key.Matches(km, keys.Quit):
			return m, tea.Quit
		case key.Matches(km, keys.Add):
			m.openCreate()
			return m, nil
		case key.Matches(km, keys.Edit):
			if t, ok := m.selected(); ok {
				m.openEdit(t.ID)
			}
			return m, nil
		case key.Matches(km, keys.View):
			if t, ok := m.selected(); ok {
				m.openView(t.ID)
			}
			return m, nil
		case key.Matches(km, keys.Delete):
			if t, ok := m.selected(); ok {
				m.delete(t.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+s":
			m.save()
			return m, nil
		case "esc":
			m.close()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.form.next()
			return m, nil
		case "enter":
			if m.form.focused == fieldSubject {
				m.form.next()
				return m, nil
			}
		}
		m.form.err = ""
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m Model) updateView(msg tea.Msg, id int) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	t, found := m.store.Get(id)
	if !found {
		m.close()
		return m, nil
	}
	switch km.String() {
	case "esc", "v", "q":
		m.close()
	case "ctrl+c":
		return m, tea.Quit
	case "e":
		m.openEdit(id)
	case "d":
		m.close()
		m.delete(id)
	case "y":
		if err := m.copyFn(t.Notes); err != nil {
			m.setStatus("clipboard: "+err.Error(), true)
		} else {
			m.setStatus("copied notes", false)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if formOpen(m.mode) {
		return m.place(m.formView())
	}
	if v, ok := m.mode.(Viewing); ok {
		if t, found := m.store.Get(v.ID); found {
			return m.place(m.detailView(t))
		}
	}

	content := m.list.View()
	if len(m.list.Items()) == 0 {
		content = m.list.Title + "\n\n" + mutedStyle.Render("No to-dos yet. Press a to add one.")
	}
	if m.status != "" {
		content += "\n" + m.statusLine()
	}
	return panelStyle.Render(content)
}

func (m Model) place(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) formView() string {
	title := "New To-Do"
	if e, ok := m.mode.(Editing); ok {
		title = fmt.Sprintf("Edit To-Do #%d", e.ID)
	}

	subjectLabel, notesLabel := labelStyle, labelStyle
	if m.form.focused == fieldSubject {
		subjectLabel = focusedLabel
	} else {
		notesLabel = focusedLabel
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(subjectLabel.Render("Subject"))
	b.WriteString(m.form.subject.View())
	b.WriteString("\n\n")
	b.WriteString(notesLabel.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(m.form.notes.View())
	b.WriteString("\n\n")
	if m.form.err != "" {
		b.WriteString(errorStyle.Render(m.form.err))
		b.WriteString("\n")
	}
	hint := "[Tab] Next field   [Ctrl+S] Save   [Esc] Cancel"
	if subject, _ := m.form.values(); !model.ValidSubject(subject) {
		hint = "[Tab] Next field   [Esc] Cancel   (subject required to save)"
	}
	b.WriteString(helpStyle.Render(hint))
	return modalStyle.Width(m.modalWidth()).Render(b.String())
}

func (m Model) detailView(t model.Todo) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Subject))
	b.WriteString("\n\n")
	b.WriteString(m.renderNotes(t.Notes))
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.statusLine())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[e] Edit   [d] Delete   [y] Copy notes   [Esc] Close"))
	return modalStyle.Width(m.modalWidth()).Render(b.String())
}

func (m Model) renderNotes(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return mutedStyle.Render("(no notes)")
	}
	if m.md == nil {
		return notes
	}
	out, err := m.md.Render(notes)
	if err != nil {
		debug.Log("render notes: %v", err)
		return notes
	}
	return strings.TrimSpace(out)
}

func (m Model) modalWidth() int {
	w := m.width - 10
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

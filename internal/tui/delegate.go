package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/ui"
)

// todoItem adapts model.Todo to bubbles/list.Item.
type todoItem struct {
	model.Todo
}

func (i todoItem) Title() string       { return i.Subject }
func (i todoItem) Description() string { return oneLine(i.Preview()) }
func (i todoItem) FilterValue() string { return i.Subject }

func toItems(todos []model.Todo) []list.Item {
	out := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoItem{t})
	}
	return out
}

// oneLine flattens line breaks so a preview stays on its row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// itemDelegate renders a todo as a subject row plus a preview row.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	width := m.Width() - 4
	if width < 10 {
		width = 10
	}

	prefix := "  "
	subject := ui.Truncate(oneLine(it.Subject), width)
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
		subject = titleStyle.Render(subject)
	}
	preview := it.Description()
	if preview == "" {
		preview = "(no notes)"
	}
	fmt.Fprintf(w, "%s%s\n  %s", prefix, subject, mutedStyle.Render(ui.Truncate(preview, width)))
}

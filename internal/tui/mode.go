package tui

// Mode is the single piece of state saying which modal, if any, is open.
// Only the four types below implement it.
type Mode interface {
	isMode()
}

// Closed means no modal is open; the list has focus.
type Closed struct{}

// Creating means the form is open for a new todo.
type Creating struct{}

// Editing means the form is open for the todo with ID.
type Editing struct{ ID int }

// Viewing means the details modal shows the todo with ID.
type Viewing struct{ ID int }

func (Closed) isMode()   {}
func (Creating) isMode() {}
func (Editing) isMode()  {}
func (Viewing) isMode()  {}

// formOpen reports whether mode shows the create/edit form.
func formOpen(m Mode) bool {
	switch m.(type) {
	case Creating, Editing:
		return true
	}
	return false
}

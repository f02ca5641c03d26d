// Package store holds the session's to-dos in memory.
//
// The store is the only place a Todo is created, changed or removed.
// It is not safe for concurrent use; each session owns exactly one.
package store

import (
	"github.com/idilsaglam/todos/internal/debug"
	"github.com/idilsaglam/todos/internal/model"
)

// Store is an insertion-ordered collection of todos.
type Store struct {
	todos  []model.Todo
	nextID int
}

// New returns an empty store. Ids start at 1.
func New() *Store {
	return &Store{nextID: 1}
}

// Create appends a new todo and returns it. The second result is false,
// and nothing changes, when the trimmed subject is empty.
func (s *Store) Create(subject, notes string) (model.Todo, bool) {
	t := model.Todo{ID: s.nextID, Subject: subject, Notes: notes}
	if !t.Valid() {
		debug.Log("create rejected: empty subject")
		return model.Todo{}, false
	}
	s.nextID++
	s.todos = append(s.todos, t)
	debug.Log("create id=%d", t.ID)
	return t, true
}

// Update replaces subject and notes of the todo with id, keeping its
// position. It reports false when the subject is blank or id is unknown.
func (s *Store) Update(id int, subject, notes string) (model.Todo, bool) {
	if !model.ValidSubject(subject) {
		debug.Log("update id=%d rejected: empty subject", id)
		return model.Todo{}, false
	}
	i := s.index(id)
	if i < 0 {
		debug.Log("update id=%d rejected: not found", id)
		return model.Todo{}, false
	}
	s.todos[i].Subject = subject
	s.todos[i].Notes = notes
	debug.Log("update id=%d", id)
	return s.todos[i], true
}

// Delete removes the todo with id. Unknown ids are ignored.
func (s *Store) Delete(id int) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	debug.Log("delete id=%d", id)
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Get returns the todo with id.
func (s *Store) Get(id int) (model.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i], true
}

// Len returns the number of todos held.
func (s *Store) Len() int { return len(s.todos) }

func (s *Store) index(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

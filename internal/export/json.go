// Package export renders the current collection for other programs.
// Output only: nothing here reads todos back in.
package export

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/idilsaglam/todos/internal/model"
)

// WriteJSON writes todos as an indented JSON array, always an array even
// when empty.
func WriteJSON(w io.Writer, todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

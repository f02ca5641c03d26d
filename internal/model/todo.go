package model

import "strings"

// PreviewLimit is the number of characters of notes shown in summaries.
const PreviewLimit = 60

// Ellipsis marks a truncated preview.
const Ellipsis = "..."

// Todo is the domain model for a to-do entry.
type Todo struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	Notes   string `json:"notes"`
}

// ValidSubject reports whether s is acceptable as a subject.
// Only the trimmed form is checked; callers store the raw text.
func ValidSubject(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Valid reports whether t may be stored.
func (t Todo) Valid() bool { return ValidSubject(t.Subject) }

// Preview returns the summary form of the todo's notes.
func (t Todo) Preview() string { return Preview(t.Notes) }

// Preview returns notes unchanged when they fit in PreviewLimit characters,
// otherwise the first PreviewLimit characters followed by Ellipsis.
// Characters are counted as runes so multi-byte text is never split.
func Preview(notes string) string {
	r := []rune(notes)
	if len(r) <= PreviewLimit {
		return notes
	}
	return string(r[:PreviewLimit]) + Ellipsis
}

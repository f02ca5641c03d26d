package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store"
)

type harness struct {
	store    *store.Store
	sess     *Session
	out, err bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{store: store.New()}
	h.sess = NewSession(h.store, strings.NewReader(""), &h.out, &h.err)
	return h
}

func (h *harness) exec(t *testing.T, lines ...string) {
	t.Helper()
	for _, ln := range lines {
		if err := h.sess.Exec(ln); err != nil {
			t.Fatalf("Exec(%q): %v", ln, err)
		}
	}
}

func (h *harness) reset() {
	h.out.Reset()
	h.err.Reset()
}

func TestSession_AddAndList(t *testing.T) {
	h := newHarness(t)
	h.exec(t, `add -n "2%" Buy milk`)
	if !strings.Contains(h.out.String(), "added #1") {
		t.Errorf("unexpected output %q", h.out.String())
	}
	want := []model.Todo{{ID: 1, Subject: "Buy milk", Notes: "2%"}}
	if got := h.store.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("store = %+v, want %+v", got, want)
	}

	h.reset()
	h.exec(t, "ls")
	out := h.out.String()
	for _, s := range []string{"Total 1", "#1", "Buy milk", "2%"} {
		if !strings.Contains(out, s) {
			t.Errorf("ls output missing %q:\n%s", s, out)
		}
	}
}

func TestSession_AddBlankSubjectRejected(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "add", `add "   "`, `add -n notes`)
	if h.store.Len() != 0 {
		t.Errorf("blank adds changed the store: %+v", h.store.List())
	}
	if got := strings.Count(h.err.String(), "add: empty subject"); got != 3 {
		t.Errorf("expected 3 rejections, got %d:\n%s", got, h.err.String())
	}
}

func TestSession_ListEmpty(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "ls")
	if !strings.Contains(h.out.String(), "no to-dos") {
		t.Errorf("expected empty marker:\n%s", h.out.String())
	}
}

func TestSession_ListPreviewTruncated(t *testing.T) {
	h := newHarness(t)
	long := strings.Repeat("x", 61)
	h.exec(t, "add -n "+long+" Long one")
	h.reset()
	h.exec(t, "ls")
	out := h.out.String()
	if !strings.Contains(out, strings.Repeat("x", 60)+"...") {
		t.Errorf("expected truncated preview:\n%s", out)
	}
	if strings.Contains(out, long) {
		t.Errorf("full notes leaked into list:\n%s", out)
	}
}

func TestSession_Edit(t *testing.T) {
	h := newHarness(t)
	h.exec(t, `add -n "first notes" A`, "add B")

	h.exec(t, "edit 1 A2")
	if got, _ := h.store.Get(1); got.Subject != "A2" || got.Notes != "first notes" {
		t.Errorf("edit without -n should keep notes: %+v", got)
	}

	h.exec(t, `edit -n "new notes" 1 A3`)
	if got, _ := h.store.Get(1); got.Subject != "A3" || got.Notes != "new notes" {
		t.Errorf("edit with -n: %+v", got)
	}

	h.exec(t, "edit -n= 1 A3")
	if got, _ := h.store.Get(1); got.Notes != "" {
		t.Errorf("edit -n= should clear notes: %+v", got)
	}

	var subjects []string
	for _, td := range h.store.List() {
		subjects = append(subjects, td.Subject)
	}
	if !reflect.DeepEqual(subjects, []string{"A3", "B"}) {
		t.Errorf("order changed: %v", subjects)
	}
}

func TestSession_EditRejections(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"edit", "usage: edit"},
		{"edit x Subject", "not a number"},
		{"edit 999 x", "no to-do #999"},
		{"edit 1", "empty subject"},
		{`edit 1 "  "`, "empty subject"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := newHarness(t)
			h.exec(t, "add A")
			h.exec(t, tt.line)
			if !strings.Contains(h.err.String(), tt.want) {
				t.Errorf("stderr %q does not contain %q", h.err.String(), tt.want)
			}
			if got, _ := h.store.Get(1); got.Subject != "A" {
				t.Errorf("rejected edit changed todo: %+v", got)
			}
		})
	}
}

func TestSession_RemoveTwice(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "add A", "add B", "add C")
	h.reset()

	h.exec(t, "rm 2")
	if !strings.Contains(h.out.String(), "removed #2") {
		t.Errorf("unexpected output %q", h.out.String())
	}
	after := h.store.List()

	h.exec(t, "rm 2")
	if !strings.Contains(h.out.String(), "nothing removed") {
		t.Errorf("second rm should report no-op: %q", h.out.String())
	}
	if got := h.store.List(); !reflect.DeepEqual(got, after) {
		t.Errorf("second rm changed state: %+v", got)
	}
	if h.err.Len() != 0 {
		t.Errorf("no-op delete should not be an error: %q", h.err.String())
	}
}

func TestSession_RemoveUsage(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "rm", "rm abc")
	errs := h.err.String()
	if !strings.Contains(errs, "usage: rm <id>") || !strings.Contains(errs, "rm: not a number: abc") {
		t.Errorf("unexpected stderr %q", errs)
	}
}

func TestSession_Show(t *testing.T) {
	h := newHarness(t)
	notes := strings.Repeat("n", 80)
	h.exec(t, "add -n "+notes+" Long notes", "add Bare")
	h.reset()

	h.exec(t, "show 1")
	if !strings.Contains(h.out.String(), notes) {
		t.Errorf("show should print full notes:\n%s", h.out.String())
	}
	h.reset()
	h.exec(t, "show 2")
	if !strings.Contains(h.out.String(), "(no notes)") {
		t.Errorf("expected no-notes marker:\n%s", h.out.String())
	}
	h.exec(t, "show 9")
	if !strings.Contains(h.err.String(), "show: no to-do #9") {
		t.Errorf("unexpected stderr %q", h.err.String())
	}
}

func TestSession_ListJSON(t *testing.T) {
	h := newHarness(t)
	h.exec(t, `add -n "2%" Buy milk`, "add Call mom")
	h.reset()
	h.exec(t, "ls -json")

	var got []model.Todo
	if err := json.Unmarshal(h.out.Bytes(), &got); err != nil {
		t.Fatalf("ls -json output is not JSON: %v\n%s", err, h.out.String())
	}
	if !reflect.DeepEqual(got, h.store.List()) {
		t.Errorf("json = %+v, want %+v", got, h.store.List())
	}
}

func TestSession_New(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "new")
	if !strings.Contains(h.err.String(), "needs a terminal") {
		t.Errorf("expected terminal error, got %q", h.err.String())
	}

	h.sess.prompt = func() (string, string, error) { return "From form", "typed", nil }
	h.exec(t, "new")
	if got, ok := h.store.Get(1); !ok || got.Subject != "From form" || got.Notes != "typed" {
		t.Errorf("form todo = %+v, %v", got, ok)
	}

	h.sess.prompt = func() (string, string, error) { return "", "", huh.ErrUserAborted }
	h.reset()
	h.exec(t, "new")
	if !strings.Contains(h.out.String(), "cancelled") || h.store.Len() != 1 {
		t.Errorf("abort should leave store alone: out=%q len=%d", h.out.String(), h.store.Len())
	}

	h.sess.prompt = func() (string, string, error) { return "", "", errors.New("tty gone") }
	h.exec(t, "new")
	if !strings.Contains(h.err.String(), "new: tty gone") {
		t.Errorf("unexpected stderr %q", h.err.String())
	}
}

func TestSession_ParseAndUnknown(t *testing.T) {
	h := newHarness(t)
	h.exec(t, `add "unterminated`, "frobnicate", "", "   ")
	errs := h.err.String()
	if !strings.Contains(errs, "parse:") {
		t.Errorf("expected parse error, got %q", errs)
	}
	if !strings.Contains(errs, "unknown command: frobnicate") {
		t.Errorf("expected unknown command, got %q", errs)
	}
	if h.store.Len() != 0 {
		t.Errorf("store changed: %+v", h.store.List())
	}
}

func TestSession_RunStopsAtQuit(t *testing.T) {
	var out, errOut bytes.Buffer
	s := store.New()
	in := strings.NewReader("add A\nadd B\nquit\nadd C\n")
	if err := NewSession(s, in, &out, &errOut).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 todos before quit, got %+v", s.List())
	}
}

func TestSession_RunUntilEOF(t *testing.T) {
	var out, errOut bytes.Buffer
	s := store.New()
	in := strings.NewReader("add A\nhelp\nrm 1\n")
	if err := NewSession(s, in, &out, &errOut).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %+v", s.List())
	}
	if !strings.Contains(out.String(), "Commands:") {
		t.Errorf("help not printed:\n%s", out.String())
	}
}

func TestSession_FlagAfterSubjectRejected(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"add Buy milk -n 2%", "add: flag -n after subject"},
		{"add Buy milk --n=2%", "add: flag --n=2% after subject"},
		{"edit 1 Renamed -n later", "edit: flag -n after subject"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := newHarness(t)
			h.exec(t, "add A")
			h.exec(t, tt.line)
			if !strings.Contains(h.err.String(), tt.want) {
				t.Errorf("stderr %q does not contain %q", h.err.String(), tt.want)
			}
			want := []model.Todo{{ID: 1, Subject: "A"}}
			if got := h.store.List(); !reflect.DeepEqual(got, want) {
				t.Errorf("store = %+v, want %+v", got, want)
			}
		})
	}
}

func TestSession_DashWordsInSubjectAllowed(t *testing.T) {
	h := newHarness(t)
	h.exec(t, `add Fix -x handling`, `add "Drop -n support"`)
	var subjects []string
	for _, td := range h.store.List() {
		subjects = append(subjects, td.Subject)
	}
	if !reflect.DeepEqual(subjects, []string{"Fix -x handling", "Drop -n support"}) {
		t.Errorf("subjects = %v", subjects)
	}
}

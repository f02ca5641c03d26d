package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-shellwords"
	"golang.org/x/term"

	"github.com/idilsaglam/todos/internal/export"
	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/ui"
)

// Store is the part of the todo store a session drives.
type Store interface {
	Create(subject, notes string) (model.Todo, bool)
	Update(id int, subject, notes string) (model.Todo, bool)
	Delete(id int)
	List() []model.Todo
	Get(id int) (model.Todo, bool)
	Len() int
}

// errQuit ends the session loop without being reported.
var errQuit = errors.New("quit")

// Session reads one command per line and applies it to a store.
type Session struct {
	store       Store
	in          io.Reader
	out, errOut io.Writer
	interactive bool

	// prompt asks for a subject and notes; nil when no terminal is attached.
	prompt func() (subject, notes string, err error)
}

// NewSession returns a session over s. When in is a terminal the session
// prints a prompt and enables the `new` form.
func NewSession(s Store, in io.Reader, out, errOut io.Writer) *Session {
	sess := &Session{store: s, in: in, out: out, errOut: errOut}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		sess.interactive = true
		sess.prompt = promptForm
	}
	return sess
}

// Run processes lines until EOF or quit.
func (s *Session) Run() error {
	sc := bufio.NewScanner(s.in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if s.interactive {
			fmt.Fprint(s.out, ui.C(ui.Current().Accent, "todos> "))
		}
		if !sc.Scan() {
			break
		}
		if err := s.Exec(sc.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Exec runs a single command line. Bad input is reported to the user and
// is not an error; only output failures and quit are returned.
func (s *Session) Exec(line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		ui.Fail(s.errOut, "parse: "+err.Error())
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		printSessionHelp(s.out)
	case "add":
		s.doAdd(a)
	case "edit":
		s.doEdit(a)
	case "rm":
		s.doRemove(a)
	case "show":
		s.doShow(a)
	case "ls":
		return s.doList(a)
	case "new":
		s.doNew()
	default:
		ui.Fail(s.errOut, "unknown command: "+cmd+" (try help)")
	}
	return nil
}

func printSessionHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  add [-n notes] <subject...>        Add a to-do
  edit [-n notes] <id> <subject...>  Replace subject (and notes with -n)
  rm <id>                            Remove a to-do
  show <id>                          Show subject and full notes
  ls [-json]                         List to-dos
  new                                Fill in a form (terminal only)
  quit                               Leave; everything is discarded

Flags come before the subject.

Examples:
  add -n "2%" Buy milk
  edit 1 Buy oat milk
  rm 1
`)
}

// -------------- commands ----------------

func (s *Session) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.errOut)
	return fs
}

func (s *Session) doAdd(args []string) {
	fs := s.flags("add")
	notes := fs.String("n", "", "notes")
	if err := fs.Parse(args); err != nil {
		return
	}
	if f, ok := strayFlag(fs, fs.Args()); ok {
		ui.Fail(s.errOut, "add: flag "+f+" after subject; usage: add [-n notes] <subject...>")
		return
	}
	subject := strings.Join(fs.Args(), " ")
	t, ok := s.store.Create(subject, *notes)
	if !ok {
		ui.Fail(s.errOut, "add: empty subject")
		return
	}
	ui.OK(s.out, fmt.Sprintf("added #%d", t.ID))
}

func (s *Session) doEdit(args []string) {
	fs := s.flags("edit")
	notes := fs.String("n", "", "notes")
	if err := fs.Parse(args); err != nil {
		return
	}
	rest := fs.Args()
	if len(rest) < 1 {
		ui.Fail(s.errOut, "usage: edit [-n notes] <id> <subject...>")
		return
	}
	id, ok := s.parseID("edit", rest[0])
	if !ok {
		return
	}
	if f, stray := strayFlag(fs, rest[1:]); stray {
		ui.Fail(s.errOut, "edit: flag "+f+" after subject; usage: edit [-n notes] <id> <subject...>")
		return
	}
	cur, found := s.store.Get(id)
	if !found {
		ui.Fail(s.errOut, fmt.Sprintf("edit: no to-do #%d", id))
		return
	}
	newNotes := cur.Notes
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "n" {
			newNotes = *notes
		}
	})
	if _, ok := s.store.Update(id, strings.Join(rest[1:], " "), newNotes); !ok {
		ui.Fail(s.errOut, "edit: empty subject")
		return
	}
	ui.OK(s.out, fmt.Sprintf("updated #%d", id))
}

func (s *Session) doRemove(args []string) {
	if len(args) != 1 {
		ui.Fail(s.errOut, "usage: rm <id>")
		return
	}
	id, ok := s.parseID("rm", args[0])
	if !ok {
		return
	}
	if _, found := s.store.Get(id); !found {
		fmt.Fprintln(s.out, ui.C(ui.Current().Muted, fmt.Sprintf("no to-do #%d (nothing removed)", id)))
		return
	}
	s.store.Delete(id)
	ui.OK(s.out, fmt.Sprintf("removed #%d", id))
}

func (s *Session) doShow(args []string) {
	if len(args) != 1 {
		ui.Fail(s.errOut, "usage: show <id>")
		return
	}
	id, ok := s.parseID("show", args[0])
	if !ok {
		return
	}
	t, found := s.store.Get(id)
	if !found {
		ui.Fail(s.errOut, fmt.Sprintf("show: no to-do #%d", id))
		return
	}
	th := ui.Current()
	lines := []string{
		ui.C(th.ID, fmt.Sprintf("#%d", t.ID)) + " " + ui.C(th.Title, t.Subject),
		"",
	}
	if t.Notes == "" {
		lines = append(lines, ui.C(th.Muted, "(no notes)"))
	} else {
		lines = append(lines, strings.Split(t.Notes, "\n")...)
	}
	ui.Panel(s.out, lines)
}

func (s *Session) doList(args []string) error {
	fs := s.flags("ls")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return nil
	}
	todos := s.store.List()
	if *asJSON {
		return export.WriteJSON(s.out, todos)
	}

	th := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", ui.C(th.Title, "My To-Do List"), ui.C(th.Accent, "Total"), s.store.Len()),
		"",
	}
	lines = append(lines, listLines(todos)...)
	lines = append(lines, "", ui.C(th.Muted, `Tip: add with add -n "2%" Buy milk`))
	ui.Panel(s.out, lines)
	return nil
}

func (s *Session) doNew() {
	if s.prompt == nil {
		ui.Fail(s.errOut, "new: needs a terminal; use add")
		return
	}
	subject, notes, err := s.prompt()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(s.out, ui.C(ui.Current().Muted, "cancelled"))
			return
		}
		ui.Fail(s.errOut, "new: "+err.Error())
		return
	}
	t, ok := s.store.Create(subject, notes)
	if !ok {
		ui.Fail(s.errOut, "new: empty subject")
		return
	}
	ui.OK(s.out, fmt.Sprintf("added #%d", t.ID))
}

// strayFlag finds a bare token among args naming one of fs's flags. The flag
// package stops at the first positional argument, so such a token would
// otherwise end up in the subject.
func strayFlag(fs *flag.FlagSet, args []string) (string, bool) {
	for _, a := range args {
		name := strings.TrimLeft(a, "-")
		if name == a || name == "" || len(a)-len(name) > 2 {
			continue
		}
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if fs.Lookup(name) != nil {
			return a, true
		}
	}
	return "", false
}

func (s *Session) parseID(cmd, arg string) (int, bool) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		ui.Fail(s.errOut, cmd+": not a number: "+arg)
		return 0, false
	}
	return id, true
}

// -------------- rendering helpers --------------

const subjectWidth = 40

func listLines(todos []model.Todo) []string {
	th := ui.Current()
	if len(todos) == 0 {
		return []string{ui.C(th.Muted, "no to-dos")}
	}
	out := make([]string, 0, len(todos)*2)
	for _, t := range todos {
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(th.ID, fmt.Sprintf("#%-3d", t.ID)),
			th.Bullet,
			ui.Truncate(strings.Join(strings.Fields(t.Subject), " "), subjectWidth)))
		if p := t.Preview(); p != "" {
			out = append(out, "       "+ui.C(th.Muted, strings.Join(strings.Fields(p), " ")))
		}
	}
	return out
}

// promptForm collects a new to-do through a huh form.
func promptForm() (subject, notes string, err error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&subject).
				Validate(func(v string) error {
					if !model.ValidSubject(v) {
						return errors.New("subject cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Title("Notes").
				Description("Optional").
				Value(&notes),
		),
	)
	err = form.Run()
	return subject, notes, err
}

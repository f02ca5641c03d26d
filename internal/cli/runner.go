package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todos/internal/config"
	"github.com/idilsaglam/todos/internal/debug"
	"github.com/idilsaglam/todos/internal/store"
	"github.com/idilsaglam/todos/internal/tui"
	"github.com/idilsaglam/todos/internal/ui"
)

// Options carry root flags. Empty fields fall back to the config file.
type Options struct {
	ConfigPath string // default: XDG config path
	Theme      string
	Color      string
	Debug      bool

	In       io.Reader
	Out, Err io.Writer
}

func (o *Options) defaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if opt.Debug {
		debug.SetEnabled(true)
	}

	cfg, err := loadConfig(opt)
	if err != nil {
		ui.Fail(opt.Err, "config: "+err.Error())
		return 2
	}
	applyConfig(cfg)

	cmd := "tui"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "tui":
		return doTUI(cfg, opt)

	case "shell":
		sess := NewSession(store.New(), opt.In, opt.Out, opt.Err)
		if err := sess.Run(); err != nil {
			ui.Fail(opt.Err, "shell: "+err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todos - a to-do list that lives as long as the session

Usage:
  todos [flags] [subcommand]

Subcommands:
  tui                Interactive list (default)
  shell              Line-oriented session on stdin
  help               Show this help

Flags:
  -config <path>     Config file (default $XDG_CONFIG_HOME/todos/config.yaml)
  -theme <name>      classic, neon or mono
  -color <mode>      auto, always or never
  -debug             Debug log to stderr (TUI: to a file in the temp dir)

Nothing is saved: quitting discards every to-do.
`)
}

func loadConfig(opt Options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opt.ConfigPath != "" {
		cfg, err = config.LoadFrom(opt.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}
	if opt.Color != "" {
		cfg.Color = opt.Color
	}
	return cfg, cfg.Validate()
}

func applyConfig(cfg config.Config) {
	ui.SetColorForcing(cfg.Color == config.ColorAlways, cfg.Color == config.ColorNever)
	ui.SetTheme(cfg.Theme)
}

func doTUI(cfg config.Config, opt Options) int {
	// The TUI owns the terminal, so debug output goes to a file instead.
	if debug.Enabled() {
		path := filepath.Join(os.TempDir(), "todos-debug.log")
		f, err := tea.LogToFile(path, "todos")
		if err != nil {
			ui.Fail(opt.Err, "debug log: "+err.Error())
			return 1
		}
		defer f.Close()
		debug.SetOutput(f)
	}

	err := tui.Run(store.New(), tui.Options{
		Markdown:  cfg.Markdown,
		AltScreen: cfg.AltScreen,
	})
	if err != nil {
		ui.Fail(opt.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

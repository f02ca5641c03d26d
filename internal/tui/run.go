package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run starts the interactive program over s and blocks until the user quits.
func Run(s Store, opt Options) error {
	var popts []tea.ProgramOption
	if opt.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	p := tea.NewProgram(New(s, opt), popts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// widthHeight is the terminal size, or 80x24 when stdout is not a terminal.
// The program corrects it from tea.WindowSizeMsg once running.
func widthHeight() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

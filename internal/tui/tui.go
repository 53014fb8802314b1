package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
)

// Run starts the configuration editor.
func Run(manager *config.Manager) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("the cci editor requires a terminal; use 'cci list' or 'cci env' in scripts")
	}

	p := tea.NewProgram(NewModel(manager), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"magpie/data"
	"magpie/logger"
	"magpie/services"

	tea "github.com/charmbracelet/bubbletea"
)

type TUIConfig struct {
	Workflow   *services.Workflow
	Session    *data.Session
	Repository data.TranscriptRepository
	SavePath   string
}

// Run starts the TUI application
func Run(config TUIConfig) error {
	logger.StatusChan = make(chan string, 16)
	defer func() {
		// nil the global first so late Screen calls fall back to the
		// console, then close to release the blocked status listener
		ch := logger.StatusChan
		logger.StatusChan = nil
		close(ch)
	}()

	p := tea.NewProgram(
		newChatViewModel(config),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

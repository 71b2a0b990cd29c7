package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"magpie/data"
	"magpie/logger"
)

type exchangeView struct {
	question string
	rendered string
}

type chatViewModel struct {
	config   TUIConfig
	textarea textarea.Model
	viewport viewport.Model

	transcript []exchangeView
	sending    bool
	ready      bool
	width      int
	height     int
	err        error

	statusMessage string
}

type answerMsg struct {
	question string
	response string
	strategy string
}

type statusMsg string

type chatErrorMsg struct {
	err error
}

func newChatViewModel(config TUIConfig) *chatViewModel {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything..."
	ta.Focus()
	ta.CharLimit = 5000
	ta.SetHeight(3)

	vp := viewport.New(80, 20)

	return &chatViewModel{
		config:     config,
		textarea:   ta,
		viewport:   vp,
		transcript: recentTranscript(config.Repository, 5),
	}
}

// recentTranscript seeds the view with stored exchanges so a restarted
// session picks up where the last one left off.
func recentTranscript(repository data.TranscriptRepository, maxCount int) []exchangeView {
	if repository == nil {
		return nil
	}

	exchanges, err := repository.RecentExchanges(maxCount)
	if err != nil {
		logger.Debug.Printf("could not load stored exchanges: %v", err)
		return nil
	}

	// newest first from the store, oldest first on screen
	views := make([]exchangeView, 0, len(exchanges))
	for i := len(exchanges) - 1; i >= 0; i-- {
		views = append(views, exchangeView{
			question: exchanges[i].Question,
			rendered: renderAnswer(exchanges[i].Answer, 0),
		})
	}
	return views
}

func (m *chatViewModel) Init() tea.Cmd {
	logger.Debug.Printf("chat tui init")

	return tea.Batch(
		textarea.Blink,
		m.listenForStatus(),
	)
}

func (m *chatViewModel) listenForStatus() tea.Cmd {
	return func() tea.Msg {
		if logger.StatusChan == nil {
			return nil
		}

		msg, ok := <-logger.StatusChan
		if !ok {
			return nil
		}

		return statusMsg(msg)
	}
}

func (m *chatViewModel) sendQuestion(question string) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logger.Debug.Printf("question processing panicked: %v", r)
				msg = chatErrorMsg{err: fmt.Errorf("%v", r)}
			}
		}()

		response, strategy := m.config.Workflow.ProcessQuestion(question)
		return answerMsg{question: question, response: response, strategy: strategy.String()}
	}
}

func (m *chatViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case statusMsg:
		m.statusMessage = string(msg)
		return m, m.listenForStatus()

	case answerMsg:
		m.sending = false
		m.statusMessage = ""
		m.config.Session.Record(msg.question, msg.response)
		if m.config.Repository != nil {
			_, err := m.config.Repository.InsertExchange(data.Exchange{
				Mode:     "dual",
				Question: msg.question,
				Answer:   msg.response,
				Strategy: msg.strategy,
			})
			if err != nil {
				logger.Debug.Printf("could not store exchange: %v", err)
			}
		}
		m.transcript = append(m.transcript, exchangeView{
			question: msg.question,
			rendered: renderAnswer(msg.response, m.width),
		})
		m.updateViewportContent()
		return m, nil

	case chatErrorMsg:
		m.sending = false
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width - 4)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 10
		m.ready = true
		m.updateViewportContent()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlS:
			if err := m.config.Session.Save(m.config.SavePath); err != nil {
				m.statusMessage = "❌ Could not save conversation: " + err.Error()
			} else {
				m.statusMessage = "💾 Conversation saved to " + m.config.SavePath
			}
			return m, nil

		case tea.KeyEnter:
			question := strings.TrimSpace(m.textarea.Value())
			if question == "" || m.sending {
				return m, nil
			}
			m.textarea.Reset()
			m.sending = true
			// the status listener armed in Init re-arms itself from
			// statusMsg, so sending never spawns another one
			return m, m.sendQuestion(question)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m *chatViewModel) updateViewportContent() {
	var sb strings.Builder
	for _, x := range m.transcript {
		sb.WriteString(userPromptStyle.Render("You: " + x.question))
		sb.WriteString("\n")
		sb.WriteString(x.rendered)
		sb.WriteString("\n")
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m *chatViewModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render(m.err.Error())
	case m.sending:
		status = sendingStyle.Render("Thinking... ") + dimStyle.Render(m.statusMessage)
	default:
		status = dimStyle.Render(m.statusMessage)
	}

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		headerStyle.Render("magpie - dual-model assistant"),
		m.viewport.View(),
		status,
		m.textarea.View(),
		helpStyle.Render("enter: send • ctrl+s: save • esc: quit"),
	)
}

func renderAnswer(response string, width int) string {
	if width < 10 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return response
	}

	out, err := renderer.Render(response)
	if err != nil {
		return response
	}
	return out
}

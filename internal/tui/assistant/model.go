// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     assistant
// Description: Main Bubbletea model for the assistant window
// License:     MIT
// ============================================================================

package assistant

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	app "github.com/voicedesk/voicedesk/internal/assistant"
	"github.com/voicedesk/voicedesk/internal/history"
)

// recognitionLanguages are the languages cycled with the l key
var recognitionLanguages = []string{"en-US", "de-DE", "fr-FR", "es-ES"}

// targetLanguages are the response languages cycled with the t key
var targetLanguages = []string{"en", "de", "fr", "es"}

// Model is the Bubbletea model for the assistant window
type Model struct {
	width  int
	height int
	ready  bool

	viewport viewport.Model
	spinner  spinner.Model

	controller *app.App
	state      app.State
	entries    []*history.Entry
	err        error
}

// New creates the assistant window model
func New(controller *app.App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return Model{
		spinner:    sp,
		controller: controller,
		state:      controller.State(),
	}
}

// Init starts the spinner and subscribes to controller events
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForEvent(),
		tea.EnterAltScreen,
	)
}

// waitForEvent returns a command that delivers the next controller event
func (m Model) waitForEvent() tea.Cmd {
	events := m.controller.Events()
	return func() tea.Msg {
		ev, ok := <-events
		return appEventMsg{event: ev, ok: ok}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		footerHeight := 4
		viewportHeight := msg.Height - headerHeight - footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.state == app.StateListening || m.state == app.StateProcessing || m.state == app.StateSpeaking {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case appEventMsg:
		if !msg.ok {
			// Controller shut down
			return m, tea.Quit
		}

		switch msg.event.Type {
		case app.EventStateChanged:
			m.state = msg.event.State
			if m.state != app.StateError {
				m.err = nil
			}
			cmds = append(cmds, m.spinner.Tick)

		case app.EventTranscript:
			m.entries = append(m.entries, msg.event.Entry)
			m.updateViewportContent()
			m.viewport.GotoBottom()

		case app.EventError:
			m.err = msg.event.Err
		}
		cmds = append(cmds, m.waitForEvent())

	case clearedMsg:
		if msg.err == nil {
			m.entries = nil
			m.updateViewportContent()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter", " ":
		m.controller.Toggle()
		return m, m.spinner.Tick

	case "l":
		// Only while nothing is in flight
		if m.state == app.StateIdle {
			m.controller.SetLanguage(nextLanguage(recognitionLanguages, m.controller.Language()))
		}
		return m, nil

	case "t":
		if m.state == app.StateIdle {
			m.controller.SetTargetLanguage(nextLanguage(targetLanguages, m.controller.TargetLanguage()))
		}
		return m, nil

	case "c":
		controller := m.controller
		return m, func() tea.Msg {
			return clearedMsg{err: controller.ClearTranscript()}
		}

	case "pgup":
		m.viewport.ViewUp()
		return m, nil

	case "pgdown":
		m.viewport.ViewDown()
		return m, nil
	}

	return m, nil
}

// nextLanguage returns the entry after current, wrapping around
func nextLanguage(list []string, current string) string {
	for i, lang := range list {
		if lang == current {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

// View renders the window
func (m Model) View() string {
	if !m.ready {
		return "Starting VoiceDesk..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(TranscriptPanelStyle.
		Width(m.width - 2).
		Height(m.viewport.Height + 2).
		Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	subtitle := HelpDescStyle.Render("press Enter and speak")

	header := lipgloss.JoinHorizontal(lipgloss.Center, logo, strings.Repeat(" ", 3), subtitle)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderStatusBar() string {
	// Left: state with icon, spinner while busy
	stateStr := m.state.Icon() + " " + m.state.String()
	var left string
	switch m.state {
	case app.StateListening:
		left = m.spinner.View() + StateListeningStyle.Render(" "+stateStr)
	case app.StateProcessing:
		left = m.spinner.View() + StateProcessingStyle.Render(" "+stateStr)
	case app.StateSpeaking:
		left = m.spinner.View() + StateSpeakingStyle.Render(" "+stateStr)
	case app.StateError:
		errText := stateStr
		if m.err != nil {
			errText = fmt.Sprintf("%s %v", stateStr, m.err)
		}
		left = StateErrorStyle.Render(errText)
	default:
		left = StateIdleStyle.Render(stateStr)
	}

	// Right: languages and version
	right := HelpDescStyle.Render(fmt.Sprintf("%s → %s  v%s",
		m.controller.Language(), m.controller.TargetLanguage(), app.Version))

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := m.width - leftLen - rightLen - 4
	if padding < 1 {
		padding = 1
	}

	return StatusBarStyle.Width(m.width - 2).Render(
		left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Enter", "talk/stop"),
		RenderKeyHint("l", "language"),
		RenderKeyHint("t", "reply language"),
		RenderKeyHint("c", "clear"),
		RenderKeyHint("PgUp/PgDn", "scroll"),
		RenderKeyHint("q", "quit"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent rebuilds the transcript view
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, entry := range m.entries {
		timeStr := entry.Timestamp.Format("15:04:05")

		switch entry.Role {
		case history.RoleUser:
			content.WriteString(RoleLabelUserStyle.Render("You") + "  " + TimestampStyle.Render(timeStr))
			content.WriteString("\n")
			content.WriteString(UserMessageStyle.Width(m.width - 6).Render(entry.Text))
			content.WriteString("\n")

		case history.RoleAssistant:
			content.WriteString(RoleLabelAssistantStyle.Render("VoiceDesk") + "  " + TimestampStyle.Render(timeStr))
			content.WriteString("\n")
			content.WriteString(AssistantMessageStyle.Width(m.width - 6).Render(entry.Text))
			content.WriteString("\n")

		case history.RoleSystem:
			content.WriteString(SystemMessageStyle.Render(timeStr + "  " + entry.Text))
			content.WriteString("\n")
		}
	}

	if len(m.entries) == 0 {
		content.WriteString(HelpDescStyle.Render("\n  No conversation yet. Press Enter and say something."))
	}

	m.viewport.SetContent(content.String())
}

// Run starts the assistant window and blocks until it closes
func Run(controller *app.App) error {
	p := tea.NewProgram(New(controller), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

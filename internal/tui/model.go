package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"solobot/internal/chat"
	"solobot/internal/domain"
	"solobot/internal/session"
)

// ChatPort is the TUI-facing subset of the chat engine.
type ChatPort interface {
	Process(state chat.State, input string) (chat.State, domain.Turn, error)
}

// SessionPort is the TUI-facing subset of the session store.
type SessionPort interface {
	Save(id string, turns []domain.Turn) error
	List() []session.Info
	Load(id string) (*domain.Session, error)
	Delete(id string) error
}

const greeting = "Olá! Sou seu assistente de fertilidade do solo. Como posso ajudar?"

type mode int

const (
	modeChat mode = iota
	modeSessions
)

// Model is the Bubble Tea model for the chat application.
type Model struct {
	engine    ChatPort
	store     SessionPort
	input     textinput.Model
	viewport  viewport.Model
	mode      mode
	state     chat.State
	turns     []domain.Turn
	sessionID string
	sessions  []session.Info
	cursor    int
	status    string
	ready     bool
}

// New creates a new TUI model with a fresh session.
func New(engine ChatPort, store SessionPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Digite sua mensagem (sair encerra e salva)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:    engine,
		store:     store,
		input:     ti,
		viewport:  vp,
		sessionID: session.NewID(),
		status:    "Nova conversa. ctrl+h histórico, ctrl+n nova conversa.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around transcript and input boxes
		_, rh := transcriptBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input box + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		// Global quits; an unsaved tail is lost, saving happens on "sair"
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.mode == modeSessions {
			return m.updateSessions(msg)
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "ctrl+n":
			m.turns = nil
			m.state = chat.State{}
			m.sessionID = session.NewID()
			m.status = "Nova conversa iniciada."
			m.viewport.SetContent(m.renderContent())
			return m, nil
		case "ctrl+h":
			m.sessions = m.store.List()
			m.cursor = 0
			m.mode = modeSessions
			m.status = "enter carrega, d exclui, esc volta."
			m.viewport.SetContent(m.renderContent())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	entrada := strings.TrimSpace(m.input.Value())
	if entrada == "" {
		return m, nil
	}
	if strings.EqualFold(entrada, "sair") {
		if err := m.store.Save(m.sessionID, m.turns); err != nil {
			m.status = "Erro ao salvar: " + err.Error()
			return m, nil
		}
		return m, tea.Quit
	}
	m.input.Reset()
	state, turn, err := m.engine.Process(m.state, entrada)
	if err != nil {
		m.status = "Erro: " + err.Error()
		return m, nil
	}
	m.state = state
	m.turns = append(m.turns, turn)
	m.status = fmt.Sprintf("Confiança: %.2f", turn.Confianca)
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) updateSessions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeChat
		m.status = "De volta à conversa."
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case "down":
		if len(m.sessions) > 0 {
			m.cursor = (m.cursor + 1) % len(m.sessions)
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil
	case "up":
		if len(m.sessions) > 0 {
			m.cursor = (m.cursor - 1 + len(m.sessions)) % len(m.sessions)
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil
	case "d":
		if len(m.sessions) > 0 {
			info := m.sessions[m.cursor]
			if err := m.store.Delete(info.ID); err != nil {
				m.status = "Erro ao excluir: " + err.Error()
			} else {
				m.status = "Sessão excluída: " + info.ID
			}
			m.sessions = m.store.List()
			if m.cursor >= len(m.sessions) {
				m.cursor = 0
			}
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil
	case "enter":
		if len(m.sessions) == 0 {
			return m, nil
		}
		info := m.sessions[m.cursor]
		rec, err := m.store.Load(info.ID)
		if err != nil {
			m.status = "Erro ao carregar: " + err.Error()
			m.viewport.SetContent(m.renderContent())
			return m, nil
		}
		m.turns = rec.Conversas
		m.state = chat.ResumeState(rec.Conversas)
		m.sessionID = rec.ID
		m.mode = modeChat
		m.status = "Histórico carregado da sessão: " + rec.ID
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoBottom()
		return m, nil
	}
	return m, nil
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Companheiro - Fertilidade do Solo")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	if m.mode == modeSessions {
		return header + "\n" + transcript + "\n" + status
	}
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderContent() string {
	if m.mode == modeSessions {
		return m.renderSessions()
	}
	return m.renderTranscript()
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	b.WriteString(botStyle.Render("Companheiro: ") + greeting + "\n")
	for _, t := range m.turns {
		b.WriteString("\n")
		b.WriteString(userStyle.Render("Você: ") + t.Entrada + "\n")
		b.WriteString(botStyle.Render("Companheiro: ") + t.Resposta + "\n")
	}
	return b.String()
}

func (m Model) renderSessions() string {
	if len(m.sessions) == 0 {
		return "Nenhuma sessão salva."
	}
	var b strings.Builder
	b.WriteString("Sessões salvas:\n\n")
	for i, info := range m.sessions {
		line := fmt.Sprintf("%s - %s (%d mensagens)", info.SavedAt, info.ID, info.Turns)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/holdem-showdown/internal/game"
)

var ErrNotTestMode = errors.New("action injection only available in test mode")

const sidebarWidth = 24

// TUIModel represents the Bubble Tea model for the table
type TUIModel struct {
	logger *log.Logger
	styles TUIStyles

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitting     bool
	focusedPane  int // 0 = log, 1 = input

	// Table state, updated from game events and prompts
	pot          int
	currentBet   int
	players      []game.PlayerView
	turn         *game.TableView
	validActions []game.ValidAction

	// Dimensions
	width  int
	height int

	// Test mode
	testMode    bool
	capturedLog []string
}

// ActionResult is one submitted line of input. Quit is set when the
// player closes the program rather than typing a command.
type ActionResult struct {
	Input string
	Quit  bool
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

type logMsg struct {
	entries []string
}

type tableMsg struct {
	players    []game.PlayerView
	pot        int
	currentBet int
}

type turnMsg struct {
	view  *game.TableView
	valid []game.ValidAction
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, testMode bool) *TUIModel {
	styles := DefaultStyles()

	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Press Enter to deal, 'help' for commands"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Focused).Bold(true)
	ti.Prompt = "> "

	// Tests queue several lines up front; the UI only ever has one in flight
	buffer := 1
	if testMode {
		buffer = 16
	}

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		styles:       styles,
		logViewport:  vp,
		actionInput:  ti,
		actionResult: make(chan ActionResult, buffer),
		focusedPane:  1,
		testMode:     testMode,
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Quit

	case logMsg:
		for _, entry := range msg.entries {
			m.AddLogEntry(entry)
		}
		return m, nil

	case tableMsg, turnMsg:
		m.apply(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.submit(ActionResult{Quit: true})
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.processAction(m.actionInput.Value())
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// apply folds table and turn updates into the model
func (m *TUIModel) apply(msg tea.Msg) {
	switch msg := msg.(type) {
	case tableMsg:
		if msg.players != nil {
			m.players = msg.players
		}
		m.pot = msg.pot
		m.currentBet = msg.currentBet
	case turnMsg:
		m.turn = msg.view
		m.validActions = msg.valid
		if msg.view != nil {
			m.pot = msg.view.Pot
			m.currentBet = msg.view.CurrentBet
			m.players = msg.view.Players
		}
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionStyle := m.styles.ActionPane.Width(m.width - 4)
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(m.styles.Focused)
	}
	actionPane := actionStyle.Render(m.renderActionPane())

	topHeight := max(m.height-lipgloss.Height(actionPane)-2, 3)
	sidebar := m.styles.Sidebar.Width(sidebarWidth).Height(topHeight).Render(m.renderSidebarPane())

	m.logViewport.Width = max(m.width-lipgloss.Width(sidebar)-2, 1)
	m.logViewport.Height = topHeight
	logStyle := m.styles.LogPane
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(m.styles.Focused)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, actionPane)
}

// renderSidebarPane shows the pot and every player's chips
func (m *TUIModel) renderSidebarPane() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Hold'em"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Pot: %d", m.pot)))
	if m.currentBet > 0 {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("  Bet: %d", m.currentBet)))
	}
	b.WriteString("\n\n")

	for _, p := range m.players {
		line := fmt.Sprintf("%s: %d", p.Name, p.Chips)
		switch {
		case p.Bet.IsFolded():
			b.WriteString(m.styles.Info.Render(line + " (folded)"))
		case p.Type == game.Human:
			b.WriteString(m.styles.HandInfo.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderActionPane shows the human's hand and options when it is their turn
func (m *TUIModel) renderActionPane() string {
	var b strings.Builder

	if m.turn != nil {
		me := m.turn.Acting()
		b.WriteString(m.styles.HandInfo.Render(fmt.Sprintf("Hand: %s  Board: %s  Chips: %d  To call: %d",
			m.styles.FormatCards(me.HoleCards), m.styles.FormatCards(m.turn.Community), me.Chips, m.turn.ToCall())))
		b.WriteString("\n")
		b.WriteString(m.renderAvailableActions())
		b.WriteString("\n")
		m.actionInput.Placeholder = "call, check, bet 50, fold, odds, help..."
	} else {
		b.WriteString(m.styles.HandInfo.Render("Waiting..."))
		b.WriteString("\n")
		m.actionInput.Placeholder = "Press Enter to continue, 'quit' to exit"
	}

	b.WriteString(m.actionInput.View())
	b.WriteString("\n")

	if m.focusedPane == 0 {
		b.WriteString(m.styles.Info.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(m.styles.Info.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

// renderAvailableActions renders the engine's valid actions
func (m *TUIModel) renderAvailableActions() string {
	var actions []string
	for _, va := range m.validActions {
		switch va.Action {
		case game.Fold:
			actions = append(actions, m.styles.Error.Render("[fold]"))
		case game.Check:
			actions = append(actions, m.styles.Success.Render("[check]"))
		case game.Call:
			actions = append(actions, m.styles.Success.Render(fmt.Sprintf("[call %d]", va.MinAmount)))
		case game.Raise:
			actions = append(actions, m.styles.Warning.Render(fmt.Sprintf("[bet %d-%d]", va.MinAmount, va.MaxAmount)))
		}
	}
	return m.styles.Actions.Render("Actions: " + strings.Join(actions, " "))
}

// updateDimensions sizes the input to the terminal
func (m *TUIModel) updateDimensions() {
	if m.width <= 0 {
		return
	}
	m.actionInput.Width = max(m.width-10, 10)
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.gameLog = nil
	m.capturedLog = nil
	m.logViewport.SetContent("")
}

// processAction hands a submitted line to whoever is waiting for input
func (m *TUIModel) processAction(input string) {
	if !m.submit(ActionResult{Input: strings.TrimSpace(input)}) {
		m.AddLogEntry(m.styles.Info.Render("Hold on, the table is busy"))
	}
}

func (m *TUIModel) submit(r ActionResult) bool {
	select {
	case m.actionResult <- r:
		return true
	default:
		return false
	}
}

// Actions is the channel submitted input arrives on
func (m *TUIModel) Actions() <-chan ActionResult {
	return m.actionResult
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction submits a line of input as if it had been typed (test mode
// only)
func (m *TUIModel) InjectAction(input string) error {
	if !m.testMode {
		return ErrNotTestMode
	}
	if !m.submit(ActionResult{Input: input}) {
		return fmt.Errorf("action channel full")
	}
	return nil
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

package display

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUITestMode(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	t.Run("test mode captures log entries", func(t *testing.T) {
		tui := NewTUIModelWithOptions(logger, true)

		assert.True(t, tui.IsTestMode())
		assert.Empty(t, tui.GetCapturedLog())

		tui.AddLogEntry("Round 1 • 3 players • You bet first")
		tui.AddLogEntry("*** FLOP ***")

		assert.Equal(t, []string{"Round 1 • 3 players • You bet first", "*** FLOP ***"}, tui.GetCapturedLog())

		tui.ClearLog()
		assert.Empty(t, tui.GetCapturedLog())
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		tui := NewTUIModel(logger)

		assert.False(t, tui.IsTestMode())
		tui.AddLogEntry("Some log entry")
		assert.Nil(t, tui.GetCapturedLog())
	})

	t.Run("action injection works in test mode", func(t *testing.T) {
		tui := NewTUIModelWithOptions(logger, true)

		require.NoError(t, tui.InjectAction("raise 20"))

		result := <-tui.Actions()
		assert.Equal(t, "raise 20", result.Input)
		assert.False(t, result.Quit)
	})

	t.Run("action injection fails in production mode", func(t *testing.T) {
		tui := NewTUIModel(logger)

		err := tui.InjectAction("call")
		assert.ErrorIs(t, err, ErrNotTestMode)
	})
}

func TestTUIKeys(t *testing.T) {
	logger := log.New(io.Discard)

	t.Run("enter submits the input line", func(t *testing.T) {
		m := NewTUIModel(logger)
		m.actionInput.SetValue("  bet 40 ")

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		result := <-m.Actions()
		assert.Equal(t, "bet 40", result.Input)
		assert.Empty(t, m.actionInput.Value())
	})

	t.Run("enter while busy is dropped", func(t *testing.T) {
		m := NewTUIModelWithOptions(logger, true)
		for range 16 {
			require.NoError(t, m.InjectAction("call"))
		}

		m.actionInput.SetValue("fold")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Contains(t, m.GetCapturedLog()[0], "busy")
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		m := NewTUIModel(logger)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)

		result := <-m.Actions()
		assert.True(t, result.Quit)
		assert.Empty(t, m.View())
	})

	t.Run("tab moves focus to the log", func(t *testing.T) {
		m := NewTUIModel(logger)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 0, m.focusedPane)
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, 1, m.focusedPane)
	})
}

func TestTUIView(t *testing.T) {
	m := NewTUIModel(log.New(io.Discard))
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tableMsg{pot: 120, currentBet: 40})

	view := m.View()
	assert.Contains(t, view, "Pot: 120")
	assert.Contains(t, view, "Waiting...")
}

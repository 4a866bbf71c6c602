package screen

import (
	"numfacts/cmd/numfacts/ui"
	"numfacts/internal/facts"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.renderer = m.newRenderer()
		return m, nil

	case actionMsg:
		return m.dispatch(msg.action)

	case configReloadedMsg:
		m.styles = ui.NewStyles(ui.ThemeByName(msg.cfg.UI.Theme))
		m.spinner.Style = m.styles.Spinner
		m.renderer = m.newRenderer()
		m.logger.Debug("styles reloaded", zap.String("theme", msg.cfg.UI.Theme))
		return m, m.waitForConfig()

	case spinner.TickMsg:
		// Let the spinner stop once the fetch settles; dispatch restarts it.
		if !m.state.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.shutdown()
		return m, tea.Quit

	case "enter":
		return m.dispatch(facts.FetchRequested{})

	case "ctrl+r":
		if !m.state.HasError() {
			return m, nil
		}
		return m.dispatch(facts.FetchRequested{})

	case "tab", "down":
		return m.dispatch(facts.SelectCategory(m.state.Picker.Next()))

	case "shift+tab", "up":
		return m.dispatch(facts.SelectCategory(m.state.Picker.Prev()))
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		next, dcmd := m.dispatch(facts.SetNumber(after))
		return next, tea.Batch(cmd, dcmd)
	}
	return m, cmd
}

// dispatch runs one reducer step and turns its effect into a command whose
// result re-enters Update as an actionMsg.
func (m Model) dispatch(a facts.Action) (Model, tea.Cmd) {
	wasLoading := m.state.IsLoading
	next, effect := m.reducer.Reduce(m.state, a)
	m.state = next

	if m.input.Value() != next.TextInput.Value {
		m.input.SetValue(next.TextInput.Value)
	}

	var cmds []tea.Cmd
	if effect != nil {
		cmds = append(cmds, m.runEffect(effect))
	}
	if next.IsLoading && !wasLoading {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) runEffect(effect facts.Effect) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{action: effect(ctx)}
	}
}

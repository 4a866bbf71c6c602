package screen

import (
	"context"

	"numfacts/cmd/numfacts/ui"
	"numfacts/internal/config"
	"numfacts/internal/facts"
	"numfacts/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// Model is the bubbletea model for the fact screen.
type Model struct {
	input    textinput.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer
	markdown bool

	reducer *facts.Reducer
	state   facts.State

	// effects run with ctx; cancel stops them on quit
	ctx    context.Context
	cancel context.CancelFunc

	configUpdates <-chan *config.Config

	width  int
	height int
	logger *zap.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithStyles sets the styles (default: detected theme).
func WithStyles(s ui.Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithConfigUpdates restyles the screen whenever a config arrives on ch.
func WithConfigUpdates(ch <-chan *config.Config) Option {
	return func(m *Model) {
		m.configUpdates = ch
	}
}

// WithPlainFacts renders facts as plain text instead of markdown.
func WithPlainFacts() Option {
	return func(m *Model) {
		m.markdown = false
	}
}

// New creates the screen model over initial, reducing with reducer.
func New(ctx context.Context, reducer *facts.Reducer, initial facts.State, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = initial.TextInput.Label
	ti.SetValue(initial.TextInput.Value)
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(ctx)
	m := Model{
		input:    ti,
		spinner:  sp,
		styles:   ui.DefaultStyles(),
		markdown: true,
		reducer:  reducer,
		state:    initial,
		ctx:      ctx,
		cancel:   cancel,
		width:    80,
		logger:   logging.Get(logging.CategoryUI),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.spinner.Style = m.styles.Spinner
	m.renderer = m.newRenderer()
	return m
}

// State returns the current screen state.
func (m Model) State() facts.State {
	return m.state
}

// Init starts the cursor blink and the config listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.waitForConfig(),
	)
}

// waitForConfig listens for config reloads
func (m Model) waitForConfig() tea.Cmd {
	if m.configUpdates == nil {
		return nil
	}
	ch := m.configUpdates
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// newRenderer builds a glamour renderer wrapped to the current width.
func (m Model) newRenderer() *glamour.TermRenderer {
	if !m.markdown {
		return nil
	}
	style := "light"
	if m.styles.Theme.IsDark {
		style = "dark"
	}
	wrap := m.width - 6
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return nil
	}
	return r
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.shutdown()
	}
	return err
}

// shutdown cancels in-flight effects.
func (m Model) shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
}

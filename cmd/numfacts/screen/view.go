package screen

import (
	"strings"

	"numfacts/internal/picker"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// View renders the screen.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.styles.Header.Render(headerTitle))
	sections = append(sections, "")
	sections = append(sections, m.styles.Label.Render(m.state.TextInput.Label))
	sections = append(sections, m.input.View())
	sections = append(sections, "")
	sections = append(sections, m.renderPicker())
	sections = append(sections, m.styles.RenderDivider(m.width-2))

	switch {
	case m.state.IsLoading:
		sections = append(sections, m.renderLoading())
	case m.state.HasError():
		sections = append(sections, m.renderError())
	}

	if m.state.HasFact() {
		sections = append(sections, m.renderFact())
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderPicker shows every option, highlighting the selected one.
func (m Model) renderPicker() string {
	opts := make([]string, 0, len(m.state.Picker.Options))
	for _, o := range m.state.Picker.Options {
		style := m.styles.Option
		if o == m.state.Picker.Selected {
			style = m.styles.SelectedOption
		}
		opts = append(opts, style.Render(picker.Title(o)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, opts...)
}

func (m Model) renderLoading() string {
	lines := strings.Split(loadingTitle, "\n")
	lines[0] = m.spinner.View() + " " + lines[0]
	return m.styles.Overlay.Render(strings.Join(lines, "\n"))
}

func (m Model) renderError() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.ErrorTitle.Render(errorTitle),
		"",
		m.styles.Body.Render(m.state.ErrorText()),
		"",
		m.styles.Button.Render("[ctrl+r] Retry"),
	)
	return m.styles.ErrorPanel.Render(body)
}

func (m Model) renderFact() string {
	return m.styles.Fact.Render(m.safeRender(m.state.FactText()))
}

// safeRender renders markdown, falling back to the raw text if glamour fails.
func (m Model) safeRender(text string) (out string) {
	if m.renderer == nil {
		return text
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("markdown render panicked", zap.Any("panic", r))
			out = text
		}
	}()
	rendered, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(rendered)
}

func (m Model) renderFooter() string {
	help := "enter fetch • tab/↑↓ category • esc quit"
	if m.state.HasError() {
		help = "enter fetch • ctrl+r retry • tab/↑↓ category • esc quit"
	}
	return m.styles.Footer.Render(help)
}

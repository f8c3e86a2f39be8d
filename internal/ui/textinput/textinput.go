// Package textinput provides a single-line text prompt popup.
package textinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/popup"
	"github.com/llehouerou/tides/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// CharLimit bounds names typed into the prompt.
const CharLimit = 100

// Model is a prompt popup over a bubbles text input.
type Model struct {
	ui.Base
	title   string
	input   textinput.Model
	context any
}

// New creates a prompt titled title, prefilled with initial. context is
// handed back unchanged in the Result.
func New(title, initial string, context any) *Model {
	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = CharLimit
	in.SetValue(initial)
	in.CursorEnd()
	in.Focus()
	return &Model{title: title, input: in, context: context}
}

// Value returns the current text.
func (m *Model) Value() string {
	return m.input.Value()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-8, 10)
}

// Update implements popup.Popup. Enter confirms trimmed text, Esc cancels.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type { //nolint:exhaustive // only confirm and cancel are special
		case tea.KeyEsc:
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Text: text, Context: ctx})
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	s := styles.T().S()
	return s.Playing.Render(m.title) + "\n\n" +
		m.input.View() + "\n\n" +
		s.Subtle.Render("Enter: confirm, Esc: cancel")
}

// Package confirm provides a yes/no dialog and an option picker.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/popup"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// CancelOption is appended to every option list.
const CancelOption = "Cancel"

// Model is a confirmation popup.
type Model struct {
	ui.Base
	title    string
	message  string
	context  any
	options  []string
	selected int
}

// New creates a yes/no dialog.
func New(title, message string, context any) *Model {
	return &Model{title: title, message: message, context: context}
}

// NewOptions creates a picker over options, followed by Cancel.
func NewOptions(title, message string, options []string, context any) *Model {
	opts := append(append([]string{}, options...), CancelOption)
	return &Model{title: title, message: message, context: context, options: opts}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if len(m.options) > 0 {
		return m, m.handleOptionKey(key.String())
	}
	switch key.String() {
	case "enter", "y", "Y":
		return m, m.done(Result{Confirmed: true})
	case "esc", "n", "N":
		return m, m.done(Result{})
	}
	return m, nil
}

func (m *Model) handleOptionKey(key string) tea.Cmd {
	last := len(m.options) - 1
	switch key {
	case "up", "k":
		m.selected = max(m.selected-1, 0)
	case "down", "j":
		m.selected = min(m.selected+1, last)
	case "enter":
		return m.done(Result{Confirmed: m.selected < last, Selected: m.selected})
	case "esc":
		return m.done(Result{Selected: last})
	}
	return nil
}

func (m *Model) done(r Result) tea.Cmd {
	r.Context = m.context
	return func() tea.Msg { return ActionMsg(r) }
}

// View implements popup.Popup.
func (m *Model) View() string {
	s := styles.T().S()
	var b strings.Builder
	b.WriteString(s.Playing.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(s.Base.Render(render.Sanitize(m.message)))
	b.WriteString("\n\n")

	if len(m.options) == 0 {
		b.WriteString(s.Subtle.Render("Enter/Y: confirm, Esc/N: cancel"))
		return b.String()
	}
	for i, opt := range m.options {
		if i == m.selected {
			b.WriteString(s.Playing.Render("> " + render.Sanitize(opt)))
		} else {
			b.WriteString(s.Base.Render("  " + render.Sanitize(opt)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Subtle.Render("↑↓/jk navigate · enter select"))
	return b.String()
}

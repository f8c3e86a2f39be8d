package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component drawn over the main view. It receives every
// key while open and reports its outcome as an action.Msg.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string
	SetSize(width, height int)
}

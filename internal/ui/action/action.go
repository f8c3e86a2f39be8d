// Package action defines the messages popups send back to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a result reported by a UI component.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the component that produced it.
type Msg struct {
	Source string
	Action Action
}

var _ tea.Msg = Msg{}

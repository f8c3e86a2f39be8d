package textinput

import "github.com/llehouerou/tides/internal/ui/action"

// Result is reported when the input is confirmed or cancelled.
type Result struct {
	Text     string
	Context  any
	Canceled bool
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "textinput.result" }

// ActionMsg wraps a textinput action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "textinput", Action: a}
}

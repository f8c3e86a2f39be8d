package confirm

import "github.com/llehouerou/tides/internal/ui/action"

// Result is reported when the dialog closes. In option mode Selected is
// the chosen index and Confirmed is false for the trailing Cancel entry.
type Result struct {
	Confirmed bool
	Context   any
	Selected  int
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "confirm.result" }

// ActionMsg wraps a confirm action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "confirm", Action: a}
}

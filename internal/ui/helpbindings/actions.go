package helpbindings

import "github.com/llehouerou/tides/internal/ui/action"

// Close is reported when the popup is dismissed.
type Close struct{}

// ActionType implements action.Action.
func (Close) ActionType() string { return "helpbindings.close" }

// ActionMsg wraps a helpbindings action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "helpbindings", Action: a}
}

// Package layout provides pure functions for UI dimension calculations.
package layout

// MinContentHeight keeps lists renderable on very short terminals.
const MinContentHeight = 3

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight     int
	PlayerBarHeight  int
	JobBarHeight     int // 0 if no active jobs
	StatusLineHeight int
}

// ContentHeight calculates the height left for the active view once the
// fixed bars are drawn.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.PlayerBarHeight
	height -= opts.JobBarHeight
	height -= opts.StatusLineHeight
	return max(height, MinContentHeight)
}

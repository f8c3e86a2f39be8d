package bridge

// finishState tracks end-of-track handling across status ticks.
type finishState int

const (
	// finishIdle: the engine has not reported a finish since it last played.
	finishIdle finishState = iota
	// finishFinishing: a finish was seen and the advance has been requested.
	finishFinishing
	// finishAdvanced: the engine is still parked in the finished level.
	finishAdvanced
)

func (s finishState) String() string {
	switch s {
	case finishIdle:
		return "idle"
	case finishFinishing:
		return "finishing"
	case finishAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// finishDetector turns the engine's level-triggered finished flag into a
// single advance per finish.
type finishDetector struct {
	state finishState
}

// observe feeds one status sample and reports whether to advance now.
func (d *finishDetector) observe(playing, finished bool) bool {
	if playing {
		d.state = finishIdle
		return false
	}
	if !finished {
		return false
	}
	switch d.state {
	case finishIdle:
		d.state = finishFinishing
		return true
	case finishFinishing:
		d.state = finishAdvanced
	}
	return false
}

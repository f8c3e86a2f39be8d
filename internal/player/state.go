// internal/player/state.go
package player

// State is the engine transport state.
//
//	Stopped ──Load──▶ Paused ◀──Pause/Play──▶ Playing
//	   ▲                                         │
//	   └────────────── end of stream ────────────┘
//
// Reaching the end of the stream moves to Stopped and raises the finished
// level reported by Status. Load always lands in Paused.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a source is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPlay returns true if Play has something to start.
func (s State) CanPlay() bool {
	return s == Paused
}

// internal/playback/state.go
package playback

// RepeatMode defines what happens when the queue runs out.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the persisted name of the mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "none"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the none → all → one cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// ParseRepeatMode maps a persisted name back to a mode. Unknown names map to RepeatOff.
func ParseRepeatMode(s string) RepeatMode {
	switch s {
	case "all":
		return RepeatAll
	case "one":
		return RepeatOne
	default:
		return RepeatOff
	}
}

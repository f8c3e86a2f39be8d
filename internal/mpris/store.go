package mpris

import (
	"strings"
	"time"

	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
)

// Store is the part of the playback store media keys drive.
type Store interface {
	Snapshot() playback.Snapshot
	CurrentTrack() *track.Track
	PlaySong(t track.Track)
	TogglePlay()
	PlayNext()
	PlayPrev()
	SeekTo(pos time.Duration)
	SetRepeat(mode playback.RepeatMode)
	SetShuffle(enabled bool)
}

// Verify playback.Store implements Store at compile time.
var _ Store = (*playback.Store)(nil)

// hasNext reports whether PlayNext would move to another track.
func hasNext(s playback.Snapshot) bool {
	switch {
	case len(s.Queue) == 0:
		return false
	case s.Shuffle, s.Repeat != playback.RepeatOff:
		return true
	default:
		return s.CurrentIndex < len(s.Queue)-1
	}
}

func splitArtists(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package lastfm

import (
	"strings"
	"time"

	"github.com/llehouerou/tides/internal/track"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Album     string
	Duration  time.Duration
	Timestamp time.Time // When playback started
}

// FromTrack builds scrobble metadata for t started at startedAt. Only the
// first of several credited artists is sent.
func FromTrack(t track.Track, startedAt time.Time) ScrobbleTrack {
	artist, _, _ := strings.Cut(t.PrimaryArtists, ", ")
	return ScrobbleTrack{
		Artist:    strings.TrimSpace(artist),
		Track:     t.Name,
		Album:     t.Album.Name,
		Duration:  t.Duration(),
		Timestamp: startedAt,
	}
}

// ScrobbleState tracks the scrobbling status of the current play.
type ScrobbleState struct {
	TrackID        string
	StartedAt      time.Time
	Scrobbled      bool
	NowPlayingSent bool
}

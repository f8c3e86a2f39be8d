package lastfm

import "time"

const (
	// MinTrackLength is the shortest track Last.fm accepts.
	MinTrackLength = 30 * time.Second
	// MaxThreshold caps the listening time needed to scrobble.
	MaxThreshold = 4 * time.Minute
)

// Threshold returns the listening time after which a track of length d
// is scrobbled: half its length, at most four minutes.
func Threshold(d time.Duration) time.Duration {
	return min(d/2, MaxThreshold)
}

// ShouldScrobble reports whether pos within a track of length d qualifies.
// Tracks of 30 seconds or less never do.
func ShouldScrobble(pos, d time.Duration) bool {
	if d <= MinTrackLength {
		return false
	}
	return pos >= Threshold(d)
}

package playback

import (
	"time"

	"github.com/llehouerou/tides/internal/track"
)

// TrackChange is emitted whenever the store asks the audio port to play a
// track: PlaySong, PlayNext (including repeat-one replays) and PlayPrev.
// A restart via seek is not a track change.
type TrackChange struct {
	Track track.Track
	Index int
}

// QueueChange is emitted when the queue contents or cursor change.
type QueueChange struct {
	Tracks []track.Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle changes.
type ModeChange struct {
	Repeat  RepeatMode
	Shuffle bool
}

// TransportChange mirrors the engine state pushed in by the bridge.
type TransportChange struct {
	Playing  bool
	Position time.Duration
	Duration time.Duration
}

// Collection names a durable library collection.
type Collection int

const (
	CollectionFavourites Collection = iota
	CollectionRecent
	CollectionDownloaded
	CollectionPlaylists
)

// LibraryChange is emitted when a library collection changes.
type LibraryChange struct {
	Collection Collection
}

// Package track holds the normalised catalog values shared by every layer.
package track

import "time"

// Reserved pseudo-playlist ids. They are never stored as user playlists;
// the UI resolves them to the favourites and downloaded collections.
const (
	FavouritesPlaylistID = "favourites"
	DownloadedPlaylistID = "downloaded"
)

// AlbumRef identifies the album a track belongs to.
type AlbumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is a normalised playable unit. Values are never mutated once built;
// equality is by ID.
type Track struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	DurationSecs   int      `json:"durationSecs"`
	PrimaryArtists string   `json:"primaryArtists"`
	ArtistIDs      string   `json:"primaryArtistsId,omitempty"` // comma-separated
	Album          AlbumRef `json:"album"`
	Artwork        string   `json:"artwork"`
	AudioURL       string   `json:"audioUrl"`
	AudioURL320    string   `json:"audioUrl320,omitempty"`
}

// Duration returns the catalog duration of the track.
func (t Track) Duration() time.Duration {
	return time.Duration(t.DurationSecs) * time.Second
}

// Same reports whether both values refer to the same catalog track.
func (t Track) Same(other Track) bool {
	return t.ID == other.ID
}

// BestAudioURL returns the high-bitrate source when known, else the standard one.
func (t Track) BestAudioURL() string {
	if t.AudioURL320 != "" {
		return t.AudioURL320
	}
	return t.AudioURL
}

// IndexOf returns the position of the first track with the given id, or -1.
func IndexOf(tracks []Track, id string) int {
	for i := range tracks {
		if tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a track with the given id is present.
func Contains(tracks []Track, id string) bool {
	return IndexOf(tracks, id) >= 0
}

// Without returns a new slice with every track of the given id removed.
func Without(tracks []Track, id string) []Track {
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// TotalDuration sums the catalog durations of tracks.
func TotalDuration(tracks []Track) time.Duration {
	var total time.Duration
	for _, t := range tracks {
		total += t.Duration()
	}
	return total
}

package track

import "time"

// Playlist is a user-managed ordered list of tracks, unique by track id.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    []Track   `json:"tracks"`
	CreatedAt time.Time `json:"createdAt"`
}

// Has reports whether the playlist already contains the track id.
func (p Playlist) Has(trackID string) bool {
	return Contains(p.Tracks, trackID)
}

// IsReserved reports whether id names one of the pseudo-playlists.
func IsReserved(id string) bool {
	return id == FavouritesPlaylistID || id == DownloadedPlaylistID
}

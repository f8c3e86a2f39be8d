// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpSearchSongs   Op = "search songs"
	OpSearchArtists Op = "search artists"
	OpSearchAlbums  Op = "search albums"
	OpLoadSong      Op = "load song"
	OpLoadArtist    Op = "load artist"
	OpLoadAlbum     Op = "load album"
	OpSuggestions   Op = "load suggestions"

	// Download operations
	OpDownload Op = "download track"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistRename   Op = "rename playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistAddTrack Op = "add track to playlist"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Scrobbling
	OpScrobble   Op = "scrobble"
	OpNowPlaying Op = "update now playing"
	OpLastfmAuth Op = "authenticate with Last.fm"

	// Initialization
	OpInitialize Op = "initialize application"
	OpOpenStore  Op = "open storage"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the subject of the operation.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}

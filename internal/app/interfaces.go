// internal/app/interfaces.go
package app

import (
	"context"
	"time"

	"github.com/llehouerou/tides/internal/catalog"
	"github.com/llehouerou/tides/internal/download"
	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
)

// Store is the part of the playback store the UI reads and drives.
type Store interface {
	Snapshot() playback.Snapshot
	Queue() []track.Track
	Favourites() []track.Track
	RecentlyPlayed() []track.Track
	DownloadedTracks() []track.Track
	Playlists() []track.Playlist
	Playlist(id string) (track.Playlist, bool)
	IsFavourite(id string) bool
	IsDownloaded(id string) bool

	PlaySongFrom(t track.Track, queue []track.Track)
	PlaySongAt(t track.Track, queue []track.Track, index int)
	TogglePlay()
	PlayNext()
	PlayPrev()
	SeekTo(pos time.Duration)
	CycleRepeat() playback.RepeatMode
	ToggleShuffle() bool

	AddToQueue(t track.Track)
	AddNextInQueue(t track.Track)
	RemoveFromQueue(index int)
	MoveUp(index int)
	MoveDown(index int)
	ClearQueue()

	ToggleFavourite(t track.Track) bool
	CreatePlaylist(name string) string
	RenamePlaylist(id, name string)
	DeletePlaylist(id string)
	AddTrackToPlaylist(id string, t track.Track)
	RemoveTrackFromPlaylist(id, trackID string)

	Subscribe() *playback.Subscription
}

// Catalog searches the song catalog.
type Catalog interface {
	SearchSongs(ctx context.Context, query string, page, limit int) (catalog.SongPage, error)
	PageSize() int
}

// Downloader saves tracks for offline playback.
type Downloader interface {
	Download(ctx context.Context, t track.Track) (download.Result, error)
}

// SearchHistory persists recent search terms.
type SearchHistory interface {
	LoadSearchHistory(ctx context.Context) ([]string, error)
	SaveSearchHistory(history []string)
}

var (
	_ Store         = (*playback.Store)(nil)
	_ Catalog       = (*catalog.Client)(nil)
	_ Downloader    = (*download.Downloader)(nil)
	_ SearchHistory = (*library.Storage)(nil)
)

package playback

import (
	"slices"

	"github.com/llehouerou/tides/internal/track"
)

// ToggleFavourite puts t at the front of the favourites, or removes it when
// present. It returns whether t is a favourite afterwards.
func (s *Store) ToggleFavourite(t track.Track) bool {
	s.mu.Lock()
	fav := !track.Contains(s.favourites, t.ID)
	if fav {
		s.favourites = append([]track.Track{t}, s.favourites...)
	} else {
		s.favourites = track.Without(s.favourites, t.ID)
	}
	s.lib.SaveFavourites(s.favourites)
	s.libraryChangedLocked(CollectionFavourites)
	return fav
}

// IsFavourite reports whether a track with id is a favourite.
func (s *Store) IsFavourite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return track.Contains(s.favourites, id)
}

// AddDownloadedTrack records t as downloaded, newest first. A track that
// is already recorded is left where it is.
func (s *Store) AddDownloadedTrack(t track.Track) {
	s.mu.Lock()
	if track.Contains(s.downloaded, t.ID) {
		s.mu.Unlock()
		return
	}
	s.downloaded = append([]track.Track{t}, s.downloaded...)
	s.lib.SaveDownloaded(s.downloaded)
	s.libraryChangedLocked(CollectionDownloaded)
}

// IsDownloaded reports whether a track with id has been downloaded.
func (s *Store) IsDownloaded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return track.Contains(s.downloaded, id)
}

// CreatePlaylist appends an empty playlist and returns its id.
func (s *Store) CreatePlaylist(name string) string {
	s.mu.Lock()
	p := track.Playlist{
		ID:        s.newID(),
		Name:      name,
		Tracks:    []track.Track{},
		CreatedAt: s.now(),
	}
	s.playlists = append(slices.Clone(s.playlists), p)
	s.playlistsChangedLocked()
	return p.ID
}

// DeletePlaylist removes the playlist with id.
func (s *Store) DeletePlaylist(id string) {
	s.mu.Lock()
	s.playlists = slices.DeleteFunc(slices.Clone(s.playlists), func(p track.Playlist) bool {
		return p.ID == id
	})
	s.playlistsChangedLocked()
}

// RenamePlaylist renames the playlist with id.
func (s *Store) RenamePlaylist(id, name string) {
	s.updatePlaylist(id, func(p *track.Playlist) { p.Name = name })
}

// AddTrackToPlaylist appends t to the playlist unless it already holds it.
func (s *Store) AddTrackToPlaylist(id string, t track.Track) {
	s.updatePlaylist(id, func(p *track.Playlist) {
		if !p.Has(t.ID) {
			p.Tracks = append(slices.Clone(p.Tracks), t)
		}
	})
}

// RemoveTrackFromPlaylist drops the track with trackID from the playlist.
func (s *Store) RemoveTrackFromPlaylist(id, trackID string) {
	s.updatePlaylist(id, func(p *track.Playlist) {
		p.Tracks = track.Without(p.Tracks, trackID)
	})
}

func (s *Store) updatePlaylist(id string, fn func(*track.Playlist)) {
	s.mu.Lock()
	playlists := slices.Clone(s.playlists)
	if i := slices.IndexFunc(playlists, func(p track.Playlist) bool { return p.ID == id }); i >= 0 {
		fn(&playlists[i])
	}
	s.playlists = playlists
	s.playlistsChangedLocked()
}

func (s *Store) playlistsChangedLocked() {
	s.lib.SavePlaylists(s.playlists)
	s.libraryChangedLocked(CollectionPlaylists)
}

// libraryChangedLocked releases s.mu and publishes a library change.
func (s *Store) libraryChangedLocked(c Collection) {
	s.mu.Unlock()
	s.publish(func(sub *Subscription) { sub.sendLibrary(LibraryChange{Collection: c}) })
}

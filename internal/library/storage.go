// Package library persists the playback-adjacent collections (queue,
// favourites, recently played, downloads, playlists) through a kv.Store.
//
// Writes follow a write-through policy: every Save call serialises the value
// immediately and hands it to a background writer. Writes are eventually
// persisted, last-write-wins per key, with no transaction across collections.
// Reads see values that are still waiting to be written.
package library

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/kv"
	"github.com/llehouerou/tides/internal/track"
)

// RecentLimit caps the recently-played list.
const RecentLimit = 20

// Session is the cursor and mode state restored alongside the queue.
type Session struct {
	CurrentIndex int    `json:"currentIndex"`
	Shuffle      bool   `json:"shuffle"`
	Repeat       string `json:"repeat"`
}

// Storage provides typed load/save helpers over a kv.Store.
type Storage struct {
	store kv.Store
	keys  Keys
	w     *writer
	log   *zap.Logger
}

// New starts a Storage writing under prefix. Call Close to flush.
func New(store kv.Store, prefix string, log *zap.Logger) *Storage {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("library")
	return &Storage{
		store: store,
		keys:  NewKeys(prefix),
		w:     newWriter(store, log),
		log:   log,
	}
}

// Keys exposes the key layout in use.
func (s *Storage) Keys() Keys { return s.keys }

// Flush waits until every save issued so far has reached the store.
func (s *Storage) Flush(ctx context.Context) error {
	return s.w.flush(ctx)
}

// Close flushes pending writes and stops the writer. It does not close the
// underlying store.
func (s *Storage) Close() {
	s.w.close()
}

// Loaders always return a usable value: on failure it is the empty default.

func (s *Storage) LoadQueue(ctx context.Context) ([]track.Track, error) {
	return loadTracks(ctx, s, s.keys.Queue())
}

func (s *Storage) LoadFavourites(ctx context.Context) ([]track.Track, error) {
	return loadTracks(ctx, s, s.keys.Favourites())
}

func (s *Storage) LoadRecent(ctx context.Context) ([]track.Track, error) {
	recent, err := loadTracks(ctx, s, s.keys.Recent())
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return recent, err
}

func (s *Storage) LoadDownloaded(ctx context.Context) ([]track.Track, error) {
	return loadTracks(ctx, s, s.keys.Downloaded())
}

func (s *Storage) LoadPlaylists(ctx context.Context) ([]track.Playlist, error) {
	playlists, err := load(ctx, s, s.keys.Playlists(), []track.Playlist{})
	if playlists == nil {
		playlists = []track.Playlist{}
	}
	return playlists, err
}

// LoadSession returns the saved cursor, or CurrentIndex -1 when none.
func (s *Storage) LoadSession(ctx context.Context) (Session, error) {
	return load(ctx, s, s.keys.Session(), Session{CurrentIndex: -1})
}

func (s *Storage) LoadSearchHistory(ctx context.Context) ([]string, error) {
	history, err := load(ctx, s, s.keys.SearchHistory(), []string{})
	if history == nil {
		history = []string{}
	}
	return history, err
}

// Savers never block on I/O; failures are logged.

func (s *Storage) SaveQueue(tracks []track.Track)      { s.save(s.keys.Queue(), tracks) }
func (s *Storage) SaveFavourites(tracks []track.Track) { s.save(s.keys.Favourites(), tracks) }
func (s *Storage) SaveDownloaded(tracks []track.Track) { s.save(s.keys.Downloaded(), tracks) }
func (s *Storage) SavePlaylists(p []track.Playlist)    { s.save(s.keys.Playlists(), p) }
func (s *Storage) SaveSession(session Session)         { s.save(s.keys.Session(), session) }

func (s *Storage) SaveRecent(tracks []track.Track) {
	if len(tracks) > RecentLimit {
		tracks = tracks[:RecentLimit]
	}
	s.save(s.keys.Recent(), tracks)
}

func (s *Storage) SaveSearchHistory(history []string) {
	if len(history) > MaxSearchHistory {
		history = history[:MaxSearchHistory]
	}
	s.save(s.keys.SearchHistory(), history)
}

// DownloadURI returns the local file recorded for trackID.
func (s *Storage) DownloadURI(ctx context.Context, trackID string) (string, bool) {
	key := s.keys.Download(trackID)
	if v, ok := s.w.lookup(key); ok {
		return v, v != ""
	}
	v, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("download uri lookup failed", zap.String("track", trackID), zap.Error(err))
		return "", false
	}
	return v, ok && v != ""
}

// SetDownloadURI records the local file for trackID, writing synchronously
// so the download flow can report failure.
func (s *Storage) SetDownloadURI(ctx context.Context, trackID, uri string) error {
	if err := s.store.Set(ctx, s.keys.Download(trackID), uri); err != nil {
		return fmt.Errorf("record download uri: %w", err)
	}
	return nil
}

func (s *Storage) save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.w.enqueue(key, string(data))
}

func loadTracks(ctx context.Context, s *Storage, key string) ([]track.Track, error) {
	tracks, err := load(ctx, s, key, []track.Track{})
	if tracks == nil {
		tracks = []track.Track{}
	}
	return tracks, err
}

func load[T any](ctx context.Context, s *Storage, key string, fallback T) (T, error) {
	raw, ok := s.w.lookup(key)
	if !ok {
		var err error
		raw, ok, err = s.store.Get(ctx, key)
		if err != nil {
			return fallback, err
		}
	}
	if !ok || raw == "" {
		return fallback, nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fallback, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

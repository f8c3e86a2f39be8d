// internal/playback/store.go
package playback

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/track"
)

// Library is the persistence the store writes through to. Loads are used
// once by Hydrate; saves must not block.
type Library interface {
	LoadQueue(ctx context.Context) ([]track.Track, error)
	LoadFavourites(ctx context.Context) ([]track.Track, error)
	LoadRecent(ctx context.Context) ([]track.Track, error)
	LoadDownloaded(ctx context.Context) ([]track.Track, error)
	LoadPlaylists(ctx context.Context) ([]track.Playlist, error)
	LoadSession(ctx context.Context) (library.Session, error)

	SaveQueue(tracks []track.Track)
	SaveFavourites(tracks []track.Track)
	SaveRecent(tracks []track.Track)
	SaveDownloaded(tracks []track.Track)
	SavePlaylists(playlists []track.Playlist)
	SaveSession(s library.Session)
}

// Verify library.Storage implements Library at compile time.
var _ Library = (*library.Storage)(nil)

// PrevRestartThreshold is the position past which PlayPrev restarts the
// current track instead of stepping back.
const PrevRestartThreshold = 3 * time.Second

// Snapshot is a consistent copy of the playback state.
type Snapshot struct {
	CurrentTrack *track.Track
	CurrentIndex int
	Queue        []track.Track
	Playing      bool
	Position     time.Duration
	Duration     time.Duration
	Shuffle      bool
	Repeat       RepeatMode
}

// Store is the single source of truth for queue, transport mirror, modes
// and library collections. All methods are safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	lib Library
	log *zap.Logger

	intn  func(n int) int
	now   func() time.Time
	newID func() string

	current  *track.Track
	index    int
	queue    []track.Track
	playing  bool
	position time.Duration
	duration time.Duration
	shuffle  bool
	repeat   RepeatMode

	favourites []track.Track
	recent     []track.Track
	downloaded []track.Track
	playlists  []track.Playlist
	hydrated   bool

	port AudioPort

	subs   []*Subscription
	subsMu sync.RWMutex
}

// Option customises a Store.
type Option func(*Store)

// WithRand replaces the random source used by shuffle. intn must return a
// value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(s *Store) { s.intn = intn }
}

// WithClock replaces the clock used to stamp playlists.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the playlist id generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty store writing through to lib.
func New(lib Library, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		lib:   lib,
		log:   log.Named("playback"),
		intn:  rand.IntN,
		now:   time.Now,
		newID: func() string { return "pl_" + uuid.NewString() },
		index: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register installs the audio port that receives play, toggle and seek
// intents. Registering again replaces the previous port.
func (s *Store) Register(port AudioPort) {
	s.mu.Lock()
	s.port = port
	s.mu.Unlock()
}

// RegisterCallbacks installs three plain callbacks as the audio port.
func (s *Store) RegisterCallbacks(play func(track.Track), toggle func(), seek func(time.Duration)) {
	s.Register(portFuncs{play: play, toggle: toggle, seek: seek})
}

// Hydrate loads every persisted collection concurrently and replaces the
// in-memory values. A failed load is logged and leaves the empty default.
func (s *Store) Hydrate(ctx context.Context) {
	var (
		wg                                   sync.WaitGroup
		queue, favourites, recent, downloads []track.Track
		playlists                            []track.Playlist
		session                              library.Session
	)

	load := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.log.Warn("hydrate: load failed", zap.String("collection", name), zap.Error(err))
			}
		}()
	}

	load("queue", func() (err error) {
		queue, err = s.lib.LoadQueue(ctx)
		return err
	})
	load("favourites", func() (err error) {
		favourites, err = s.lib.LoadFavourites(ctx)
		return err
	})
	load("recent", func() (err error) {
		recent, err = s.lib.LoadRecent(ctx)
		return err
	})
	load("downloaded", func() (err error) {
		downloads, err = s.lib.LoadDownloaded(ctx)
		return err
	})
	load("playlists", func() (err error) {
		playlists, err = s.lib.LoadPlaylists(ctx)
		return err
	})
	load("session", func() (err error) {
		session, err = s.lib.LoadSession(ctx)
		return err
	})
	wg.Wait()

	s.mu.Lock()
	s.queue = orEmpty(queue)
	s.favourites = orEmpty(favourites)
	s.recent = orEmpty(recent)
	s.downloaded = orEmpty(downloads)
	s.playlists = playlists
	if s.playlists == nil {
		s.playlists = []track.Playlist{}
	}
	if session.CurrentIndex >= 0 && session.CurrentIndex < len(s.queue) {
		s.index = session.CurrentIndex
		t := s.queue[s.index]
		s.current = &t
	} else {
		s.index = -1
		s.current = nil
	}
	s.shuffle = session.Shuffle
	s.repeat = ParseRepeatMode(session.Repeat)
	s.hydrated = true
	qe := s.queueEventLocked()
	me := s.modeEventLocked()
	s.mu.Unlock()

	s.log.Debug("hydrated",
		zap.Int("queue", len(qe.Tracks)),
		zap.Int("index", qe.Index),
		zap.Int("playlists", len(playlists)),
	)

	s.publish(func(sub *Subscription) {
		sub.sendQueue(qe)
		sub.sendMode(me)
		for _, c := range []Collection{CollectionFavourites, CollectionRecent, CollectionDownloaded, CollectionPlaylists} {
			sub.sendLibrary(LibraryChange{Collection: c})
		}
	})
}

// Ready reports whether Hydrate has completed.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Snapshot returns a copy of the playback state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		CurrentIndex: s.index,
		Queue:        slices.Clone(s.queue),
		Playing:      s.playing,
		Position:     s.position,
		Duration:     s.duration,
		Shuffle:      s.shuffle,
		Repeat:       s.repeat,
	}
	if s.current != nil {
		t := *s.current
		snap.CurrentTrack = &t
	}
	return snap
}

// CurrentTrack returns a copy of the current track, or nil.
func (s *Store) CurrentTrack() *track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	t := *s.current
	return &t
}

// Queue returns a copy of the queue.
func (s *Store) Queue() []track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.queue)
}

// Favourites returns a copy of the favourites.
func (s *Store) Favourites() []track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favourites)
}

// RecentlyPlayed returns a copy of the recently played list, newest first.
func (s *Store) RecentlyPlayed() []track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recent)
}

// DownloadedTracks returns a copy of the downloaded list, newest first.
func (s *Store) DownloadedTracks() []track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.downloaded)
}

// Playlists returns a copy of the user playlists.
func (s *Store) Playlists() []track.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlaylists(s.playlists)
}

// Playlist resolves an id to a playlist. The reserved ids resolve to
// virtual playlists over favourites and downloads.
func (s *Store) Playlist(id string) (track.Playlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch id {
	case track.FavouritesPlaylistID:
		return track.Playlist{ID: id, Name: "Favourites", Tracks: slices.Clone(s.favourites)}, true
	case track.DownloadedPlaylistID:
		return track.Playlist{ID: id, Name: "Downloaded", Tracks: slices.Clone(s.downloaded)}, true
	}
	i := s.playlistIndexLocked(id)
	if i < 0 {
		return track.Playlist{}, false
	}
	p := s.playlists[i]
	p.Tracks = slices.Clone(p.Tracks)
	return p, true
}

// Subscribe returns a subscription receiving store events.
func (s *Store) Subscribe() *Subscription {
	sub := newSubscription()
	s.subsMu.Lock()
	s.subs = append(s.subs, sub)
	s.subsMu.Unlock()
	return sub
}

// Unsubscribe stops delivery to sub and closes its Done channel.
func (s *Store) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, existing := range s.subs {
		if existing == sub {
			s.subs = slices.Delete(s.subs, i, i+1)
			sub.close()
			return
		}
	}
}

// Close closes every subscription.
func (s *Store) Close() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
}

func (s *Store) publish(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

func (s *Store) queueEventLocked() QueueChange {
	return QueueChange{Tracks: slices.Clone(s.queue), Index: s.index}
}

func (s *Store) modeEventLocked() ModeChange {
	return ModeChange{Repeat: s.repeat, Shuffle: s.shuffle}
}

func (s *Store) transportEventLocked() TransportChange {
	return TransportChange{Playing: s.playing, Position: s.position, Duration: s.duration}
}

func (s *Store) saveSessionLocked() {
	s.lib.SaveSession(library.Session{
		CurrentIndex: s.index,
		Shuffle:      s.shuffle,
		Repeat:       s.repeat.String(),
	})
}

func (s *Store) playlistIndexLocked(id string) int {
	return slices.IndexFunc(s.playlists, func(p track.Playlist) bool { return p.ID == id })
}

func orEmpty(tracks []track.Track) []track.Track {
	if tracks == nil {
		return []track.Track{}
	}
	return tracks
}

func clonePlaylists(ps []track.Playlist) []track.Playlist {
	out := make([]track.Playlist, len(ps))
	for i, p := range ps {
		p.Tracks = slices.Clone(p.Tracks)
		out[i] = p
	}
	return out
}

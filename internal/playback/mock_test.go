package playback

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/track"
)

// fakeLibrary records the last value saved per collection.
type fakeLibrary struct {
	mu sync.Mutex

	queue, favourites, recent, downloaded []track.Track
	playlists                             []track.Playlist
	session                               library.Session
	loadErr                               error

	saves map[string]int
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		session: library.Session{CurrentIndex: -1},
		saves:   map[string]int{},
	}
}

func (f *fakeLibrary) LoadQueue(context.Context) ([]track.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return []track.Track{}, f.loadErr
	}
	return f.queue, nil
}

func (f *fakeLibrary) LoadFavourites(context.Context) ([]track.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return []track.Track{}, f.loadErr
	}
	return f.favourites, nil
}

func (f *fakeLibrary) LoadRecent(context.Context) ([]track.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return []track.Track{}, f.loadErr
	}
	return f.recent, nil
}

func (f *fakeLibrary) LoadDownloaded(context.Context) ([]track.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return []track.Track{}, f.loadErr
	}
	return f.downloaded, nil
}

func (f *fakeLibrary) LoadPlaylists(context.Context) ([]track.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return []track.Playlist{}, f.loadErr
	}
	return f.playlists, nil
}

func (f *fakeLibrary) LoadSession(context.Context) (library.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return library.Session{CurrentIndex: -1}, f.loadErr
	}
	return f.session, nil
}

func (f *fakeLibrary) SaveQueue(tracks []track.Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = tracks
	f.saves["queue"]++
}

func (f *fakeLibrary) SaveFavourites(tracks []track.Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favourites = tracks
	f.saves["favourites"]++
}

func (f *fakeLibrary) SaveRecent(tracks []track.Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent = tracks
	f.saves["recent"]++
}

func (f *fakeLibrary) SaveDownloaded(tracks []track.Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloaded = tracks
	f.saves["downloaded"]++
}

func (f *fakeLibrary) SavePlaylists(playlists []track.Playlist) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlists = playlists
	f.saves["playlists"]++
}

func (f *fakeLibrary) SaveSession(s library.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = s
	f.saves["session"]++
}

func (f *fakeLibrary) saveCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[name]
}

// fakePort records the intents it receives.
type fakePort struct {
	mu      sync.Mutex
	played  []track.Track
	toggles int
	seeks   []time.Duration
}

func (p *fakePort) Play(t track.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, t)
}

func (p *fakePort) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toggles++
}

func (p *fakePort) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeks = append(p.seeks, pos)
}

func (p *fakePort) lastPlayed() (track.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.played) == 0 {
		return track.Track{}, false
	}
	return p.played[len(p.played)-1], true
}

func (p *fakePort) playCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.played)
}

func mkTrack(id string) track.Track {
	return track.Track{ID: id, Name: "Song " + id, DurationSecs: 200, PrimaryArtists: "Artist"}
}

func mkTracks(ids ...string) []track.Track {
	out := make([]track.Track, len(ids))
	for i, id := range ids {
		out[i] = mkTrack(id)
	}
	return out
}

func ids(tracks []track.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func newTestStore(opts ...Option) (*Store, *fakeLibrary, *fakePort) {
	lib := newFakeLibrary()
	port := &fakePort{}
	s := New(lib, nil, opts...)
	s.Register(port)
	return s, lib, port
}

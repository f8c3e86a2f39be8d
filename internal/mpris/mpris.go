//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tides/internal/playback"
)

// Adapter exposes the playback store over MPRIS on the session bus.
type Adapter struct {
	store  Store
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(store Store) (*Adapter, error) {
	a := &Adapter{store: store}
	a.server = server.NewServer("tides", &rootAdapter{}, &playerAdapter{store: store})

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // The TUI owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Tides", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https", "file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mp4", "audio/aac", "audio/mpeg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the loop
// and shuffle extensions by delegating to the store.
type playerAdapter struct {
	store Store
}

func (p *playerAdapter) Next() error {
	p.store.PlayNext()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.store.PlayPrev()
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.store.Snapshot().Playing {
		p.store.TogglePlay()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.store.TogglePlay()
	return nil
}

// Stop pauses; the store has no stopped state.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	snap := p.store.Snapshot()
	switch {
	case snap.Playing:
	case snap.CurrentTrack == nil && len(snap.Queue) > 0:
		p.store.PlaySong(snap.Queue[0])
	case snap.CurrentTrack != nil:
		p.store.TogglePlay()
	}
	return nil
}

// Seek moves relative to the current position.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.store.Snapshot()
	pos := max(snap.Position+time.Duration(offset)*time.Microsecond, 0)
	if snap.Duration > 0 && pos > snap.Duration {
		p.store.PlayNext()
		return nil
	}
	p.store.SeekTo(pos)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	cur := p.store.CurrentTrack()
	if cur == nil || formatTrackID(cur.ID) != trackID {
		return nil // Stale request
	}
	p.store.SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap := p.store.Snapshot()
	switch {
	case snap.CurrentTrack == nil:
		return types.PlaybackStatusStopped, nil
	case snap.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	t := p.store.CurrentTrack()
	if t == nil {
		return types.Metadata{}, nil
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(t.ID)),
		Length:  types.Microseconds(t.Duration().Microseconds()),
		Title:   t.Name,
		Artist:  splitArtists(t.PrimaryArtists),
		Album:   t.Album.Name,
		ArtUrl:  t.Artwork,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.store.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return hasNext(p.store.Snapshot()), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.store.Snapshot().CurrentTrack != nil, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return len(p.store.Snapshot().Queue) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	return loopStatus(p.store.Snapshot().Repeat), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.store.SetRepeat(playback.RepeatOff)
	case types.LoopStatusTrack:
		p.store.SetRepeat(playback.RepeatOne)
	case types.LoopStatusPlaylist:
		p.store.SetRepeat(playback.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.store.Snapshot().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.store.SetShuffle(shuffle)
	return nil
}

func loopStatus(mode playback.RepeatMode) types.LoopStatus {
	switch mode {
	case playback.RepeatOne:
		return types.LoopStatusTrack
	case playback.RepeatAll:
		return types.LoopStatusPlaylist
	case playback.RepeatOff:
		return types.LoopStatusNone
	}
	return types.LoopStatusNone
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

package lastfm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
)

// API is the part of the Last.fm client the scrobbler uses.
type API interface {
	UpdateNowPlaying(track ScrobbleTrack) error
	Scrobble(track ScrobbleTrack) error
}

// Scrobbler reports plays from store events: now playing on every track
// change, and one scrobble per play once the listening threshold is met.
type Scrobbler struct {
	api API
	log *zap.Logger
	now func() time.Time

	current track.Track
	state   *ScrobbleState
}

// NewScrobbler creates a scrobbler over api.
func NewScrobbler(api API, log *zap.Logger) *Scrobbler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scrobbler{api: api, log: log.Named("lastfm"), now: time.Now}
}

// Run consumes sub until ctx is cancelled or the store closes it.
func (s *Scrobbler) Run(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			s.trackChanged(e.Track)
		case e := <-sub.TransportChanged:
			s.transportChanged(e)
		}
	}
}

// State returns the status of the current play, or nil before any track.
func (s *Scrobbler) State() *ScrobbleState {
	return s.state
}

func (s *Scrobbler) trackChanged(t track.Track) {
	s.current = t
	s.state = &ScrobbleState{TrackID: t.ID, StartedAt: s.now()}

	if err := s.api.UpdateNowPlaying(FromTrack(t, s.state.StartedAt)); err != nil {
		s.log.Warn("now playing failed", zap.String("track", t.ID), zap.Error(err))
		return
	}
	s.state.NowPlayingSent = true
}

func (s *Scrobbler) transportChanged(e playback.TransportChange) {
	if s.state == nil || s.state.Scrobbled {
		return
	}
	d := e.Duration
	if d <= 0 {
		d = s.current.Duration()
	}
	if !ShouldScrobble(e.Position, d) {
		return
	}

	// Marked before the call so a failure is not resubmitted on every tick.
	s.state.Scrobbled = true
	st := FromTrack(s.current, s.state.StartedAt)
	st.Duration = d
	if err := s.api.Scrobble(st); err != nil {
		s.log.Warn("scrobble failed", zap.String("track", s.current.ID), zap.Error(err))
	}
}

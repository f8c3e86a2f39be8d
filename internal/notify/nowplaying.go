package notify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
)

const (
	nowPlayingIcon    = "audio-x-generic"
	nowPlayingTimeout = 5000
)

// NowPlaying shows one notification per track change. Each notification
// replaces the previous one so only the current track stays on screen.
type NowPlaying struct {
	notifier Notifier
	log      *zap.Logger
	lastID   uint32
}

// NewNowPlaying creates a watcher sending through n.
func NewNowPlaying(n Notifier, log *zap.Logger) *NowPlaying {
	if log == nil {
		log = zap.NewNop()
	}
	return &NowPlaying{notifier: n, log: log.Named("notify")}
}

// Run consumes sub until ctx is cancelled or the store closes it.
func (w *NowPlaying) Run(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			w.show(e.Track)
		}
	}
}

func (w *NowPlaying) show(t track.Track) {
	if t.ID == "" {
		return
	}
	id, err := w.notifier.Notify(Notification{
		Title:      t.Name,
		Body:       nowPlayingBody(t),
		Icon:       nowPlayingIcon,
		Timeout:    nowPlayingTimeout,
		ReplacesID: w.lastID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		w.log.Debug("notification failed", zap.String("track", t.ID), zap.Error(err))
		return
	}
	if id != 0 {
		w.lastID = id
	}
}

func nowPlayingBody(t track.Track) string {
	parts := make([]string, 0, 2)
	if a := strings.TrimSpace(t.PrimaryArtists); a != "" {
		parts = append(parts, a)
	}
	if a := strings.TrimSpace(t.Album.Name); a != "" {
		parts = append(parts, a)
	}
	return strings.Join(parts, " · ")
}

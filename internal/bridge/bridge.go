// Package bridge connects the playback store to an audio engine. It owns
// the engine: store intents become engine calls, and periodic engine
// status samples are pushed back into the store.
package bridge

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/player"
	"github.com/llehouerou/tides/internal/track"
)

// DefaultInterval is the status polling period.
const DefaultInterval = 500 * time.Millisecond

const (
	intentBufferSize = 64
	errorBufferSize  = 8
)

// ErrNoSource is reported when a track has neither a local file nor a URL.
var ErrNoSource = errors.New("track has no playable source")

// Store is the part of the playback store the bridge drives.
type Store interface {
	Register(port playback.AudioPort)
	SetPosition(pos time.Duration)
	SetDuration(d time.Duration)
	SetPlaying(playing bool)
	PlayNext()
}

// URIResolver maps a track id to a downloaded file.
type URIResolver interface {
	DownloadURI(ctx context.Context, trackID string) (string, bool)
}

// ErrorEvent reports an engine failure for the UI to show.
type ErrorEvent struct {
	Op      errmsg.Op
	TrackID string
	Err     error
}

// Message formats the event for display.
func (e ErrorEvent) Message() string {
	return errmsg.Format(e.Op, e.Err)
}

type intentKind int

const (
	intentPlay intentKind = iota
	intentToggle
	intentSeek
)

type intent struct {
	kind  intentKind
	track track.Track
	pos   time.Duration
}

// Bridge implements playback.AudioPort over a player.Interface.
type Bridge struct {
	engine   player.Interface
	store    Store
	uris     URIResolver
	log      *zap.Logger
	interval time.Duration

	intents chan intent
	errs    chan ErrorEvent
	finish  finishDetector
}

// Options configures a Bridge.
type Options struct {
	Interval time.Duration
	Logger   *zap.Logger
}

// New creates a bridge and registers it as the store's audio port.
func New(engine player.Interface, store Store, uris URIResolver, opts Options) *Bridge {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	b := &Bridge{
		engine:   engine,
		store:    store,
		uris:     uris,
		log:      opts.Logger.Named("bridge"),
		interval: opts.Interval,
		intents:  make(chan intent, intentBufferSize),
		errs:     make(chan ErrorEvent, errorBufferSize),
	}
	store.Register(b)
	return b
}

// Errors delivers engine failures. Events are dropped when nobody reads.
func (b *Bridge) Errors() <-chan ErrorEvent {
	return b.errs
}

// Play queues a play intent.
func (b *Bridge) Play(t track.Track) {
	b.send(intent{kind: intentPlay, track: t})
}

// Toggle queues a toggle intent.
func (b *Bridge) Toggle() {
	b.send(intent{kind: intentToggle})
}

// Seek queues a seek intent.
func (b *Bridge) Seek(pos time.Duration) {
	b.send(intent{kind: intentSeek, pos: pos})
}

func (b *Bridge) send(in intent) {
	select {
	case b.intents <- in:
	default:
		b.log.Warn("intent dropped, bridge not keeping up", zap.Int("kind", int(in.kind)))
	}
}

// Run drives the engine until ctx is cancelled, then closes it.
func (b *Bridge) Run(ctx context.Context) error {
	if bg, ok := b.engine.(player.Background); ok {
		if err := bg.EnableBackground(); err != nil {
			b.log.Debug("background audio unavailable", zap.Error(err))
		}
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return b.engine.Close()
		case in := <-b.intents:
			b.handle(ctx, in)
		case <-ticker.C:
			b.sync()
		}
	}
}

func (b *Bridge) handle(ctx context.Context, in intent) {
	switch in.kind {
	case intentPlay:
		b.play(ctx, in.track)
	case intentToggle:
		if b.engine.Status().Playing {
			b.engine.Pause()
		} else {
			b.engine.Play()
		}
	case intentSeek:
		if err := b.engine.SeekTo(in.pos); err != nil {
			b.report(errmsg.OpPlaybackSeek, "", err)
		}
	}
	b.sync()
}

func (b *Bridge) play(ctx context.Context, t track.Track) {
	uri := t.AudioURL
	if local, ok := b.uris.DownloadURI(ctx, t.ID); ok && local != "" {
		uri = local
	}
	if uri == "" {
		b.report(errmsg.OpPlaybackStart, t.ID, ErrNoSource)
		return
	}
	if err := b.engine.Load(ctx, uri); err != nil {
		b.log.Error("load failed", zap.String("track", t.ID), zap.String("uri", uri), zap.Error(err))
		b.report(errmsg.OpPlaybackStart, t.ID, err)
		return
	}
	b.engine.Play()
}

// sync pushes one status sample into the store.
func (b *Bridge) sync() {
	st := b.engine.Status()
	b.store.SetPosition(st.Position)
	if st.Duration > 0 {
		b.store.SetDuration(st.Duration)
	}
	b.store.SetPlaying(st.Playing)
	if b.finish.observe(st.Playing, st.Finished) {
		b.store.PlayNext()
	}
}

func (b *Bridge) report(op errmsg.Op, trackID string, err error) {
	select {
	case b.errs <- ErrorEvent{Op: op, TrackID: trackID, Err: err}:
	default:
	}
}

// Verify Bridge implements playback.AudioPort at compile time.
var _ playback.AudioPort = (*Bridge)(nil)

package player

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// defaultSampleRate is used when the speaker is opened before any track.
const defaultSampleRate = beep.SampleRate(44100)

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
	speakerOpen bool
)

// openSpeaker initialises the process-wide speaker once. Later tracks are
// resampled to the first rate.
func openSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerOpen {
		return speakerRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, err
	}
	speakerRate = rate
	speakerOpen = true
	return speakerRate, nil
}

// Player plays one source at a time through the beep speaker.
type Player struct {
	mu sync.Mutex

	client *http.Client
	tmpDir string
	log    *zap.Logger

	state    State
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
	cleanup  func()

	// Written from the speaker callback, which runs under the speaker
	// lock, so it must not take mu.
	gen      atomic.Uint64
	finished atomic.Bool
}

// Options configures a Player.
type Options struct {
	// Client fetches remote sources. Defaults to http.DefaultClient.
	Client *http.Client
	// TempDir holds copies of remote sources. Defaults to os.TempDir.
	TempDir string
	Logger  *zap.Logger
}

// New creates a stopped player.
func New(opts Options) *Player {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Player{
		client: opts.Client,
		tmpDir: opts.TempDir,
		log:    opts.Logger.Named("player"),
	}
}

// EnableBackground opens the audio device ahead of the first track.
func (p *Player) EnableBackground() error {
	_, err := openSpeaker(defaultSampleRate)
	return err
}

// Load stops the current source and prepares uri, leaving it paused.
func (p *Player) Load(ctx context.Context, uri string) error {
	src, err := openSource(ctx, p.client, p.tmpDir, uri)
	if err != nil {
		return err
	}
	streamer, format, err := decode(src.file, src.ext)
	if err != nil {
		src.file.Close()
		src.cleanup()
		return err
	}
	rate, err := openSpeaker(format.SampleRate)
	if err != nil {
		streamer.Close()
		src.cleanup()
		return err
	}

	var out beep.Streamer = streamer
	if format.SampleRate != rate {
		out = beep.Resample(4, format.SampleRate, rate, streamer)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	gen := p.gen.Add(1)
	p.finished.Store(false)
	p.streamer = streamer
	p.format = format
	p.cleanup = src.cleanup
	p.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	p.state = Paused

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		if p.gen.Load() == gen {
			p.finished.Store(true)
		}
	})))

	p.log.Debug("loaded",
		zap.String("ext", src.ext),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Duration("duration", format.SampleRate.D(streamer.Len())),
	)
	return nil
}

// Play resumes the loaded source.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil || p.finished.Load() {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Pause pauses the loaded source.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil || p.state != Playing {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// SeekTo moves to an absolute position, clamped to the source length.
func (p *Player) SeekTo(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return errors.New("no source loaded")
	}
	n := min(max(p.format.SampleRate.N(pos), 0), p.streamer.Len())
	speaker.Lock()
	err := p.streamer.Seek(n)
	speaker.Unlock()
	return err
}

// Status samples the engine state.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return Status{}
	}
	finished := p.finished.Load()
	if finished {
		p.state = Stopped
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return Status{
		Position: pos,
		Duration: p.format.SampleRate.D(p.streamer.Len()),
		Playing:  p.state == Playing,
		Finished: finished,
	}
}

// State returns the transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished.Load() {
		return Stopped
	}
	return p.state
}

// Close stops playback and releases the source.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *Player) stopLocked() {
	if p.ctrl == nil {
		return
	}
	p.gen.Add(1)
	speaker.Clear()
	if err := p.streamer.Close(); err != nil {
		p.log.Debug("close streamer", zap.Error(err))
	}
	p.cleanup()
	p.ctrl = nil
	p.streamer = nil
	p.cleanup = nil
	p.state = Stopped
}

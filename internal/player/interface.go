// internal/player/interface.go
package player

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupportedFormat is returned by Load for sources no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Status is one sample of the engine state.
//
// Finished is a level: it stays true from the moment the stream runs out
// until the next Load.
type Status struct {
	Position time.Duration
	Duration time.Duration
	Playing  bool
	Finished bool
}

// Interface is the audio engine contract used by the bridge.
type Interface interface {
	// Load replaces the current source. The engine is left paused.
	Load(ctx context.Context, uri string) error
	Play()
	Pause()
	SeekTo(pos time.Duration) error
	Status() Status
	Close() error
}

// Background is implemented by engines that need explicit setup to keep
// playing while the host is not in the foreground.
type Background interface {
	EnableBackground() error
}

// Verify Player implements Interface at compile time.
var (
	_ Interface  = (*Player)(nil)
	_ Background = (*Player)(nil)
)

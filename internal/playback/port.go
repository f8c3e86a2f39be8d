package playback

import (
	"time"

	"github.com/llehouerou/tides/internal/track"
)

// AudioPort receives transport intents from the store. Implementations
// must not call back into the store synchronously from these methods in a
// way that waits on the intent completing.
type AudioPort interface {
	Play(t track.Track)
	Toggle()
	Seek(pos time.Duration)
}

// portFuncs adapts three callbacks to AudioPort. Nil callbacks are no-ops.
type portFuncs struct {
	play   func(track.Track)
	toggle func()
	seek   func(time.Duration)
}

func (p portFuncs) Play(t track.Track) {
	if p.play != nil {
		p.play(t)
	}
}

func (p portFuncs) Toggle() {
	if p.toggle != nil {
		p.toggle()
	}
}

func (p portFuncs) Seek(pos time.Duration) {
	if p.seek != nil {
		p.seek(pos)
	}
}

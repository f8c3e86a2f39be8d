package playback

import (
	"slices"
	"time"

	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/track"
)

// PlaySong plays t within the current queue. The track is prepended when
// it is not already queued.
func (s *Store) PlaySong(t track.Track) {
	s.playSong(t, nil, false, -1)
}

// PlaySongFrom replaces the queue with q and plays t from it.
func (s *Store) PlaySongFrom(t track.Track, q []track.Track) {
	s.playSong(t, q, true, -1)
}

// PlaySongAt replaces the queue with q and plays t with the cursor at
// index. An out-of-range index falls back to the position of t in q.
func (s *Store) PlaySongAt(t track.Track, q []track.Track, index int) {
	s.playSong(t, q, true, index)
}

func (s *Store) playSong(t track.Track, q []track.Track, replace bool, index int) {
	s.mu.Lock()
	var queue []track.Track
	if replace {
		queue = slices.Clone(q)
	} else {
		queue = slices.Clone(s.queue)
	}
	if !track.Contains(queue, t.ID) {
		queue = slices.Insert(queue, 0, t)
	}
	if index < 0 || index >= len(queue) {
		index = max(track.IndexOf(queue, t.ID), 0)
	}

	recent := append([]track.Track{t}, track.Without(s.recent, t.ID)...)
	if len(recent) > library.RecentLimit {
		recent = recent[:library.RecentLimit]
	}

	current := t
	s.queue = queue
	s.index = index
	s.current = &current
	s.recent = recent

	s.lib.SaveQueue(s.queue)
	s.lib.SaveRecent(s.recent)
	s.saveSessionLocked()

	qe := s.queueEventLocked()
	port := s.port
	s.mu.Unlock()

	s.publish(func(sub *Subscription) {
		sub.sendQueue(qe)
		sub.sendTrack(TrackChange{Track: t, Index: index})
		sub.sendLibrary(LibraryChange{Collection: CollectionRecent})
	})
	if port != nil {
		port.Play(t)
	}
}

// PlayNext advances the cursor according to repeat and shuffle. With
// repeat one the current track is replayed. With repeat off at the end of
// the queue nothing happens.
func (s *Store) PlayNext() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}

	if s.repeat == RepeatOne && s.current != nil {
		t := *s.current
		index := s.index
		port := s.port
		s.mu.Unlock()
		s.publish(func(sub *Subscription) {
			sub.sendTrack(TrackChange{Track: t, Index: index})
		})
		if port != nil {
			port.Play(t)
		}
		return
	}

	var next int
	switch {
	case s.shuffle:
		next = s.intn(len(s.queue))
	case s.index+1 < len(s.queue):
		next = s.index + 1
	case s.repeat == RepeatAll:
		next = 0
	default:
		s.mu.Unlock()
		return
	}
	s.moveToLocked(next)
}

// PlayPrev restarts the current track when the position is past
// PrevRestartThreshold, otherwise steps back one slot, stopping at 0.
func (s *Store) PlayPrev() {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}
	if s.position > PrevRestartThreshold {
		port := s.port
		s.mu.Unlock()
		if port != nil {
			port.Seek(0)
		}
		return
	}
	s.moveToLocked(max(s.index-1, 0))
}

// moveToLocked points the cursor at i and plays it. It releases s.mu.
func (s *Store) moveToLocked(i int) {
	t := s.queue[i]
	s.index = i
	s.current = &t
	s.saveSessionLocked()
	qe := s.queueEventLocked()
	port := s.port
	s.mu.Unlock()

	s.publish(func(sub *Subscription) {
		sub.sendQueue(qe)
		sub.sendTrack(TrackChange{Track: t, Index: i})
	})
	if port != nil {
		port.Play(t)
	}
}

// TogglePlay forwards a toggle intent to the audio port.
func (s *Store) TogglePlay() {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if port != nil {
		port.Toggle()
	}
}

// SeekTo forwards a seek intent to the audio port.
func (s *Store) SeekTo(pos time.Duration) {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if port != nil {
		port.Seek(pos)
	}
}

// SetPosition records the engine position.
func (s *Store) SetPosition(pos time.Duration) {
	s.setTransport(func() { s.position = pos })
}

// SetDuration records the engine duration.
func (s *Store) SetDuration(d time.Duration) {
	s.setTransport(func() { s.duration = d })
}

// SetPlaying records whether the engine is playing.
func (s *Store) SetPlaying(playing bool) {
	s.setTransport(func() { s.playing = playing })
}

func (s *Store) setTransport(apply func()) {
	s.mu.Lock()
	before := s.transportEventLocked()
	apply()
	after := s.transportEventLocked()
	s.mu.Unlock()
	if before == after {
		return
	}
	s.publish(func(sub *Subscription) { sub.sendTransport(after) })
}

// ToggleShuffle flips shuffle and returns the new value.
func (s *Store) ToggleShuffle() bool {
	s.mu.Lock()
	s.shuffle = !s.shuffle
	return s.modeChangedLocked().Shuffle
}

// SetShuffle sets shuffle.
func (s *Store) SetShuffle(enabled bool) {
	s.mu.Lock()
	s.shuffle = enabled
	s.modeChangedLocked()
}

// CycleRepeat advances repeat none → all → one → none and returns it.
func (s *Store) CycleRepeat() RepeatMode {
	s.mu.Lock()
	s.repeat = s.repeat.Next()
	return s.modeChangedLocked().Repeat
}

// SetRepeat sets the repeat mode.
func (s *Store) SetRepeat(mode RepeatMode) {
	s.mu.Lock()
	s.repeat = mode
	s.modeChangedLocked()
}

// modeChangedLocked persists the session and publishes the new modes. It
// releases s.mu.
func (s *Store) modeChangedLocked() ModeChange {
	s.saveSessionLocked()
	me := s.modeEventLocked()
	s.mu.Unlock()
	s.publish(func(sub *Subscription) { sub.sendMode(me) })
	return me
}

package playback

import (
	"slices"

	"github.com/llehouerou/tides/internal/track"
)

// AddToQueue appends t to the queue.
func (s *Store) AddToQueue(t track.Track) {
	s.mu.Lock()
	s.queue = append(slices.Clone(s.queue), t)
	s.queueChangedLocked(false)
}

// AddNextInQueue inserts t right after the current track, or at the front
// when nothing is current.
func (s *Store) AddNextInQueue(t track.Track) {
	s.mu.Lock()
	at := min(max(s.index+1, 0), len(s.queue))
	s.queue = slices.Insert(slices.Clone(s.queue), at, t)
	s.queueChangedLocked(false)
}

// RemoveFromQueue drops the slot at index. The cursor follows the track it
// pointed at; removing the current slot keeps the cursor in place, clamped
// to the new end. CurrentTrack keeps the removed track, which is still
// playing, until the next play. Out-of-range indexes are ignored.
func (s *Store) RemoveFromQueue(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.queue) {
		s.mu.Unlock()
		return
	}
	s.queue = slices.Delete(slices.Clone(s.queue), index, index+1)

	switch {
	case len(s.queue) == 0:
		s.index = -1
		s.current = nil
	case s.index < 0:
	case index < s.index:
		s.index--
	default:
		s.index = min(s.index, len(s.queue)-1)
	}
	s.queueChangedLocked(true)
}

// MoveUp swaps the slot at index with the one above it.
func (s *Store) MoveUp(index int) {
	s.mu.Lock()
	if index <= 0 || index >= len(s.queue) {
		s.mu.Unlock()
		return
	}
	s.swapLocked(index, index-1)
}

// MoveDown swaps the slot at index with the one below it.
func (s *Store) MoveDown(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.queue)-1 {
		s.mu.Unlock()
		return
	}
	s.swapLocked(index, index+1)
}

func (s *Store) swapLocked(a, b int) {
	q := slices.Clone(s.queue)
	q[a], q[b] = q[b], q[a]
	s.queue = q
	switch s.index {
	case a:
		s.index = b
	case b:
		s.index = a
	}
	s.queueChangedLocked(true)
}

// ClearQueue empties the queue and resets the cursor. The engine keeps
// playing whatever it has loaded.
func (s *Store) ClearQueue() {
	s.mu.Lock()
	s.queue = []track.Track{}
	s.index = -1
	s.current = nil
	s.queueChangedLocked(true)
}

// queueChangedLocked persists the queue, and the session when the cursor
// may have moved, then publishes. It releases s.mu.
func (s *Store) queueChangedLocked(cursor bool) {
	s.lib.SaveQueue(s.queue)
	if cursor {
		s.saveSessionLocked()
	}
	qe := s.queueEventLocked()
	s.mu.Unlock()
	s.publish(func(sub *Subscription) { sub.sendQueue(qe) })
}

// internal/player/mock.go
package player

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for Player.
type Mock struct {
	mu sync.Mutex

	status    Status
	loaded    bool
	loadErr   error
	seekErr   error
	bgErr     error
	loadCalls []string
	seekCalls []time.Duration
	playCalls int
	pauses    int
	bgCalls   int
	closed    bool
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load(_ context.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, uri)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = true
	m.status = Status{Duration: m.status.Duration}
	return nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.loaded {
		m.status.Playing = true
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses++
	m.status.Playing = false
}

func (m *Mock) SeekTo(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	if m.seekErr != nil {
		return m.seekErr
	}
	m.status.Position = pos
	return nil
}

func (m *Mock) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *Mock) EnableBackground() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bgCalls++
	return m.bgErr
}

// Test helpers

func (m *Mock) SetStatus(s Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = s
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

func (m *Mock) SetBackgroundError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bgErr = err
}

// SimulateFinished puts the mock in the end-of-stream level.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.Playing = false
	m.status.Finished = true
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauses
}

func (m *Mock) BackgroundCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bgCalls
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var (
	_ Interface  = (*Mock)(nil)
	_ Background = (*Mock)(nil)
)

package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
// Sends never block; events are dropped when a buffer is full.
type Subscription struct {
	TrackChanged     <-chan TrackChange
	QueueChanged     <-chan QueueChange
	ModeChanged      <-chan ModeChange
	TransportChanged <-chan TransportChange
	LibraryChanged   <-chan LibraryChange
	Done             <-chan struct{}

	trackCh     chan TrackChange
	queueCh     chan QueueChange
	modeCh      chan ModeChange
	transportCh chan TransportChange
	libraryCh   chan LibraryChange
	doneCh      chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		trackCh:     make(chan TrackChange, eventBufferSize),
		queueCh:     make(chan QueueChange, eventBufferSize),
		modeCh:      make(chan ModeChange, eventBufferSize),
		transportCh: make(chan TransportChange, eventBufferSize),
		libraryCh:   make(chan LibraryChange, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.TrackChanged = s.trackCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.TransportChanged = s.transportCh
	s.LibraryChanged = s.libraryCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
	}
}

func (s *Subscription) sendQueue(e QueueChange) {
	select {
	case s.queueCh <- e:
	default:
	}
}

func (s *Subscription) sendMode(e ModeChange) {
	select {
	case s.modeCh <- e:
	default:
	}
}

func (s *Subscription) sendTransport(e TransportChange) {
	select {
	case s.transportCh <- e:
	default:
	}
}

func (s *Subscription) sendLibrary(e LibraryChange) {
	select {
	case s.libraryCh <- e:
	default:
	}
}

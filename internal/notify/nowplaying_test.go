package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/llehouerou/tides/internal/kv"
	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []Notification
	next uint32
	err  error
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	f.next++
	return f.next, nil
}

func (f *fakeNotifier) Dismiss(uint32) error { return nil }

func (f *fakeNotifier) notifications() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.sent...)
}

func TestNowPlaying_ReplacesPrevious(t *testing.T) {
	n := &fakeNotifier{}
	w := NewNowPlaying(n, nil)

	w.show(track.Track{ID: "a", Name: "Alpha", PrimaryArtists: "First", Album: track.AlbumRef{Name: "One"}})
	w.show(track.Track{ID: "b", Name: "Beta"})

	sent := n.notifications()
	if len(sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(sent))
	}
	if sent[0].Title != "Alpha" || sent[0].Body != "First · One" || sent[0].ReplacesID != 0 {
		t.Errorf("first = %+v", sent[0])
	}
	if sent[1].Body != "" || sent[1].ReplacesID != 1 {
		t.Errorf("second = %+v, want empty body replacing id 1", sent[1])
	}
}

func TestNowPlaying_IgnoresEmptyTrack(t *testing.T) {
	n := &fakeNotifier{}
	NewNowPlaying(n, nil).show(track.Track{})

	if len(n.notifications()) != 0 {
		t.Error("notification sent for empty track")
	}
}

func TestNowPlaying_FailureKeepsLastID(t *testing.T) {
	n := &fakeNotifier{}
	w := NewNowPlaying(n, nil)
	w.show(track.Track{ID: "a", Name: "Alpha"})

	n.err = errors.New("no server")
	w.show(track.Track{ID: "b", Name: "Beta"})

	if w.lastID != 1 {
		t.Errorf("lastID = %d, want 1", w.lastID)
	}
}

func TestNowPlaying_RunFollowsStore(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		lib := library.New(kv.NewMemory(), library.DefaultPrefix, nil)
		defer lib.Close()
		store := playback.New(lib, nil)
		n := &fakeNotifier{}
		w := NewNowPlaying(n, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		sub := store.Subscribe()
		go func() {
			w.Run(ctx, sub)
			close(done)
		}()

		store.PlaySong(track.Track{ID: "a", Name: "Alpha"})
		synctest.Wait()

		if sent := n.notifications(); len(sent) != 1 || sent[0].Title != "Alpha" {
			t.Errorf("sent = %+v", sent)
		}

		cancel()
		<-done
	})
}

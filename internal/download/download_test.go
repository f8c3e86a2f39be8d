package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/llehouerou/tides/internal/track"
)

type fakeRecorder struct {
	mu   sync.Mutex
	uris map[string]string
	err  error
}

func (r *fakeRecorder) SetDownloadURI(_ context.Context, id, uri string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.uris == nil {
		r.uris = make(map[string]string)
	}
	r.uris[id] = uri
	return nil
}

type fakeCollection struct {
	mu    sync.Mutex
	added []track.Track
}

func (c *fakeCollection) AddDownloadedTrack(t track.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append(c.added, t)
}

func audioServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a_160.mp4":
			_, _ = w.Write([]byte("standard"))
		case "/a_320.mp4":
			_, _ = w.Write([]byte("high quality"))
		case "/noext":
			_, _ = w.Write([]byte("x"))
		default:
			http.Error(w, "gone", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownload_PrefersHighQuality(t *testing.T) {
	srv := audioServer(t)
	dir := filepath.Join(t.TempDir(), "downloads")
	rec := &fakeRecorder{}
	coll := &fakeCollection{}
	d := New(rec, coll, Options{Dir: dir, Client: srv.Client()})

	tr := track.Track{ID: "a", AudioURL: srv.URL + "/a_160.mp4", AudioURL320: srv.URL + "/a_320.mp4"}
	res, err := d.Download(context.Background(), tr)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	want := filepath.Join(dir, "a.mp4")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "high quality" {
		t.Errorf("content = %q, want high quality", data)
	}
	if res.Size != int64(len("high quality")) {
		t.Errorf("Size = %d", res.Size)
	}
	if rec.uris["a"] != want {
		t.Errorf("recorded uri = %q, want %q", rec.uris["a"], want)
	}
	if len(coll.added) != 1 || coll.added[0].ID != "a" {
		t.Errorf("added = %+v", coll.added)
	}
}

func TestDownload_FallsBackToStandardURL(t *testing.T) {
	srv := audioServer(t)
	dir := t.TempDir()
	d := New(&fakeRecorder{}, &fakeCollection{}, Options{Dir: dir, Client: srv.Client()})

	res, err := d.Download(context.Background(), track.Track{ID: "a", AudioURL: srv.URL + "/a_160.mp4"})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	data, _ := os.ReadFile(res.Path)
	if string(data) != "standard" {
		t.Errorf("content = %q, want standard", data)
	}
}

func TestDownload_NoSource(t *testing.T) {
	coll := &fakeCollection{}
	d := New(&fakeRecorder{}, coll, Options{Dir: t.TempDir()})

	_, err := d.Download(context.Background(), track.Track{ID: "a"})

	if !errors.Is(err, ErrNoSource) {
		t.Errorf("error = %v, want ErrNoSource", err)
	}
	if len(coll.added) != 0 {
		t.Error("track added without a download")
	}
}

func TestDownload_FailureLeavesNothingBehind(t *testing.T) {
	srv := audioServer(t)
	dir := t.TempDir()
	coll := &fakeCollection{}
	d := New(&fakeRecorder{}, coll, Options{Dir: dir, Client: srv.Client()})

	_, err := d.Download(context.Background(), track.Track{ID: "a", AudioURL: srv.URL + "/missing.mp4"})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("dir has %d entries, want 0", len(entries))
	}
	if len(coll.added) != 0 {
		t.Error("track added after failed download")
	}
}

func TestDownload_RecordFailureRemovesFile(t *testing.T) {
	srv := audioServer(t)
	dir := t.TempDir()
	coll := &fakeCollection{}
	d := New(&fakeRecorder{err: errors.New("disk full")}, coll, Options{Dir: dir, Client: srv.Client()})

	_, err := d.Download(context.Background(), track.Track{ID: "a", AudioURL: srv.URL + "/a_160.mp4"})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a.mp4")); !os.IsNotExist(statErr) {
		t.Errorf("file should be removed, stat err = %v", statErr)
	}
	if len(coll.added) != 0 {
		t.Error("track added after failed record")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		id   string
		url  string
		want string
	}{
		{"abc", "https://cdn/x/abc_320.mp4", "abc.mp4"},
		{"abc", "https://cdn/x/abc.MP3", "abc.mp3"},
		{"abc", "https://cdn/noext", "abc.mp4"},
		{"a/b\\c", "https://cdn/f.mp4", "a_b_c.mp4"},
		{"..", "https://cdn/f.mp4", "track.mp4"},
		{"abc", "https://cdn/f.verylongext", "abc.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			if err != nil {
				t.Fatal(err)
			}
			if got := fileName(tt.id, u); got != tt.want {
				t.Errorf("fileName(%q, %q) = %q, want %q", tt.id, tt.url, got, tt.want)
			}
		})
	}
}

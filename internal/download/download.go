// Package download saves catalog tracks to disk for offline playback.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/track"
)

// defaultExt is used when the audio URL carries no extension. The catalog
// serves AAC in an MP4 container.
const defaultExt = ".mp4"

// ErrNoSource is returned when a track has no audio URL at all.
var ErrNoSource = errors.New("track has no audio url")

// URIRecorder stores the local file for a downloaded track.
type URIRecorder interface {
	SetDownloadURI(ctx context.Context, trackID, uri string) error
}

// Collection receives finished downloads.
type Collection interface {
	AddDownloadedTrack(t track.Track)
}

// Result describes a completed download.
type Result struct {
	Track track.Track
	Path  string
	Size  int64
}

// Options configures a Downloader.
type Options struct {
	// Dir is created on first use.
	Dir    string
	Client *http.Client
	Logger *zap.Logger
}

// Downloader fetches track audio into a directory.
type Downloader struct {
	dir    string
	client *http.Client
	uris   URIRecorder
	store  Collection
	log    *zap.Logger
}

// New creates a Downloader writing into opts.Dir.
func New(uris URIRecorder, store Collection, opts Options) *Downloader {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Downloader{
		dir:    opts.Dir,
		client: opts.Client,
		uris:   uris,
		store:  store,
		log:    opts.Logger.Named("download"),
	}
}

// Dir returns the download directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Download fetches the best available rendition of t, records its local
// path and adds it to the downloaded collection. Nothing is retried.
func (d *Downloader) Download(ctx context.Context, t track.Track) (Result, error) {
	src := t.BestAudioURL()
	if src == "" {
		return Result{}, ErrNoSource
	}
	u, err := url.Parse(src)
	if err != nil {
		return Result{}, fmt.Errorf("parse audio url: %w", err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create download dir: %w", err)
	}
	dest := filepath.Join(d.dir, fileName(t.ID, u))

	size, err := d.fetch(ctx, u, dest)
	if err != nil {
		return Result{}, err
	}

	if err := d.uris.SetDownloadURI(ctx, t.ID, dest); err != nil {
		_ = os.Remove(dest)
		return Result{}, fmt.Errorf("record download: %w", err)
	}
	d.store.AddDownloadedTrack(t)

	d.log.Info("track downloaded",
		zap.String("track", t.ID),
		zap.String("path", dest),
		zap.String("size", humanize.Bytes(uint64(size))),
	)
	return Result{Track: t, Path: dest, Size: size}, nil
}

// fetch writes the body of u to dest through a temporary file in the same
// directory, so dest is either absent or complete.
func (d *Downloader) fetch(ctx context.Context, u *url.URL, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	tmp, err := os.CreateTemp(d.dir, ".tides-download-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("write %s: %w", filepath.Base(dest), err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("move into place: %w", err)
	}
	return n, nil
}

// fileName builds "<id><ext>" with path separators stripped from the id.
func fileName(id string, u *url.URL) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, id)
	if safe == "" || safe == "." || safe == ".." {
		safe = "track"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" || len(ext) > 5 {
		ext = defaultExt
	}
	return safe + ext
}

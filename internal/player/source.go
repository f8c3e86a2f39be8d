package player

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var contentTypeExt = map[string]string{
	"audio/mpeg":  extMP3,
	"audio/mp3":   extMP3,
	"audio/mp4":   extMP4,
	"audio/x-m4a": extM4A,
	"audio/aac":   extAAC,
	"audio/flac":  extFLAC,
	"audio/wav":   extWAV,
	"audio/x-wav": extWAV,
}

// source is an opened, seekable audio file plus the extension used to
// choose a decoder. cleanup removes any temporary copy.
type source struct {
	file    *os.File
	ext     string
	cleanup func()
}

// openSource resolves uri to a local file. Remote sources are copied into
// tmpDir first so decoders can seek.
func openSource(ctx context.Context, client *http.Client, tmpDir, uri string) (*source, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return openLocal(uri)
	}
	switch u.Scheme {
	case "file":
		return openLocal(u.Path)
	case "http", "https":
		return fetch(ctx, client, tmpDir, u)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func openLocal(p string) (*source, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	return &source{file: f, ext: strings.ToLower(filepath.Ext(p)), cleanup: func() {}}, nil
}

func fetch(ctx context.Context, client *http.Client, tmpDir string, u *url.URL) (*source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", u.Redacted(), resp.Status)
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if _, ok := knownExt(ext); !ok {
		ext = extFromContentType(resp.Header.Get("Content-Type"))
	}

	f, err := os.CreateTemp(tmpDir, "tides-stream-*"+ext)
	if err != nil {
		return nil, err
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		cleanup()
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		cleanup()
		return nil, err
	}
	return &source{file: f, ext: ext, cleanup: cleanup}, nil
}

func knownExt(ext string) (string, bool) {
	switch ext {
	case extMP3, extFLAC, extWAV, extM4A, extMP4, extAAC:
		return ext, true
	}
	return "", false
}

func extFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return contentTypeExt[mt]
}

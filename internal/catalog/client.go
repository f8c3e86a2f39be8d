// Package catalog provides a client for the song catalog search API and
// normalises its responses into track values.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/tides/internal/track"
)

// ErrNotFound is returned when a lookup by id yields nothing.
var ErrNotFound = errors.New("not found")

const (
	// DefaultBaseURL is the public catalog endpoint.
	DefaultBaseURL  = "https://saavn.sumit.co"
	DefaultPageSize = 20
	defaultTimeout  = 10 * time.Second
	userAgent       = "tides/1.0 (https://github.com/llehouerou/tides)"
)

// Options configures a Client.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client is a catalog API client. It does not retry.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// New creates a new catalog client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		pageSize:   opts.PageSize,
		httpClient: hc,
	}
}

// PageSize is the default page size for song searches.
func (c *Client) PageSize() int { return c.pageSize }

// SearchSongs returns one page of songs matching query. page starts at 1;
// limit <= 0 uses the configured page size.
func (c *Client) SearchSongs(ctx context.Context, query string, page, limit int) (SongPage, error) {
	if limit <= 0 {
		limit = c.pageSize
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(max(page, 1)))
	params.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Data struct {
			Total   int             `json:"total"`
			Results []rawSearchSong `json:"results"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/search/songs", params, &resp); err != nil {
		return SongPage{}, err
	}
	tracks := make([]track.Track, 0, len(resp.Data.Results))
	for _, s := range resp.Data.Results {
		tracks = append(tracks, fromSearchSong(s))
	}
	return SongPage{Tracks: tracks, Total: resp.Data.Total}, nil
}

// SearchArtists returns artists matching query.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]Artist, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp struct {
		Data struct {
			Results []rawSearchArtist `json:"results"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/search/artists", params, &resp); err != nil {
		return nil, err
	}
	out := make([]Artist, 0, len(resp.Data.Results))
	for _, a := range resp.Data.Results {
		out = append(out, fromSearchArtist(a))
	}
	return out, nil
}

// SearchAlbums returns albums matching query.
func (c *Client) SearchAlbums(ctx context.Context, query string) ([]Album, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp struct {
		Data struct {
			Results []rawSearchAlbum `json:"results"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/api/search/albums", params, &resp); err != nil {
		return nil, err
	}
	out := make([]Album, 0, len(resp.Data.Results))
	for _, a := range resp.Data.Results {
		out = append(out, fromSearchAlbum(a))
	}
	return out, nil
}

// Song fetches a single song by id.
func (c *Client) Song(ctx context.Context, id string) (track.Track, error) {
	var resp struct {
		Data []rawSong `json:"data"`
	}
	if err := c.get(ctx, "/api/songs/"+url.PathEscape(id), nil, &resp); err != nil {
		return track.Track{}, err
	}
	if len(resp.Data) == 0 {
		return track.Track{}, ErrNotFound
	}
	return fromSong(resp.Data[0]), nil
}

// Suggestions returns songs related to the song with id.
func (c *Client) Suggestions(ctx context.Context, id string) ([]track.Track, error) {
	var resp struct {
		Data []rawSong `json:"data"`
	}
	if err := c.get(ctx, "/api/songs/"+url.PathEscape(id)+"/suggestions", nil, &resp); err != nil {
		return nil, err
	}
	return fromSongs(resp.Data), nil
}

// Artist fetches the artist page.
func (c *Client) Artist(ctx context.Context, id string) (ArtistDetail, error) {
	var resp struct {
		Data *rawArtistDetail `json:"data"`
	}
	if err := c.get(ctx, "/api/artists/"+url.PathEscape(id), nil, &resp); err != nil {
		return ArtistDetail{}, err
	}
	if resp.Data == nil {
		return ArtistDetail{}, ErrNotFound
	}
	return ArtistDetail{
		Artist:   fromSearchArtist(resp.Data.rawSearchArtist),
		Bio:      strings.TrimSpace(string(resp.Data.Bio)),
		TopSongs: fromSongs(resp.Data.TopSongs),
	}, nil
}

// ArtistSongs returns the artist's songs. The endpoint has answered with
// several shapes; all are accepted.
func (c *Client) ArtistSongs(ctx context.Context, id string) ([]track.Track, error) {
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.get(ctx, "/api/artists/"+url.PathEscape(id)+"/songs", nil, &resp); err != nil {
		return nil, err
	}
	songs, err := decodeSongList(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return fromSongs(songs), nil
}

// Album fetches the album page with its songs.
func (c *Client) Album(ctx context.Context, id string) (AlbumDetail, error) {
	params := url.Values{}
	params.Set("id", id)

	var resp struct {
		Data *rawAlbumDetail `json:"data"`
	}
	if err := c.get(ctx, "/api/albums", params, &resp); err != nil {
		return AlbumDetail{}, err
	}
	if resp.Data == nil {
		return AlbumDetail{}, ErrNotFound
	}
	return AlbumDetail{
		Album:  fromSearchAlbum(resp.Data.rawSearchAlbum),
		Tracks: fromSongs(resp.Data.Songs),
	}, nil
}

// decodeSongList accepts {songs: [...]}, {results: [...]} or a bare list.
func decodeSongList(data json.RawMessage) ([]rawSong, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	if data[0] == '[' {
		var songs []rawSong
		err := json.Unmarshal(data, &songs)
		return songs, err
	}
	var wrapped struct {
		Songs   []rawSong `json:"songs"`
		Results []rawSong `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Songs != nil {
		return wrapped.Songs, nil
	}
	return wrapped.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s (%s)", resp.Status, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

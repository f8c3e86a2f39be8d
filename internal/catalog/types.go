package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/llehouerou/tides/internal/track"
)

// image is one rendition of an artwork in the API.
type image struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
	URL     string `json:"url"`
}

func (i image) href() string {
	if i.Link != "" {
		return i.Link
	}
	return i.URL
}

// flexInt accepts a JSON number, a numeric string or null.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*n = 0
			return nil
		}
		*n = flexInt(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = flexInt(f)
	return nil
}

// bio accepts either a plain string or a list of sections.
type bio string

func (t *bio) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = bio(s)
		return nil
	}
	var sections []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &sections); err != nil {
		return err
	}
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	*t = bio(strings.Join(parts, "\n\n"))
	return nil
}

type rawAlbumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// rawSearchSong is a song from /api/search/songs.
type rawSearchSong struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Album            rawAlbumRef `json:"album"`
	Duration         flexInt     `json:"duration"`
	PrimaryArtists   string      `json:"primaryArtists"`
	PrimaryArtistsID string      `json:"primaryArtistsId"`
	Image            []image     `json:"image"`
	DownloadURL      []image     `json:"downloadUrl"`
}

type rawArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// rawSong is a song from /api/songs and the detail endpoints.
type rawSong struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Duration flexInt     `json:"duration"`
	Album    rawAlbumRef `json:"album"`
	Artists  struct {
		Primary []rawArtistRef `json:"primary"`
	} `json:"artists"`
	Image       []image `json:"image"`
	DownloadURL []image `json:"downloadUrl"`
}

type rawSearchArtist struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Image         []image `json:"image"`
	FollowerCount flexInt `json:"followerCount"`
	IsVerified    bool    `json:"isVerified"`
	AlbumCount    flexInt `json:"albumCount"`
	SongCount     flexInt `json:"songCount"`
}

type rawSearchAlbum struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Artist         string  `json:"artist"`
	PrimaryArtists string  `json:"primaryArtists"`
	Year           string  `json:"year"`
	SongCount      flexInt `json:"songCount"`
	Image          []image `json:"image"`
}

type rawArtistDetail struct {
	rawSearchArtist
	Bio      bio       `json:"bio"`
	TopSongs []rawSong `json:"topSongs"`
}

type rawAlbumDetail struct {
	rawSearchAlbum
	Duration flexInt   `json:"duration"`
	Songs    []rawSong `json:"songs"`
}

// SongPage is one page of song search results.
type SongPage struct {
	Tracks []track.Track
	Total  int
}

// Artist is an artist search hit.
type Artist struct {
	ID            string
	Name          string
	Image         string
	FollowerCount int
	Verified      bool
	AlbumCount    int
	SongCount     int
}

// Album is an album search hit.
type Album struct {
	ID        string
	Name      string
	Artists   string
	Year      string
	SongCount int
	Image     string
}

// ArtistDetail is the full artist page.
type ArtistDetail struct {
	Artist
	Bio      string
	TopSongs []track.Track
}

// AlbumDetail is the full album page.
type AlbumDetail struct {
	Album
	Tracks []track.Track
}

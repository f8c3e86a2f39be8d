package catalog

import (
	"html"
	"strings"

	"github.com/llehouerou/tides/internal/track"
)

const (
	qualityStandard = "160kbps"
	qualityHigh     = "320kbps"
	qualityLow      = "96kbps"
)

// bestImage prefers 500x500, then 150x150, then the last rendition.
func bestImage(imgs []image) string {
	if len(imgs) == 0 {
		return ""
	}
	for _, q := range []string{"500x500", "150x150"} {
		for _, img := range imgs {
			if img.Quality == q {
				return img.href()
			}
		}
	}
	return imgs[len(imgs)-1].href()
}

// audioURL prefers the given quality, then 96kbps, then the last entry.
func audioURL(urls []image, preferred string) string {
	if len(urls) == 0 {
		return ""
	}
	for _, q := range []string{preferred, qualityLow} {
		for _, u := range urls {
			if u.Quality == q {
				return u.href()
			}
		}
	}
	return urls[len(urls)-1].href()
}

// exactAudioURL returns the URL for quality, or "" when absent.
func exactAudioURL(urls []image, quality string) string {
	for _, u := range urls {
		if u.Quality == quality {
			return u.href()
		}
	}
	return ""
}

// text decodes HTML entities the API leaves in display strings.
func text(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

func fromSearchSong(s rawSearchSong) track.Track {
	return track.Track{
		ID:             s.ID,
		Name:           text(s.Name),
		DurationSecs:   max(int(s.Duration), 0),
		PrimaryArtists: text(s.PrimaryArtists),
		ArtistIDs:      s.PrimaryArtistsID,
		Album:          track.AlbumRef{ID: s.Album.ID, Name: text(s.Album.Name)},
		Artwork:        bestImage(s.Image),
		AudioURL:       audioURL(s.DownloadURL, qualityStandard),
		AudioURL320:    exactAudioURL(s.DownloadURL, qualityHigh),
	}
}

func fromSong(s rawSong) track.Track {
	names := make([]string, 0, len(s.Artists.Primary))
	ids := make([]string, 0, len(s.Artists.Primary))
	for _, a := range s.Artists.Primary {
		names = append(names, text(a.Name))
		if a.ID != "" {
			ids = append(ids, a.ID)
		}
	}
	return track.Track{
		ID:             s.ID,
		Name:           text(s.Name),
		DurationSecs:   max(int(s.Duration), 0),
		PrimaryArtists: strings.Join(names, ", "),
		ArtistIDs:      strings.Join(ids, ","),
		Album:          track.AlbumRef{ID: s.Album.ID, Name: text(s.Album.Name)},
		Artwork:        bestImage(s.Image),
		AudioURL:       audioURL(s.DownloadURL, qualityStandard),
		AudioURL320:    exactAudioURL(s.DownloadURL, qualityHigh),
	}
}

func fromSongs(raw []rawSong) []track.Track {
	out := make([]track.Track, 0, len(raw))
	for _, s := range raw {
		out = append(out, fromSong(s))
	}
	return out
}

func fromSearchArtist(a rawSearchArtist) Artist {
	return Artist{
		ID:            a.ID,
		Name:          text(a.Name),
		Image:         bestImage(a.Image),
		FollowerCount: int(a.FollowerCount),
		Verified:      a.IsVerified,
		AlbumCount:    int(a.AlbumCount),
		SongCount:     int(a.SongCount),
	}
}

func fromSearchAlbum(a rawSearchAlbum) Album {
	artists := a.PrimaryArtists
	if artists == "" {
		artists = a.Artist
	}
	return Album{
		ID:        a.ID,
		Name:      text(a.Name),
		Artists:   text(artists),
		Year:      a.Year,
		SongCount: int(a.SongCount),
		Image:     bestImage(a.Image),
	}
}

package library

import (
	"github.com/sahilm/fuzzy"

	"github.com/llehouerou/tides/internal/track"
)

// trackSource exposes tracks to the fuzzy matcher as "name artists album".
type trackSource []track.Track

func (s trackSource) String(i int) string {
	t := s[i]
	return t.Name + " " + t.PrimaryArtists + " " + t.Album.Name
}

func (s trackSource) Len() int { return len(s) }

// Filter returns the tracks matching query, best match first.
// An empty query returns tracks unchanged.
func Filter(tracks []track.Track, query string) []track.Track {
	if query == "" {
		return tracks
	}
	matches := fuzzy.FindFrom(query, trackSource(tracks))
	out := make([]track.Track, len(matches))
	for i, m := range matches {
		out[i] = tracks[m.Index]
	}
	return out
}

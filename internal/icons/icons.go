// Package icons selects the glyphs used for track markers and modes.
package icons

// Style names an icon set.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs of one style.
type Icons struct {
	Playing    string
	Paused     string
	Shuffle    string
	RepeatAll  string
	RepeatOne  string
	Favourite  string
	Downloaded string
	Playlist   string
}

var (
	nerdIcons = Icons{
		Playing:    "\uf04b",      // nf-fa-play
		Paused:     "\uf04c",      // nf-fa-pause
		Shuffle:    "\U000f049f",  // nf-md-shuffle
		RepeatAll:  "\U000f0456",  // nf-md-repeat
		RepeatOne:  "\U000f0458",  // nf-md-repeat_once
		Favourite:  "\U000f08d0",  // nf-md-heart
		Downloaded: "\uf019",      // nf-fa-download
		Playlist:   "\U000f0cb8 ", // nf-md-playlist_music
	}

	unicodeIcons = Icons{
		Playing:    "▶",
		Paused:     "⏸",
		Shuffle:    "🔀",
		RepeatAll:  "🔁",
		RepeatOne:  "🔂",
		Favourite:  "♥",
		Downloaded: "↓",
		Playlist:   "♫ ",
	}

	noneIcons = Icons{
		Playing:    ">",
		Paused:     "||",
		Shuffle:    "[S]",
		RepeatAll:  "[R]",
		RepeatOne:  "[1]",
		Favourite:  "*",
		Downloaded: "+",
		Playlist:   "",
	}

	current = unicodeIcons
)

// Init selects the icon set. Unknown styles fall back to plain ASCII.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Status returns the transport glyph.
func Status(playing bool) string {
	if playing {
		return current.Playing
	}
	return current.Paused
}

// Shuffle returns the shuffle indicator.
func Shuffle() string { return current.Shuffle }

// RepeatAll returns the repeat-all indicator.
func RepeatAll() string { return current.RepeatAll }

// RepeatOne returns the repeat-one indicator.
func RepeatOne() string { return current.RepeatOne }

// Favourite returns the favourite marker.
func Favourite() string { return current.Favourite }

// Downloaded returns the downloaded marker.
func Downloaded() string { return current.Downloaded }

// FormatPlaylist prefixes a playlist name with its glyph.
func FormatPlaylist(name string) string {
	return current.Playlist + name
}

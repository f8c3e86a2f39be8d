// Package playerbar renders the now-playing bar.
package playerbar

import (
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/tides/internal/icons"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

// State holds everything needed to render the bar.
type State struct {
	Track     *track.Track
	Playing   bool
	Position  time.Duration
	Duration  time.Duration
	Shuffle   bool
	Repeat    playback.RepeatMode
	Favourite bool
	Index     int
	QueueLen  int
}

// NewState builds a State from a store snapshot. The engine duration wins
// over the catalog one once known.
func NewState(snap playback.Snapshot, favourite bool) State {
	st := State{
		Track:     snap.CurrentTrack,
		Playing:   snap.Playing,
		Position:  snap.Position,
		Duration:  snap.Duration,
		Shuffle:   snap.Shuffle,
		Repeat:    snap.Repeat,
		Favourite: favourite,
		Index:     snap.CurrentIndex,
		QueueLen:  len(snap.Queue),
	}
	if st.Duration <= 0 && st.Track != nil {
		st.Duration = st.Track.Duration()
	}
	return st
}

// Render returns the bordered bar, ui.PlayerBarHeight rows tall.
func Render(s State, width int) string {
	inner := max(width-ui.BorderWidth-2, 0)
	st := styles.T().S()

	var top, bottom string
	if s.Track == nil {
		top = render.Pad(st.Muted.Render("Nothing playing"), inner)
		bottom = progressLine(0, 0, inner)
	} else {
		top = infoLine(s, inner)
		bottom = progressLine(s.Position, s.Duration, inner)
	}

	return styles.PanelStyle(false).
		Padding(0, 1).
		Width(width - ui.BorderWidth).
		Render(top + "\n" + bottom)
}

func infoLine(s State, width int) string {
	st := styles.T().S()

	right := modes(s)
	if s.QueueLen > 0 && s.Index >= 0 {
		right = strings.TrimSpace(right + "  " + st.Muted.Render(position(s.Index, s.QueueLen)))
	}

	status := icons.Status(s.Playing) + " "
	if s.Favourite {
		status += st.Accent.Render(icons.Favourite()) + " "
	}

	title := render.Sanitize(s.Track.Name)
	info := render.Sanitize(s.Track.PrimaryArtists)
	if s.Track.Album.Name != "" {
		info += " · " + render.Sanitize(s.Track.Album.Name)
	}

	avail := max(width-render.Width(status)-render.Width(right)-1, 0)
	var left string
	switch {
	case render.Width(title)+3+render.Width(info) <= avail:
		left = st.Playing.Render(title) + "   " + st.Muted.Render(info)
	case render.Width(title)+4 < avail:
		left = st.Playing.Render(title) + "   " +
			st.Muted.Render(render.TruncateEllipsis(info, avail-render.Width(title)-3))
	default:
		left = st.Playing.Render(render.TruncateEllipsis(title, avail))
	}
	return render.Row(status+left, right, width)
}

func modes(s State) string {
	var parts []string
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	switch s.Repeat {
	case playback.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case playback.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	case playback.RepeatOff:
	}
	return styles.T().S().Accent.Render(strings.Join(parts, " "))
}

func position(index, n int) string {
	return strconv.Itoa(index+1) + "/" + strconv.Itoa(n)
}

func progressLine(pos, dur time.Duration, width int) string {
	st := styles.T().S()
	times := render.Duration(pos) + " / " + render.Duration(dur)
	barWidth := width - render.Width(times) - 2
	if barWidth < ui.MinProgressBarWidth {
		return render.Pad(times, width)
	}

	var ratio float64
	if dur > 0 {
		ratio = min(float64(pos)/float64(dur), 1)
	}
	filled := int(float64(barWidth) * ratio)
	bar := st.Playing.Render(strings.Repeat("━", filled)) +
		st.Subtle.Render(strings.Repeat("─", barWidth-filled))
	return bar + "  " + st.Muted.Render(times)
}

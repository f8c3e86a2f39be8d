// Package tracklist renders a panel of tracks with markers for the playing,
// favourite and downloaded states.
package tracklist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tides/internal/icons"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/list"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

// Marks answers the per-track badges.
type Marks interface {
	IsFavourite(id string) bool
	IsDownloaded(id string) bool
}

// Model is a focusable track panel.
type Model struct {
	list.Model[track.Track]
	title     string
	empty     string
	playingID string
	playingAt int
	marks     Marks
}

// New creates an empty panel titled title. empty is shown when there are
// no tracks.
func New(title, empty string, marks Marks) Model {
	return Model{
		Model:     list.New[track.Track](ui.PanelOverhead),
		title:     title,
		empty:     empty,
		playingAt: -1,
		marks:     marks,
	}
}

// SetTitle replaces the panel title.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetEmpty replaces the placeholder shown for an empty list.
func (m *Model) SetEmpty(empty string) {
	m.empty = empty
}

// SetPlaying marks the track with id as current. index pins the marker to
// one row when the same track appears twice; pass -1 to mark every match.
func (m *Model) SetPlaying(id string, index int) {
	m.playingID = id
	m.playingAt = index
}

// Update forwards navigation to the list.
func (m *Model) Update(msg tea.Msg) list.Result {
	return m.Model.Update(msg)
}

// View renders the panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	width := m.InnerWidth()
	st := styles.T().S()
	tracks := m.Items()

	header := st.Title.Render(m.title)
	if len(tracks) > 0 {
		header = render.Row(header,
			st.Muted.Render(countLabel(len(tracks))+" · "+render.Total(track.TotalDuration(tracks))),
			width)
	}

	rows := m.ListHeight(ui.PanelOverhead)
	lines := make([]string, 0, rows)
	if len(tracks) == 0 {
		lines = append(lines, render.Pad(st.Muted.Render(m.empty), width))
	}
	start, end := m.VisibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, m.row(i, width))
	}
	for len(lines) < rows {
		lines = append(lines, render.EmptyLine(width))
	}

	content := render.Pad(header, width) + "\n" + render.Separator(width) + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(m.IsFocused()).Width(width).Render(content)
}

func (m Model) row(i, width int) string {
	st := styles.T().S()
	t := m.Items()[i]

	playing := t.ID == m.playingID && (m.playingAt < 0 || m.playingAt == i)
	marker := "  "
	if playing {
		marker = icons.Status(true) + " "
	}

	var badges []string
	if m.marks != nil && m.marks.IsFavourite(t.ID) {
		badges = append(badges, icons.Favourite())
	}
	if m.marks != nil && m.marks.IsDownloaded(t.ID) {
		badges = append(badges, icons.Downloaded())
	}
	right := strings.Join(badges, " ")
	if right != "" {
		right += " "
	}
	right += render.Seconds(t.DurationSecs)

	avail := max(width-render.Width(marker)-render.Width(right)-1, 0)
	name := render.Sanitize(t.Name)
	artist := render.Sanitize(t.PrimaryArtists)
	var text string
	if nw := render.Width(name); nw+3 < avail && artist != "" {
		text = name + " · " + render.TruncateEllipsis(artist, avail-nw-3)
	} else {
		text = render.TruncateEllipsis(name, avail)
	}
	line := render.Row(marker+text, right, width)

	switch {
	case i == m.SelectedIndex() && m.IsFocused():
		return st.Cursor.Render(line)
	case playing:
		return st.Playing.Render(line)
	default:
		return st.Base.Render(line)
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 track"
	}
	return humanize.Comma(int64(n)) + " tracks"
}

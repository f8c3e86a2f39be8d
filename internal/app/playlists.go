package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tides/internal/icons"
	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/list"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
	"github.com/llehouerou/tides/internal/ui/tracklist"
)

// playlistEntry is one row of the playlists panel. The favourites and
// downloaded collections appear first under their reserved ids.
type playlistEntry struct {
	ID        string
	Name      string
	Count     int
	CreatedAt time.Time
}

func (e playlistEntry) reserved() bool {
	return track.IsReserved(e.ID)
}

type playlistsView struct {
	entries list.Model[playlistEntry]
	detail  tracklist.Model
	openID  string
	filter  string
	now     func() time.Time
}

func newPlaylistsView(marks tracklist.Marks) playlistsView {
	return playlistsView{
		entries: list.New[playlistEntry](ui.PanelOverhead),
		detail:  tracklist.New("", "Playlist is empty", marks),
		now:     time.Now,
	}
}

func (p *playlistsView) setSize(width, height int) {
	p.entries.SetSize(width, height)
	p.detail.SetSize(width, height)
}

func (p *playlistsView) setFocused(focused bool) {
	p.entries.SetFocused(focused && !p.isOpen())
	p.detail.SetFocused(focused && p.isOpen())
}

func (p playlistsView) isOpen() bool {
	return p.openID != ""
}

// refresh rebuilds the entries from the store and reloads the open
// playlist. A playlist deleted while open is closed.
func (p *playlistsView) refresh(s Store) {
	entries := []playlistEntry{
		{ID: track.FavouritesPlaylistID, Name: "Favourites", Count: len(s.Favourites())},
		{ID: track.DownloadedPlaylistID, Name: "Downloaded", Count: len(s.DownloadedTracks())},
	}
	for _, pl := range s.Playlists() {
		entries = append(entries, playlistEntry{
			ID:        pl.ID,
			Name:      pl.Name,
			Count:     len(pl.Tracks),
			CreatedAt: pl.CreatedAt,
		})
	}
	p.entries.SetItems(entries)

	if !p.isOpen() {
		return
	}
	tracks, name, ok := resolvePlaylist(s, p.openID)
	if !ok {
		p.close()
		return
	}
	p.detail.SetTitle(filteredTitle(name, p.filter))
	p.detail.SetItems(library.Filter(tracks, p.filter))
}

// resolvePlaylist returns the tracks behind id, following reserved ids to
// their collections.
func resolvePlaylist(s Store, id string) ([]track.Track, string, bool) {
	switch id {
	case track.FavouritesPlaylistID:
		return s.Favourites(), "Favourites", true
	case track.DownloadedPlaylistID:
		return s.DownloadedTracks(), "Downloaded", true
	}
	pl, ok := s.Playlist(id)
	if !ok {
		return nil, "", false
	}
	return pl.Tracks, pl.Name, true
}

func (p *playlistsView) open(s Store, id string) {
	p.openID = id
	p.detail.Select(0)
	p.refresh(s)
	p.entries.SetFocused(false)
	p.detail.SetFocused(true)
}

func (p *playlistsView) close() {
	p.openID = ""
	p.detail.SetItems(nil)
	p.detail.SetFocused(false)
	p.entries.SetFocused(true)
}

func (p playlistsView) selectedEntry() (playlistEntry, bool) {
	return p.entries.Selected()
}

func (p playlistsView) view() string {
	if p.isOpen() {
		return p.detail.View()
	}
	st := styles.T().S()
	width := p.entries.InnerWidth()
	rows := p.entries.ListHeight(ui.PanelOverhead)

	lines := make([]string, 0, rows)
	start, end := p.entries.VisibleRange()
	for i := start; i < end; i++ {
		e := p.entries.Items()[i]
		left := "  " + icons.FormatPlaylist(e.Name)
		right := countTracks(e.Count)
		if !e.reserved() && !e.CreatedAt.IsZero() {
			right += " · created " + humanize.RelTime(e.CreatedAt, p.now(), "ago", "from now")
		}
		line := render.Row(left, st.Subtle.Render(right), width)
		if i == p.entries.SelectedIndex() && p.entries.IsFocused() {
			line = st.Cursor.Render(render.Row(left, right, width))
		}
		lines = append(lines, line)
	}
	for len(lines) < rows {
		lines = append(lines, render.EmptyLine(width))
	}

	header := render.Row(st.Title.Render("Playlists"),
		st.Subtle.Render(strconv.Itoa(len(p.entries.Items())-2)+" playlists"), width)
	content := header + "\n" + render.Separator(width) + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(p.entries.IsFocused()).Width(width).Render(content)
}

func countTracks(n int) string {
	if n == 1 {
		return "1 track"
	}
	return humanize.Comma(int64(n)) + " tracks"
}

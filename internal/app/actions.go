package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/keymap"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui/action"
	"github.com/llehouerou/tides/internal/ui/confirm"
	"github.com/llehouerou/tides/internal/ui/helpbindings"
	"github.com/llehouerou/tides/internal/ui/jobbar"
	"github.com/llehouerou/tides/internal/ui/textinput"
)

const newPlaylistOption = "New playlist..."

var errEmptyName = errors.New("name cannot be empty")

// Popup contexts, echoed back in popup results.
type (
	filterContext      struct{ view View }
	newPlaylistContext struct{ track *track.Track }
	renameContext      struct{ id string }
	deleteContext      struct{ id, name string }
	addToPlaylistCtx   struct {
		track track.Track
		ids   []string
	}
)

func (m *Model) handleViewAction(act keymap.Action) (tea.Cmd, bool) {
	switch act {
	case keymap.ActionSelect:
		return m.activate(), true
	case keymap.ActionBack:
		return m.back(), true
	case keymap.ActionDelete:
		return m.remove(), true
	case keymap.ActionFilter:
		return m.openFilter(), true
	case keymap.ActionLoadMore:
		return m.loadMore(), true
	case keymap.ActionClearHistory:
		return m.clearHistory(), true
	case keymap.ActionNewPlaylist:
		if m.active != ViewPlaylists {
			return nil, false
		}
		return m.openPopup(textinput.New("New playlist", "", newPlaylistContext{})), true
	case keymap.ActionRename:
		return m.openRename(), true
	case keymap.ActionMoveItemUp, keymap.ActionMoveItemDown:
		return m.moveQueueItem(act == keymap.ActionMoveItemUp), true
	case keymap.ActionClear:
		if m.active != ViewQueue {
			return nil, false
		}
		m.store.ClearQueue()
		return m.setStatus("Queue cleared"), true
	}

	sel, ok := m.selected()
	switch act {
	case keymap.ActionAdd, keymap.ActionAddNext, keymap.ActionToggleFavourite,
		keymap.ActionDownload, keymap.ActionAddToPlaylist:
		if !ok {
			return nil, true
		}
	default:
		return nil, false
	}
	t := sel.track
	switch act {
	case keymap.ActionAdd:
		m.store.AddToQueue(t)
		return m.setStatus("Added " + t.Name + " to queue"), true
	case keymap.ActionAddNext:
		m.store.AddNextInQueue(t)
		return m.setStatus(t.Name + " plays next"), true
	case keymap.ActionToggleFavourite:
		if m.store.ToggleFavourite(t) {
			return m.setStatus("Added " + t.Name + " to favourites"), true
		}
		return m.setStatus("Removed " + t.Name + " from favourites"), true
	case keymap.ActionDownload:
		return m.download(t), true
	default:
		return m.openAddToPlaylist(t), true
	}
}

// activate plays the selected track from its list, or opens the selected
// search term or playlist.
func (m *Model) activate() tea.Cmd {
	switch {
	case m.active == ViewSearch && m.search.showingHistory():
		term, ok := m.search.history.Selected()
		if !ok {
			return nil
		}
		return m.submitSearch(term)
	case m.active == ViewPlaylists && !m.playlists.isOpen():
		e, ok := m.playlists.selectedEntry()
		if !ok {
			return nil
		}
		m.playlists.open(m.store, e.ID)
		return nil
	}
	sel, ok := m.selected()
	if !ok {
		return nil
	}
	if m.active == ViewQueue {
		m.store.PlaySongAt(sel.track, sel.list, sel.index)
	} else {
		m.store.PlaySongFrom(sel.track, sel.list)
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	switch {
	case m.active == ViewPlaylists && m.playlists.isOpen():
		m.playlists.close()
	case m.active == ViewSearch && !m.search.showingHistory():
		m.search.reset()
	case filterable(m.active) && m.filters[m.active] != "":
		m.setFilter(m.active, "")
	}
	return nil
}

func (m *Model) remove() tea.Cmd {
	switch m.active {
	case ViewQueue:
		if sel, ok := m.selected(); ok {
			m.store.RemoveFromQueue(sel.index)
		}
	case ViewFavourites:
		if sel, ok := m.selected(); ok {
			m.store.ToggleFavourite(sel.track)
			return m.setStatus("Removed " + sel.track.Name + " from favourites")
		}
	case ViewSearch:
		if !m.search.showingHistory() {
			return nil
		}
		if term, ok := m.search.history.Selected(); ok {
			m.saveHistory(m.search.removeHistory(term))
		}
	case ViewPlaylists:
		return m.removeFromPlaylists()
	}
	return nil
}

func (m *Model) removeFromPlaylists() tea.Cmd {
	if !m.playlists.isOpen() {
		e, ok := m.playlists.selectedEntry()
		if !ok || e.reserved() {
			return nil
		}
		return m.openPopup(confirm.New("Delete playlist",
			"Delete \""+e.Name+"\"?", deleteContext{id: e.ID, name: e.Name}))
	}
	sel, ok := m.selected()
	if !ok {
		return nil
	}
	switch m.playlists.openID {
	case track.FavouritesPlaylistID:
		m.store.ToggleFavourite(sel.track)
	case track.DownloadedPlaylistID:
		return nil
	default:
		m.store.RemoveTrackFromPlaylist(m.playlists.openID, sel.track.ID)
	}
	return m.setStatus("Removed " + sel.track.Name)
}

func (m *Model) openFilter() tea.Cmd {
	if !filterable(m.active) {
		return nil
	}
	if m.active == ViewPlaylists && !m.playlists.isOpen() {
		return nil
	}
	return m.openPopup(textinput.New("Filter", m.filters[m.active], filterContext{view: m.active}))
}

func (m *Model) setFilter(v View, query string) {
	if query == "" {
		delete(m.filters, v)
	} else {
		m.filters[v] = query
	}
	m.refreshLists()
}

func (m *Model) loadMore() tea.Cmd {
	if m.active != ViewSearch {
		return nil
	}
	seq, page, ok := m.search.nextPage()
	if !ok {
		return nil
	}
	return tea.Batch(SearchCmd(m.catalog, seq, m.search.query, page), m.search.spinner.Tick)
}

func (m *Model) clearHistory() tea.Cmd {
	if m.active != ViewSearch || !m.search.showingHistory() || m.search.history.Len() == 0 {
		return nil
	}
	m.search.setHistory(nil)
	m.saveHistory(nil)
	return m.setStatus("Search history cleared")
}

func (m *Model) saveHistory(terms []string) {
	if m.history != nil {
		m.history.SaveSearchHistory(terms)
	}
}

func (m *Model) openRename() tea.Cmd {
	if m.active != ViewPlaylists || m.playlists.isOpen() {
		return nil
	}
	e, ok := m.playlists.selectedEntry()
	if !ok || e.reserved() {
		return nil
	}
	return m.openPopup(textinput.New("Rename playlist", e.Name, renameContext{id: e.ID}))
}

func (m *Model) moveQueueItem(up bool) tea.Cmd {
	if m.active != ViewQueue {
		return nil
	}
	i := m.queue.SelectedIndex()
	if i >= m.queue.Len() {
		return nil
	}
	if up {
		if i == 0 {
			return nil
		}
		m.store.MoveUp(i)
		m.queue.SetItems(m.store.Queue())
		m.queue.Select(i - 1)
		return nil
	}
	if i >= m.queue.Len()-1 {
		return nil
	}
	m.store.MoveDown(i)
	m.queue.SetItems(m.store.Queue())
	m.queue.Select(i + 1)
	return nil
}

func (m *Model) download(t track.Track) tea.Cmd {
	switch {
	case m.downloader == nil:
		return m.setError("Downloads are disabled")
	case m.store.IsDownloaded(t.ID):
		return m.setStatus(t.Name + " is already downloaded")
	case !m.jobs.Add(jobbar.Job{ID: t.ID, Label: jobLabel(t)}):
		return m.setStatus(t.Name + " is already downloading")
	}
	m.resize(m.width, m.height)
	return tea.Batch(m.setStatus("Downloading "+t.Name+"..."), DownloadCmd(m.downloader, t))
}

func jobLabel(t track.Track) string {
	if t.PrimaryArtists == "" {
		return t.Name
	}
	return t.Name + " · " + t.PrimaryArtists
}

func (m *Model) openAddToPlaylist(t track.Track) tea.Cmd {
	playlists := m.store.Playlists()
	ids := make([]string, 0, len(playlists))
	options := make([]string, 0, len(playlists)+1)
	for _, p := range playlists {
		ids = append(ids, p.ID)
		options = append(options, p.Name)
	}
	options = append(options, newPlaylistOption)
	return m.openPopup(confirm.NewOptions("Add to playlist", t.Name, options,
		addToPlaylistCtx{track: t, ids: ids}))
}

// handleAction routes popup results.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case helpbindings.Close:
		m.popup = nil
	case textinput.Result:
		m.popup = nil
		if a.Canceled {
			return nil
		}
		return m.handleTextInput(a)
	case confirm.Result:
		m.popup = nil
		return m.handleConfirm(a)
	}
	return nil
}

func (m *Model) handleTextInput(r textinput.Result) tea.Cmd {
	switch ctx := r.Context.(type) {
	case filterContext:
		m.setFilter(ctx.view, r.Text)
	case newPlaylistContext:
		if r.Text == "" {
			return m.setError(errmsg.Format(errmsg.OpPlaylistCreate, errEmptyName))
		}
		id := m.store.CreatePlaylist(r.Text)
		if ctx.track != nil {
			m.store.AddTrackToPlaylist(id, *ctx.track)
			return m.setStatus("Added " + ctx.track.Name + " to " + r.Text)
		}
		return m.setStatus("Created playlist " + r.Text)
	case renameContext:
		if r.Text == "" {
			return m.setError(errmsg.Format(errmsg.OpPlaylistRename, errEmptyName))
		}
		m.store.RenamePlaylist(ctx.id, r.Text)
	}
	return nil
}

func (m *Model) handleConfirm(r confirm.Result) tea.Cmd {
	switch ctx := r.Context.(type) {
	case deleteContext:
		if !r.Confirmed {
			return nil
		}
		m.store.DeletePlaylist(ctx.id)
		return m.setStatus("Deleted playlist " + ctx.name)
	case addToPlaylistCtx:
		if !r.Confirmed {
			return nil
		}
		if r.Selected >= len(ctx.ids) {
			t := ctx.track
			return m.openPopup(textinput.New("New playlist", "", newPlaylistContext{track: &t}))
		}
		id := ctx.ids[r.Selected]
		if p, ok := m.store.Playlist(id); ok && p.Has(ctx.track.ID) {
			return m.setStatus(ctx.track.Name + " is already in " + p.Name)
		}
		m.store.AddTrackToPlaylist(id, ctx.track)
		name := id
		if p, ok := m.store.Playlist(id); ok {
			name = p.Name
		}
		return m.setStatus("Added " + ctx.track.Name + " to " + name)
	}
	return nil
}

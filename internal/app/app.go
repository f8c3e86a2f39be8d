package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/bridge"
	"github.com/llehouerou/tides/internal/keymap"
	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/headerbar"
	"github.com/llehouerou/tides/internal/ui/jobbar"
	"github.com/llehouerou/tides/internal/ui/layout"
	"github.com/llehouerou/tides/internal/ui/popup"
	"github.com/llehouerou/tides/internal/ui/tracklist"
)

// View identifies a top-level panel.
type View int

const (
	ViewQueue View = iota
	ViewSearch
	ViewFavourites
	ViewPlaylists
	ViewRecent
	ViewDownloads
)

var tabs = []headerbar.Tab{
	{Key: "1", Name: "Queue"},
	{Key: "2", Name: "Search"},
	{Key: "3", Name: "Favourites"},
	{Key: "4", Name: "Playlists"},
	{Key: "5", Name: "Recent"},
	{Key: "6", Name: "Downloads"},
}

// Deps are the services the UI drives. Downloader and Errors may be nil.
type Deps struct {
	Store      Store
	Catalog    Catalog
	Downloader Downloader
	History    SearchHistory
	Errors     <-chan bridge.ErrorEvent
	Logger     *zap.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	store      Store
	catalog    Catalog
	downloader Downloader
	history    SearchHistory
	errs       <-chan bridge.ErrorEvent
	log        *zap.Logger

	resolver *keymap.Resolver
	sub      *playback.Subscription

	active     View
	queue      tracklist.Model
	favourites tracklist.Model
	recent     tracklist.Model
	downloads  tracklist.Model
	search     searchView
	playlists  playlistsView
	filters    map[View]string

	popup popup.Popup
	snap  playback.Snapshot
	jobs  jobbar.State

	status        string
	statusErr     bool
	statusVersion int

	width  int
	height int
}

// New creates the root model and subscribes to the store.
func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	st := deps.Store
	m := Model{
		store:      st,
		catalog:    deps.Catalog,
		downloader: deps.Downloader,
		history:    deps.History,
		errs:       deps.Errors,
		log:        deps.Logger.Named("app"),
		resolver:   keymap.NewResolver(keymap.Bindings),
		sub:        st.Subscribe(),
		queue:      tracklist.New("Queue", "Queue is empty. Press / to search", st),
		favourites: tracklist.New("Favourites", "No favourites yet", st),
		recent:     tracklist.New("Recently played", "Nothing played yet", st),
		downloads:  tracklist.New("Downloads", "No downloads yet", st),
		search:     newSearchView(st),
		playlists:  newPlaylistsView(st),
		filters:    make(map[View]string),
	}
	m.snap = st.Snapshot()
	m.refreshLists()
	m.focusActive()
	return m
}

// Init starts the store and error watchers and loads the search history.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{WatchStoreEvents(m.sub), WatchErrors(m.errs)}
	if m.history != nil {
		cmds = append(cmds, LoadSearchHistoryCmd(m.history))
	}
	return tea.Batch(cmds...)
}

// Active returns the visible panel.
func (m Model) Active() View {
	return m.active
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m *Model) setView(v View) {
	if m.active == ViewSearch && v != ViewSearch {
		m.search.input.Blur()
	}
	m.active = v
	m.focusActive()
}

func (m *Model) focusActive() {
	m.queue.SetFocused(m.active == ViewQueue)
	m.favourites.SetFocused(m.active == ViewFavourites)
	m.recent.SetFocused(m.active == ViewRecent)
	m.downloads.SetFocused(m.active == ViewDownloads)
	m.search.setFocused(m.active == ViewSearch)
	m.playlists.setFocused(m.active == ViewPlaylists)
}

func filterable(v View) bool {
	switch v {
	case ViewFavourites, ViewRecent, ViewDownloads, ViewPlaylists:
		return true
	}
	return false
}

// refreshLists reloads every panel from the store.
func (m *Model) refreshLists() {
	m.queue.SetItems(m.store.Queue())
	m.favourites.SetItems(library.Filter(m.store.Favourites(), m.filters[ViewFavourites]))
	m.recent.SetItems(library.Filter(m.store.RecentlyPlayed(), m.filters[ViewRecent]))
	m.downloads.SetItems(library.Filter(m.store.DownloadedTracks(), m.filters[ViewDownloads]))
	m.favourites.SetTitle(filteredTitle("Favourites", m.filters[ViewFavourites]))
	m.recent.SetTitle(filteredTitle("Recently played", m.filters[ViewRecent]))
	m.downloads.SetTitle(filteredTitle("Downloads", m.filters[ViewDownloads]))
	m.playlists.filter = m.filters[ViewPlaylists]
	m.playlists.refresh(m.store)
	m.markPlaying()
}

func filteredTitle(title, filter string) string {
	if filter == "" {
		return title
	}
	return title + " (filter: " + filter + ")"
}

func (m *Model) markPlaying() {
	id := ""
	if m.snap.CurrentTrack != nil {
		id = m.snap.CurrentTrack.ID
	}
	m.queue.SetPlaying(id, m.snap.CurrentIndex)
	m.favourites.SetPlaying(id, -1)
	m.recent.SetPlaying(id, -1)
	m.downloads.SetPlaying(id, -1)
	m.search.results.SetPlaying(id, -1)
	m.playlists.detail.SetPlaying(id, -1)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	body := m.bodyHeight()
	m.queue.SetSize(width, body)
	m.favourites.SetSize(width, body)
	m.recent.SetSize(width, body)
	m.downloads.SetSize(width, body)
	m.search.setSize(width, body)
	m.playlists.setSize(width, body)
	if m.popup != nil {
		m.popup.SetSize(width, height)
	}
}

func (m Model) bodyHeight() int {
	return layout.ContentHeight(m.height, layout.ContentOpts{
		HeaderHeight:     ui.HeaderBarHeight,
		PlayerBarHeight:  ui.PlayerBarHeight,
		JobBarHeight:     m.jobs.Height(),
		StatusLineHeight: ui.StatusLineHeight,
	})
}

func (m *Model) openPopup(p popup.Popup) tea.Cmd {
	m.popup = p
	p.SetSize(m.width, m.height)
	return p.Init()
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusVersion++
	m.status = text
	m.statusErr = false
	return StatusTimeoutCmd(m.statusVersion)
}

func (m *Model) setError(text string) tea.Cmd {
	m.log.Warn("ui error", zap.String("message", text))
	cmd := m.setStatus(text)
	m.statusErr = true
	return cmd
}

package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/tides/internal/bridge"
	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/keymap"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui/action"
	"github.com/llehouerou/tides/internal/ui/helpbindings"
	"github.com/llehouerou/tides/internal/ui/list"
)

const seekStep = 10 * time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case StoreMessage:
		m.handleStore(msg)
		return m, WatchStoreEvents(m.sub)

	case StoreClosedMsg:
		return m, nil

	case PlaybackErrorMsg:
		cmd := m.setError(bridge.ErrorEvent(msg).Message())
		return m, tea.Batch(cmd, WatchErrors(m.errs))

	case SearchResultMsg:
		if m.search.apply(msg) && msg.Err != nil {
			m.log.Warn("search failed",
				zap.String("query", msg.Query), zap.Int("page", msg.Page), zap.Error(msg.Err))
		}
		return m, nil

	case SearchHistoryLoadedMsg:
		m.search.setHistory(msg.Terms)
		return m, nil

	case DownloadDoneMsg:
		cmd := m.handleDownloadDone(msg)
		return m, cmd

	case StatusTimeoutMsg:
		if msg.Version == m.statusVersion {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.search.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.search.spinner, cmd = m.search.spinner.Update(msg)
		return m, cmd

	case action.Msg:
		cmd := m.handleAction(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}

	if m.popup != nil {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, cmd
	}
	if m.search.input.Focused() {
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleStore(msg StoreMessage) {
	m.snap = m.store.Snapshot()
	switch msg.(type) {
	case TransportChangedMsg, ModeChangedMsg:
		return
	case TrackChangedMsg:
		m.markPlaying()
		return
	}
	m.refreshLists()
}

func (m *Model) handleDownloadDone(msg DownloadDoneMsg) tea.Cmd {
	m.jobs.Finish(msg.Track.ID)
	m.resize(m.width, m.height)
	if msg.Err != nil {
		return m.setError(errmsg.FormatWith(errmsg.OpDownload, msg.Track.Name, msg.Err))
	}
	return m.setStatus(fmt.Sprintf("Downloaded %s (%s)", msg.Track.Name, humanize.Bytes(uint64(max(msg.Result.Size, 0)))))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.popup != nil {
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return cmd
	}
	if m.search.input.Focused() {
		return m.handleSearchInput(msg)
	}

	act := m.resolver.Resolve(msg.String())
	if cmd, ok := m.handleGlobal(act); ok {
		return cmd
	}
	if cmd, ok := m.handleViewAction(act); ok {
		return cmd
	}
	m.navigate(msg)
	return nil
}

func (m *Model) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.search.blurInput()
		return nil
	case "enter":
		cmd := m.submitSearch(m.search.input.Value())
		m.search.blurInput()
		return cmd
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return cmd
}

func (m *Model) submitSearch(query string) tea.Cmd {
	seq, ok := m.search.submit(query)
	if !ok {
		return nil
	}
	if m.history != nil {
		m.history.SaveSearchHistory(m.search.pushHistory(m.search.query))
	}
	return tea.Batch(SearchCmd(m.catalog, seq, m.search.query, 1), m.search.spinner.Tick)
}

func (m *Model) handleGlobal(act keymap.Action) (tea.Cmd, bool) {
	switch act {
	case keymap.ActionQuit:
		return tea.Quit, true
	case keymap.ActionHelp:
		return m.openPopup(helpbindings.New(keymap.Contexts()...)), true
	case keymap.ActionViewQueue:
		m.setView(ViewQueue)
	case keymap.ActionViewSearch:
		m.setView(ViewSearch)
	case keymap.ActionViewFavourites:
		m.setView(ViewFavourites)
	case keymap.ActionViewPlaylists:
		m.setView(ViewPlaylists)
	case keymap.ActionViewRecent:
		m.setView(ViewRecent)
	case keymap.ActionViewDownloads:
		m.setView(ViewDownloads)
	case keymap.ActionSearch:
		m.setView(ViewSearch)
		return m.search.focusInput(), true
	case keymap.ActionPlayPause:
		m.store.TogglePlay()
	case keymap.ActionNextTrack:
		m.store.PlayNext()
	case keymap.ActionPrevTrack:
		m.store.PlayPrev()
	case keymap.ActionSeekForward:
		m.seek(seekStep)
	case keymap.ActionSeekBack:
		m.seek(-seekStep)
	case keymap.ActionCycleRepeat:
		return m.setStatus("Repeat: " + m.store.CycleRepeat().String()), true
	case keymap.ActionToggleShuffle:
		if m.store.ToggleShuffle() {
			return m.setStatus("Shuffle on"), true
		}
		return m.setStatus("Shuffle off"), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) seek(delta time.Duration) {
	snap := m.store.Snapshot()
	if snap.CurrentTrack == nil {
		return
	}
	pos := max(snap.Position+delta, 0)
	if snap.Duration > 0 {
		pos = min(pos, snap.Duration)
	}
	m.store.SeekTo(pos)
}

// navigate forwards unbound keys to the focused list.
func (m *Model) navigate(msg tea.KeyMsg) {
	switch m.active {
	case ViewQueue:
		m.queue.Update(msg)
	case ViewFavourites:
		m.favourites.Update(msg)
	case ViewRecent:
		m.recent.Update(msg)
	case ViewDownloads:
		m.downloads.Update(msg)
	case ViewSearch:
		if m.search.showingHistory() {
			m.search.history.Update(msg)
		} else {
			m.search.results.Update(msg)
		}
	case ViewPlaylists:
		if m.playlists.isOpen() {
			m.playlists.detail.Update(msg)
		} else {
			m.playlists.entries.Update(msg)
		}
	}
}

// selection is the track under the cursor and the list it belongs to.
type selection struct {
	track track.Track
	index int
	list  []track.Track
}

func (m Model) selected() (selection, bool) {
	var l *list.Model[track.Track]
	switch m.active {
	case ViewQueue:
		l = &m.queue.Model
	case ViewFavourites:
		l = &m.favourites.Model
	case ViewRecent:
		l = &m.recent.Model
	case ViewDownloads:
		l = &m.downloads.Model
	case ViewSearch:
		if m.search.showingHistory() {
			return selection{}, false
		}
		l = &m.search.results.Model
	case ViewPlaylists:
		if !m.playlists.isOpen() {
			return selection{}, false
		}
		l = &m.playlists.detail.Model
	}
	if l == nil {
		return selection{}, false
	}
	t, ok := l.Selected()
	if !ok {
		return selection{}, false
	}
	return selection{track: t, index: l.SelectedIndex(), list: l.Items()}, true
}

package app

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tides/internal/bridge"
	"github.com/llehouerou/tides/internal/catalog"
	"github.com/llehouerou/tides/internal/download"
	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/kv"
	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/playback"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui/textinput"
)

type fakePort struct {
	mu    sync.Mutex
	plays []string
	seeks []time.Duration
}

func (p *fakePort) Play(t track.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays = append(p.plays, t.ID)
}

func (p *fakePort) Toggle() {}

func (p *fakePort) Seek(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeks = append(p.seeks, pos)
}

type fakeCatalog struct {
	pages map[int]catalog.SongPage
	err   error
	calls []string
}

func (c *fakeCatalog) SearchSongs(_ context.Context, query string, page, _ int) (catalog.SongPage, error) {
	c.calls = append(c.calls, query)
	if c.err != nil {
		return catalog.SongPage{}, c.err
	}
	return c.pages[page], nil
}

func (c *fakeCatalog) PageSize() int { return 2 }

type fakeHistory struct {
	saved [][]string
}

func (h *fakeHistory) LoadSearchHistory(context.Context) ([]string, error) {
	return []string{"older"}, nil
}

func (h *fakeHistory) SaveSearchHistory(terms []string) {
	h.saved = append(h.saved, slices.Clone(terms))
}

func (h *fakeHistory) last() []string {
	if len(h.saved) == 0 {
		return nil
	}
	return h.saved[len(h.saved)-1]
}

type fakeDownloader struct {
	called []string
}

func (d *fakeDownloader) Download(_ context.Context, t track.Track) (download.Result, error) {
	d.called = append(d.called, t.ID)
	return download.Result{Track: t, Path: "/music/" + t.ID + ".mp4", Size: 2048}, nil
}

type harness struct {
	store   *playback.Store
	port    *fakePort
	catalog *fakeCatalog
	history *fakeHistory
}

var testTracks = []track.Track{
	{ID: "a", Name: "Alpha", PrimaryArtists: "First", DurationSecs: 60},
	{ID: "b", Name: "Beta", PrimaryArtists: "Second", DurationSecs: 120},
	{ID: "c", Name: "Gamma", PrimaryArtists: "Third", DurationSecs: 180},
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	lib := library.New(kv.NewMemory(), library.DefaultPrefix, nil)
	t.Cleanup(lib.Close)
	h := &harness{
		store:   playback.New(lib, nil),
		port:    &fakePort{},
		catalog: &fakeCatalog{pages: map[int]catalog.SongPage{}},
		history: &fakeHistory{},
	}
	h.store.Register(h.port)
	return h
}

func (h *harness) model(t *testing.T, downloader Downloader) Model {
	t.Helper()
	m := New(Deps{
		Store:      h.store,
		Catalog:    h.catalog,
		Downloader: downloader,
		History:    h.history,
	})
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	result, ok := next.(Model)
	if !ok {
		t.Fatal("Update should return Model")
	}
	return result
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	if !ok {
		t.Fatal("Update should return Model")
	}
	return result, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, key(k))
	}
	return m
}

// runPopupCmd executes the command a popup returned and feeds the
// resulting action back into the model.
func runPopupCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected popup command")
	}
	return update(t, m, cmd())
}

// searchResult finds the SearchResultMsg inside a search command batch.
func searchResult(t *testing.T, cmd tea.Cmd) SearchResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected search command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		batch = tea.BatchMsg{func() tea.Msg { return msg }}
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if res, ok := c().(SearchResultMsg); ok {
			return res
		}
	}
	t.Fatal("no SearchResultMsg in batch")
	return SearchResultMsg{}
}

func TestNew_LoadsListsFromStore(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks)
	h.store.ToggleFavourite(testTracks[1])

	m := h.model(t, nil)

	if m.queue.Len() != 3 {
		t.Errorf("queue len = %d, want 3", m.queue.Len())
	}
	if m.favourites.Len() != 1 || m.recent.Len() != 1 {
		t.Errorf("favourites = %d, recent = %d, want 1/1", m.favourites.Len(), m.recent.Len())
	}
	if m.Active() != ViewQueue {
		t.Errorf("Active() = %v, want queue", m.Active())
	}
}

func TestView_RendersLayout(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	out := ansi.Strip(m.View())
	for _, want := range []string{"tides", "Queue", "Nothing playing", "? help", "space play/pause · q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestView_EmptyBeforeSize(t *testing.T) {
	h := newHarness(t)
	m := New(Deps{Store: h.store, Catalog: h.catalog})
	if m.View() != "" {
		t.Error("View() should be empty before the first WindowSizeMsg")
	}
}

func TestKeys_SwitchViews(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	tests := []struct {
		key  string
		want View
	}{
		{"2", ViewSearch},
		{"3", ViewFavourites},
		{"4", ViewPlaylists},
		{"5", ViewRecent},
		{"6", ViewDownloads},
		{"1", ViewQueue},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		if m.Active() != tt.want {
			t.Errorf("after %q Active() = %v, want %v", tt.key, m.Active(), tt.want)
		}
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	_, cmd := updateCmd(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestSearch_SubmitRunsQueryAndRecordsHistory(t *testing.T) {
	h := newHarness(t)
	h.catalog.pages[1] = catalog.SongPage{Tracks: testTracks[:2], Total: 2}
	m := h.model(t, nil)

	m = press(t, m, "/")
	if m.Active() != ViewSearch || !m.search.input.Focused() {
		t.Fatal("/ should focus the search input")
	}
	m = press(t, m, "hello")
	m, cmd := updateCmd(t, m, key("enter"))

	if m.search.input.Focused() {
		t.Error("enter should blur the input")
	}
	if !m.search.loading {
		t.Error("search should be loading")
	}
	if got := h.history.last(); !slices.Equal(got, []string{"hello"}) {
		t.Errorf("saved history = %v, want [hello]", got)
	}

	m = update(t, m, searchResult(t, cmd))
	if m.search.loading {
		t.Error("loading should stop after the reply")
	}
	if m.search.results.Len() != 2 {
		t.Errorf("results = %d, want 2", m.search.results.Len())
	}
	if !slices.Equal(h.catalog.calls, []string{"hello"}) {
		t.Errorf("catalog calls = %v", h.catalog.calls)
	}
}

func TestSearch_StaleReplyIgnored(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)
	m = press(t, m, "2")

	first, _ := m.search.submit("first")
	second, _ := m.search.submit("second")

	m = update(t, m, SearchResultMsg{Seq: first, Query: "first", Page: 1,
		Result: catalog.SongPage{Tracks: testTracks, Total: 3}})
	if m.search.results.Len() != 0 || !m.search.loading {
		t.Fatal("reply to a superseded query should be dropped")
	}

	m = update(t, m, SearchResultMsg{Seq: second, Query: "second", Page: 1,
		Result: catalog.SongPage{Tracks: testTracks[:1], Total: 1}})
	if m.search.results.Len() != 1 {
		t.Errorf("results = %d, want 1", m.search.results.Len())
	}
}

func TestSearch_LoadMoreAppendsNextPage(t *testing.T) {
	h := newHarness(t)
	h.catalog.pages[1] = catalog.SongPage{Tracks: testTracks[:2], Total: 3}
	h.catalog.pages[2] = catalog.SongPage{Tracks: testTracks[1:], Total: 3}
	m := h.model(t, nil)

	m = press(t, m, "/", "x")
	m, cmd := updateCmd(t, m, key("enter"))
	m = update(t, m, searchResult(t, cmd))

	m, cmd = updateCmd(t, m, key("m"))
	res := searchResult(t, cmd)
	if res.Page != 2 {
		t.Fatalf("load more page = %d, want 2", res.Page)
	}
	m = update(t, m, res)

	got := make([]string, 0, m.search.results.Len())
	for _, tr := range m.search.results.Items() {
		got = append(got, tr.ID)
	}
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("results = %v, want [a b c] without duplicates", got)
	}

	if _, cmd = updateCmd(t, m, key("m")); cmd != nil {
		t.Error("load more should do nothing once every result is loaded")
	}
}

func TestSearch_ErrorShown(t *testing.T) {
	h := newHarness(t)
	h.catalog.err = errors.New("unexpected status: 500")
	m := h.model(t, nil)

	m = press(t, m, "/", "x")
	m, cmd := updateCmd(t, m, key("enter"))
	m = update(t, m, searchResult(t, cmd))

	want := "Failed to search songs 'x': unexpected status: 500"
	if m.search.err != want {
		t.Errorf("search error = %q, want %q", m.search.err, want)
	}
	if !strings.Contains(ansi.Strip(m.View()), want) {
		t.Error("search error should be rendered")
	}
}

func TestSearch_BackReturnsToHistory(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	m = press(t, m, "/", "x")
	m = press(t, m, "enter")
	if m.search.showingHistory() {
		t.Fatal("results should be shown after a query")
	}
	m = press(t, m, "esc")
	if !m.search.showingHistory() || m.search.loading {
		t.Error("esc should return to the history list and drop the request")
	}
}

func TestSearchHistory_SelectDeleteAndClear(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	m = update(t, m, SearchHistoryLoadedMsg{Terms: []string{"one", "two", "three"}})
	m = press(t, m, "2")

	m = press(t, m, "d")
	if got := h.history.last(); !slices.Equal(got, []string{"two", "three"}) {
		t.Errorf("after delete saved = %v, want [two three]", got)
	}

	m, cmd := updateCmd(t, m, key("enter"))
	if cmd == nil || m.search.query != "two" {
		t.Errorf("enter on a term should search it, query = %q", m.search.query)
	}
	m = press(t, m, "esc")

	m = press(t, m, "X")
	if m.search.history.Len() != 0 {
		t.Errorf("history len = %d, want 0", m.search.history.Len())
	}
	if got := h.history.last(); len(got) != 0 {
		t.Errorf("cleared history saved as %v", got)
	}
}

func TestInit_LoadsHistory(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	msg := LoadSearchHistoryCmd(h.history)()
	m = update(t, m, msg)
	if !slices.Equal(m.search.history.Items(), []string{"older"}) {
		t.Errorf("history = %v, want [older]", m.search.history.Items())
	}
	if m.Init() == nil {
		t.Error("Init() should start the watchers")
	}
}

func TestQueue_SelectPlaysAtCursor(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks)
	m := h.model(t, nil)

	press(t, m, "j", "j", "enter")

	snap := h.store.Snapshot()
	if snap.CurrentIndex != 2 || snap.CurrentTrack == nil || snap.CurrentTrack.ID != "c" {
		t.Errorf("current = %v at %d, want c at 2", snap.CurrentTrack, snap.CurrentIndex)
	}
	if got := h.port.plays; !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("port plays = %v, want [a c]", got)
	}
}

func TestQueue_DeleteAndReorder(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks)
	m := h.model(t, nil)

	m = press(t, m, "J")
	if got := ids(h.store.Queue()); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("after move down queue = %v", got)
	}
	if m.queue.SelectedIndex() != 1 {
		t.Errorf("cursor = %d, want 1 after moving down", m.queue.SelectedIndex())
	}

	m = press(t, m, "K")
	if got := ids(h.store.Queue()); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("after move up queue = %v", got)
	}

	press(t, m, "d")
	if got := ids(h.store.Queue()); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("after delete queue = %v", got)
	}
}

func TestQueue_Clear(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks)
	m := h.model(t, nil)

	m = press(t, m, "c")
	if len(h.store.Queue()) != 0 {
		t.Errorf("queue = %v, want empty", ids(h.store.Queue()))
	}
	if status, _ := m.Status(); status != "Queue cleared" {
		t.Errorf("status = %q", status)
	}
}

func TestTrackActions(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks[:1])
	m := h.model(t, nil)

	m = press(t, m, "f")
	if !h.store.IsFavourite("a") {
		t.Error("f should favourite the selected track")
	}
	if status, _ := m.Status(); status != "Added Alpha to favourites" {
		t.Errorf("status = %q", status)
	}

	m = press(t, m, "a")
	if len(h.store.Queue()) != 2 {
		t.Errorf("a should append, queue = %v", ids(h.store.Queue()))
	}
	m = press(t, m, "A")
	if got := ids(h.store.Queue()); len(got) != 3 || got[1] != "a" {
		t.Errorf("A should insert after the current track, queue = %v", got)
	}
	if status, _ := m.Status(); status != "Alpha plays next" {
		t.Errorf("status = %q", status)
	}
}

func TestPlaybackKeys(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks)
	h.store.SetDuration(time.Minute)
	m := h.model(t, nil)

	h.store.SetPosition(5 * time.Second)
	m = press(t, m, ",")
	h.store.SetPosition(55 * time.Second)
	m = press(t, m, ".")
	h.store.SetPosition(20 * time.Second)
	m = press(t, m, ".")

	want := []time.Duration{0, time.Minute, 30 * time.Second}
	if !slices.Equal(h.port.seeks, want) {
		t.Errorf("seeks = %v, want %v", h.port.seeks, want)
	}

	m = press(t, m, "R")
	if status, _ := m.Status(); status != "Repeat: "+playback.RepeatAll.String() {
		t.Errorf("status = %q", status)
	}
	m = press(t, m, "S")
	if status, _ := m.Status(); status != "Shuffle on" {
		t.Errorf("status = %q", status)
	}
}

func TestNextTrack(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks)
	m := h.model(t, nil)

	press(t, m, "n")
	if snap := h.store.Snapshot(); snap.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", snap.CurrentIndex)
	}
}

func TestDownload(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := newHarness(t)
		h.store.PlaySongFrom(testTracks[0], testTracks[:1])
		m := h.model(t, nil)

		m = press(t, m, "D")
		if status, isErr := m.Status(); status != "Downloads are disabled" || !isErr {
			t.Errorf("status = %q err=%v", status, isErr)
		}
	})

	t.Run("reports size when done", func(t *testing.T) {
		h := newHarness(t)
		h.store.PlaySongFrom(testTracks[0], testTracks[:1])
		d := &fakeDownloader{}
		m := h.model(t, d)

		m, cmd := updateCmd(t, m, key("D"))
		if cmd == nil {
			t.Fatal("D should start a download")
		}
		if status, _ := m.Status(); status != "Downloading Alpha..." {
			t.Errorf("status = %q", status)
		}
		if !strings.Contains(m.View(), "downloading") {
			t.Error("job bar not shown while downloading")
		}

		m = press(t, m, "D")
		if status, _ := m.Status(); status != "Alpha is already downloading" {
			t.Errorf("second D status = %q", status)
		}

		m = update(t, m, DownloadDoneMsg{Track: testTracks[0], Result: download.Result{Size: 2048}})
		if status, isErr := m.Status(); status != "Downloaded Alpha (2.0 kB)" || isErr {
			t.Errorf("status = %q err=%v", status, isErr)
		}
		if strings.Contains(m.View(), "downloading") {
			t.Error("job bar still shown after download finished")
		}
	})

	t.Run("failure", func(t *testing.T) {
		h := newHarness(t)
		m := h.model(t, &fakeDownloader{})

		m = update(t, m, DownloadDoneMsg{Track: testTracks[0], Err: errors.New("disk full")})
		if status, isErr := m.Status(); status != "Failed to download track 'Alpha': disk full" || !isErr {
			t.Errorf("status = %q err=%v", status, isErr)
		}
	})

	t.Run("already downloaded", func(t *testing.T) {
		h := newHarness(t)
		h.store.PlaySongFrom(testTracks[0], testTracks[:1])
		h.store.AddDownloadedTrack(testTracks[0])
		d := &fakeDownloader{}
		m := h.model(t, d)

		m = press(t, m, "D")
		if status, _ := m.Status(); status != "Alpha is already downloaded" {
			t.Errorf("status = %q", status)
		}
		if len(d.called) != 0 {
			t.Error("downloader should not be called")
		}
	})
}

func TestPlaybackError_ShowsStatusAndRearms(t *testing.T) {
	h := newHarness(t)
	errs := make(chan bridge.ErrorEvent, 1)
	m := New(Deps{Store: h.store, Catalog: h.catalog, Errors: errs})

	m, cmd := updateCmd(t, m, PlaybackErrorMsg{Op: errmsg.OpPlaybackStart, TrackID: "a", Err: errors.New("boom")})

	status, isErr := m.Status()
	if status != "Failed to start playback: boom" || !isErr {
		t.Errorf("status = %q err=%v", status, isErr)
	}
	if cmd == nil {
		t.Error("error watcher should be re-armed")
	}
}

func TestStatusTimeout_ClearsOnlyCurrentVersion(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	m.setStatus("first")
	old := m.statusVersion
	m.setStatus("second")

	m = update(t, m, StatusTimeoutMsg{Version: old})
	if status, _ := m.Status(); status != "second" {
		t.Errorf("stale timeout cleared status, got %q", status)
	}
	m = update(t, m, StatusTimeoutMsg{Version: m.statusVersion})
	if status, _ := m.Status(); status != "" {
		t.Errorf("status = %q, want cleared", status)
	}
}

func TestStoreEvents_RefreshLists(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	h.store.AddToQueue(testTracks[0])
	m, cmd := updateCmd(t, m, QueueChangedMsg{})
	if m.queue.Len() != 1 {
		t.Errorf("queue len = %d, want 1", m.queue.Len())
	}
	if cmd == nil {
		t.Error("store watcher should be re-armed")
	}

	msg := WatchStoreEvents(m.sub)()
	if _, ok := msg.(QueueChangedMsg); !ok {
		t.Errorf("watcher delivered %T, want QueueChangedMsg", msg)
	}
}

func TestWatchStoreEvents_StopsWhenStoreCloses(t *testing.T) {
	h := newHarness(t)
	sub := h.store.Subscribe()
	h.store.Close()

	if _, ok := WatchStoreEvents(sub)().(StoreClosedMsg); !ok {
		t.Error("closed subscription should yield StoreClosedMsg")
	}
}

func TestHelpPopup(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	m = press(t, m, "?")
	if m.popup == nil {
		t.Fatal("? should open help")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Quit") {
		t.Error("help should list bindings")
	}

	m, cmd := updateCmd(t, m, key("esc"))
	m = runPopupCmd(t, m, cmd)
	if m.popup != nil {
		t.Error("esc should close help")
	}
}

func TestFilter_NarrowsFavourites(t *testing.T) {
	h := newHarness(t)
	h.store.ToggleFavourite(testTracks[0])
	h.store.ToggleFavourite(testTracks[1])
	m := h.model(t, nil)
	m = press(t, m, "3")

	m, cmd := updateCmd(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.popup == nil || cmd == nil {
		t.Fatal("ctrl+f should open the filter prompt")
	}
	m = press(t, m, "bet")
	m, cmd = updateCmd(t, m, key("enter"))
	m = runPopupCmd(t, m, cmd)

	if m.favourites.Len() != 1 || m.favourites.Items()[0].ID != "b" {
		t.Errorf("filtered favourites = %v, want [b]", ids(m.favourites.Items()))
	}

	m = press(t, m, "esc")
	if m.favourites.Len() != 2 {
		t.Errorf("esc should clear the filter, got %d tracks", m.favourites.Len())
	}
}

func TestFilter_NotOnQueue(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.popup != nil {
		t.Error("queue should not be filterable")
	}
}

func TestAddToPlaylist_NewPlaylistFlow(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks[:1])
	m := h.model(t, nil)

	m = press(t, m, "P")
	if m.popup == nil {
		t.Fatal("P should open the playlist picker")
	}
	m, cmd := updateCmd(t, m, key("enter"))
	m = runPopupCmd(t, m, cmd)
	if m.popup == nil {
		t.Fatal("choosing a new playlist should prompt for a name")
	}

	m = press(t, m, "Road")
	m, cmd = updateCmd(t, m, key("enter"))
	m = runPopupCmd(t, m, cmd)

	playlists := h.store.Playlists()
	if len(playlists) != 1 || playlists[0].Name != "Road" || !playlists[0].Has("a") {
		t.Fatalf("playlists = %+v", playlists)
	}
	if status, _ := m.Status(); status != "Added Alpha to Road" {
		t.Errorf("status = %q", status)
	}
}

func TestAddToPlaylist_ExistingPlaylist(t *testing.T) {
	h := newHarness(t)
	h.store.PlaySongFrom(testTracks[0], testTracks[:1])
	id := h.store.CreatePlaylist("Mix")
	m := h.model(t, nil)

	m, cmd := updateCmd(t, press(t, m, "P"), key("enter"))
	m = runPopupCmd(t, m, cmd)
	if p, _ := h.store.Playlist(id); !p.Has("a") {
		t.Fatal("track should be added to Mix")
	}

	m, cmd = updateCmd(t, press(t, m, "P"), key("enter"))
	m = runPopupCmd(t, m, cmd)
	if status, _ := m.Status(); status != "Alpha is already in Mix" {
		t.Errorf("status = %q", status)
	}
}

func TestPlaylists_OpenPlayAndBack(t *testing.T) {
	h := newHarness(t)
	id := h.store.CreatePlaylist("Mix")
	h.store.AddTrackToPlaylist(id, testTracks[1])
	h.store.AddTrackToPlaylist(id, testTracks[2])
	m := h.model(t, nil)

	m = press(t, m, "4")
	if m.playlists.entries.Len() != 3 {
		t.Fatalf("entries = %d, want favourites, downloaded and Mix", m.playlists.entries.Len())
	}
	m = press(t, m, "G", "enter")
	if !m.playlists.isOpen() || m.playlists.detail.Len() != 2 {
		t.Fatalf("open = %v, tracks = %d", m.playlists.isOpen(), m.playlists.detail.Len())
	}

	m = press(t, m, "j", "enter")
	if snap := h.store.Snapshot(); snap.CurrentTrack == nil || snap.CurrentTrack.ID != "c" || len(snap.Queue) != 2 {
		t.Errorf("current = %v, queue = %d", snap.CurrentTrack, len(snap.Queue))
	}

	m = press(t, m, "d")
	if p, _ := h.store.Playlist(id); p.Has("c") {
		t.Error("d should remove the track from the playlist")
	}

	m = press(t, m, "esc")
	if m.playlists.isOpen() {
		t.Error("esc should return to the playlist list")
	}
}

func TestPlaylists_FavouritesEntry(t *testing.T) {
	h := newHarness(t)
	h.store.ToggleFavourite(testTracks[0])
	m := h.model(t, nil)

	m = press(t, m, "4", "enter")
	if m.playlists.openID != track.FavouritesPlaylistID || m.playlists.detail.Len() != 1 {
		t.Fatalf("open = %q, tracks = %d", m.playlists.openID, m.playlists.detail.Len())
	}
	press(t, m, "d")
	if h.store.IsFavourite("a") {
		t.Error("removing from the favourites entry should unfavourite")
	}
}

func TestPlaylists_CreateRenameDelete(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)
	m = press(t, m, "4")

	m, cmd := updateCmd(t, m, key("N"))
	if m.popup == nil || cmd == nil {
		t.Fatal("N should prompt for a name")
	}
	m = press(t, m, "Mix")
	m, cmd = updateCmd(t, m, key("enter"))
	m = runPopupCmd(t, m, cmd)
	m = update(t, m, LibraryChangedMsg{Collection: playback.CollectionPlaylists})
	if len(h.store.Playlists()) != 1 {
		t.Fatalf("playlists = %+v", h.store.Playlists())
	}

	m = press(t, m, "G", "r")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = press(t, m, "Chill")
	m, cmd = updateCmd(t, m, key("enter"))
	m = runPopupCmd(t, m, cmd)
	if got := h.store.Playlists()[0].Name; got != "Chill" {
		t.Errorf("renamed to %q, want Chill", got)
	}
	m = update(t, m, LibraryChangedMsg{Collection: playback.CollectionPlaylists})

	m, cmd = updateCmd(t, m, key("d"))
	if m.popup == nil {
		t.Fatal("d should ask for confirmation")
	}
	m, cmd = updateCmd(t, m, key("y"))
	m = runPopupCmd(t, m, cmd)
	if len(h.store.Playlists()) != 0 {
		t.Errorf("playlists = %+v, want none", h.store.Playlists())
	}
	if status, _ := m.Status(); status != "Deleted playlist Chill" {
		t.Errorf("status = %q", status)
	}
}

func TestPlaylists_EmptyNameRejected(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	m = update(t, m, textinputResult("", newPlaylistContext{}))
	if status, isErr := m.Status(); !isErr || status != "Failed to create playlist: name cannot be empty" {
		t.Errorf("status = %q err=%v", status, isErr)
	}
	if len(h.store.Playlists()) != 0 {
		t.Error("no playlist should be created")
	}
}

func TestPlaylists_ReservedEntriesCannotBeDeleted(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, nil)

	m = press(t, m, "4", "d")
	if m.popup != nil {
		t.Error("reserved entries should not offer deletion")
	}
	m = press(t, m, "r")
	if m.popup != nil {
		t.Error("reserved entries should not offer renaming")
	}
}

func textinputResult(text string, ctx any) tea.Msg {
	return textinput.ActionMsg(textinput.Result{Text: text, Context: ctx})
}

func ids(tracks []track.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

// internal/app/search.go
package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/errmsg"
	"github.com/llehouerou/tides/internal/library"
	"github.com/llehouerou/tides/internal/track"
	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/list"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
	"github.com/llehouerou/tides/internal/ui/tracklist"
)

// searchInputHeight is the prompt line plus the spacing under it.
const searchInputHeight = 2

// searchView holds the catalog search state. seq increases with every
// request so that late replies for an older query are ignored.
type searchView struct {
	input   textinput.Model
	spinner spinner.Model
	results tracklist.Model
	history list.Model[string]

	query   string
	page    int
	total   int
	seq     int
	loading bool
	err     string
}

func newSearchView(marks tracklist.Marks) searchView {
	in := textinput.New()
	in.Prompt = "Search: "
	in.Placeholder = "songs, artists, albums"
	in.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.T().S().Playing

	return searchView{
		input:   in,
		spinner: sp,
		results: tracklist.New("Results", "No results", marks),
		history: list.New[string](ui.PanelOverhead),
	}
}

func (s *searchView) setSize(width, height int) {
	s.input.Width = max(width-len(s.input.Prompt)-2, 10)
	s.results.SetSize(width, height-searchInputHeight)
	s.history.SetSize(width, height-searchInputHeight)
}

func (s *searchView) setFocused(focused bool) {
	listFocused := focused && !s.input.Focused()
	s.results.SetFocused(listFocused)
	s.history.SetFocused(listFocused)
}

func (s *searchView) showingHistory() bool {
	return s.query == ""
}

func (s *searchView) focusInput() tea.Cmd {
	s.results.SetFocused(false)
	s.history.SetFocused(false)
	return s.input.Focus()
}

func (s *searchView) blurInput() {
	s.input.Blur()
	s.setFocused(true)
}

// submit starts a new query, superseding any request in flight.
func (s *searchView) submit(query string) (seq int, ok bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, false
	}
	s.seq++
	s.query = query
	s.page = 1
	s.total = 0
	s.err = ""
	s.loading = true
	s.input.SetValue(query)
	s.results.SetItems(nil)
	s.results.SetTitle("Results for “" + query + "”")
	return s.seq, true
}

// reset returns to the history list and drops any request in flight.
func (s *searchView) reset() {
	s.seq++
	s.query = ""
	s.page = 0
	s.total = 0
	s.err = ""
	s.loading = false
	s.input.SetValue("")
	s.results.SetItems(nil)
}

// nextPage asks for the following page of the current query.
func (s *searchView) nextPage() (seq, page int, ok bool) {
	if s.query == "" || s.loading || len(s.results.Items()) >= s.total {
		return 0, 0, false
	}
	s.seq++
	s.loading = true
	return s.seq, s.page + 1, true
}

// apply merges a reply. It reports false for stale replies.
func (s *searchView) apply(msg SearchResultMsg) bool {
	if msg.Seq != s.seq {
		return false
	}
	s.loading = false
	if msg.Err != nil {
		s.err = errmsg.FormatWith(errmsg.OpSearchSongs, msg.Query, msg.Err)
		return true
	}
	s.page = msg.Page
	s.total = msg.Result.Total
	items := msg.Result.Tracks
	if msg.Page > 1 {
		items = appendUnique(s.results.Items(), items)
	}
	s.results.SetItems(items)
	return true
}

func appendUnique(have, more []track.Track) []track.Track {
	out := append([]track.Track{}, have...)
	for _, t := range more {
		if !track.Contains(out, t.ID) {
			out = append(out, t)
		}
	}
	return out
}

func (s *searchView) setHistory(terms []string) {
	s.history.SetItems(terms)
}

func (s *searchView) pushHistory(term string) []string {
	terms := library.PushSearch(s.history.Items(), term)
	s.history.SetItems(terms)
	return terms
}

func (s *searchView) removeHistory(term string) []string {
	terms := library.RemoveSearch(s.history.Items(), term)
	s.history.SetItems(terms)
	return terms
}

func (s searchView) view(width int) string {
	st := styles.T().S()
	prompt := s.input.View()
	if s.loading {
		prompt = render.Row(prompt, s.spinner.View()+" searching", width)
	}
	out := render.TruncateAndPad(prompt, width) + "\n"
	switch {
	case s.err != "":
		out += st.Error.Render(render.Truncate(s.err, width))
	case s.query != "" && s.total > len(s.results.Items()):
		out += st.Subtle.Render(render.Truncate(strconv.Itoa(len(s.results.Items()))+" of "+
			strconv.Itoa(s.total)+" · m: load more", width))
	}
	out += "\n"
	if s.showingHistory() {
		return out + s.historyView()
	}
	return out + s.results.View()
}

func (s searchView) historyView() string {
	st := styles.T().S()
	width := s.history.InnerWidth()
	rows := s.history.ListHeight(ui.PanelOverhead)

	lines := make([]string, 0, rows)
	if s.history.Len() == 0 {
		lines = append(lines, render.Pad(st.Muted.Render("Press / to search"), width))
	}
	start, end := s.history.VisibleRange()
	for i := start; i < end; i++ {
		line := render.TruncateAndPad("  "+s.history.Items()[i], width)
		if i == s.history.SelectedIndex() && s.history.IsFocused() {
			line = st.Cursor.Render(line)
		} else {
			line = st.Base.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < rows {
		lines = append(lines, render.EmptyLine(width))
	}
	header := render.Pad(st.Title.Render("Recent searches"), width)
	content := header + "\n" + render.Separator(width) + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(s.history.IsFocused()).Width(width).Render(content)
}

// Package helpbindings provides a scrollable popup listing key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/keymap"
	"github.com/llehouerou/tides/internal/ui"
	"github.com/llehouerou/tides/internal/ui/popup"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

var labels = map[string]string{
	"global":    "Global",
	"playback":  "Playback",
	"tracks":    "Track lists",
	"queue":     "Queue",
	"search":    "Search",
	"playlists": "Playlists",
}

// chrome is the title, footer and blank lines around the bindings.
const chrome = 4

// Model is the help popup.
type Model struct {
	ui.Base
	lines  []string
	offset int
}

// New builds the popup for the given contexts, in keymap order.
func New(contexts ...string) *Model {
	s := styles.T().S()
	var lines []string
	for _, ctx := range keymap.Contexts() {
		if len(contexts) > 0 && !slices.Contains(contexts, ctx) {
			continue
		}
		bindings := keymap.ByContext(ctx)
		if len(bindings) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, s.Accent.Render(labels[ctx]))
		for _, b := range bindings {
			keys := render.Pad(displayKeys(b.Keys), 18)
			lines = append(lines, "  "+s.Title.Render(keys)+s.Base.Render(b.Description))
		}
	}
	return &Model{lines: lines}
}

func displayKeys(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return strings.Join(out, "/")
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.offset = min(m.offset+1, m.maxOffset())
	case "k", "up":
		m.offset = max(m.offset-1, 0)
	}
	return m, nil
}

func (m *Model) visible() int {
	if m.Height() <= chrome {
		return len(m.lines)
	}
	return m.Height() - chrome
}

func (m *Model) maxOffset() int {
	return max(len(m.lines)-m.visible(), 0)
}

// View implements popup.Popup.
func (m *Model) View() string {
	s := styles.T().S()
	end := min(m.offset+m.visible(), len(m.lines))

	footer := "esc: close"
	if m.maxOffset() > 0 {
		footer = "j/k: scroll · " + footer
	}
	return s.Playing.Render("Keys") + "\n\n" +
		strings.Join(m.lines[m.offset:end], "\n") + "\n\n" +
		s.Subtle.Render(footer)
}

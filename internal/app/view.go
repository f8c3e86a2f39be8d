package app

import (
	"strings"

	"github.com/llehouerou/tides/internal/keymap"
	"github.com/llehouerou/tides/internal/ui/headerbar"
	"github.com/llehouerou/tides/internal/ui/jobbar"
	"github.com/llehouerou/tides/internal/ui/playerbar"
	"github.com/llehouerou/tides/internal/ui/popup"
	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

const popupMaxWidth = 60

var statusHint = []keymap.HintItem{
	{Action: keymap.ActionHelp, Label: "help"},
	{Action: keymap.ActionSearch, Label: "search"},
	{Action: keymap.ActionPlayPause, Label: "play/pause"},
	{Action: keymap.ActionQuit, Label: "quit"},
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	fav := m.snap.CurrentTrack != nil && m.store.IsFavourite(m.snap.CurrentTrack.ID)
	parts := []string{
		headerbar.Render(tabs, int(m.active), m.width),
		m.body(),
	}
	if bar := jobbar.Render(m.jobs, m.width); bar != "" {
		parts = append(parts, bar)
	}
	parts = append(parts,
		playerbar.Render(playerbar.NewState(m.snap, fav), m.width),
		m.statusLine(),
	)
	out := strings.Join(parts, "\n")
	if m.popup == nil {
		return out
	}
	overlay := popup.RenderBordered(m.popup.View(), m.width, m.height, popupMaxWidth)
	return popup.Compose(out, overlay, m.width)
}

func (m Model) body() string {
	switch m.active {
	case ViewSearch:
		return m.search.view(m.width)
	case ViewFavourites:
		return m.favourites.View()
	case ViewPlaylists:
		return m.playlists.view()
	case ViewRecent:
		return m.recent.View()
	case ViewDownloads:
		return m.downloads.View()
	default:
		return m.queue.View()
	}
}

func (m Model) statusLine() string {
	st := styles.T().S()
	if m.status != "" {
		text := render.Truncate(render.Sanitize(m.status), m.width)
		if m.statusErr {
			return st.Error.Render(text)
		}
		return st.Success.Render(text)
	}
	return st.Subtle.Render(render.Truncate(m.resolver.Hint(statusHint...), m.width))
}

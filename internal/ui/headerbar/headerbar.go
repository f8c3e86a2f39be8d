// Package headerbar renders the tab strip at the top of the screen.
package headerbar

import (
	"strings"

	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

// Tab is one entry of the strip.
type Tab struct {
	Key  string
	Name string
}

const brand = "tides"

// Render returns the strip for width cells with tabs[active] highlighted.
// The brand is dropped first when space runs out.
func Render(tabs []Tab, active, width int) string {
	if width < 20 {
		return ""
	}
	s := styles.T().S()

	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		if i == active {
			parts = append(parts, s.TabActive.Render(t.Key+" "+t.Name))
			continue
		}
		parts = append(parts, s.Muted.Render(t.Key)+s.Tab.Render(t.Name))
	}
	content := strings.Join(parts, s.Subtle.Render("│"))

	logo := styles.Gradient(brand, styles.T().Primary, styles.T().Secondary)
	if render.Width(content)+len(brand)+2 > width {
		return render.Truncate(content, width)
	}
	return render.Row(" "+logo, content, width)
}

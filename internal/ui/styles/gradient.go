package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text bold, blending from one hex colour to another
// across its grapheme clusters in HCL space. Non-hex colours render flat.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	c1, err1 := colorful.Hex(string(from))
	c2, err2 := colorful.Hex(string(to))
	if len(clusters) < 2 || err1 != nil || err2 != nil {
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	var b strings.Builder
	for i, cluster := range clusters {
		c := c1.BlendHcl(c2, float64(i)/float64(len(clusters)-1)).Clamped()
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Bold(true).
			Render(cluster))
	}
	return b.String()
}

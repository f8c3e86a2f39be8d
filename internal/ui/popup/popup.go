// Package popup centres modal content over the main view.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tides/internal/ui/styles"
)

// RenderBordered wraps content in a rounded border, at most maxWidth cells
// wide (0 for no limit), and centres it on a screenW by screenH canvas.
func RenderBordered(content string, screenW, screenH, maxWidth int) string {
	width := maxLineWidth(content) + 6
	if maxWidth > 0 {
		width = min(width, maxWidth)
	}
	width = min(width, screenW-4)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(1, 2).
		Width(max(width-2, 0)).
		Render(content)
	return Center(box, screenW, screenH)
}

// Center places pre-rendered content in the middle of the canvas.
func Center(box string, screenW, screenH int) string {
	lines := strings.Split(box, "\n")
	boxWidth := maxLineWidth(box)
	padTop := max((screenH-len(lines))/2, 0)
	padLeft := max((screenW-boxWidth)/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", padLeft))
		b.WriteString(line)
	}
	return b.String()
}

// Compose draws the visible part of each overlay line over base. Blank
// overlay lines keep the base line.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, line := range overlayLines {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimRight(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		startCol := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
		endCol := ansi.StringWidth(trimmed)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		prefix := ansi.Cut(baseLine, 0, startCol)
		if w := ansi.StringWidth(prefix); w < startCol {
			prefix += strings.Repeat(" ", startCol-w)
		}
		out := prefix + ansi.Cut(line, startCol, endCol)
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			if w := ansi.StringWidth(suffix); w < width-endCol {
				suffix = strings.Repeat(" ", width-endCol-w) + suffix
			}
			out += suffix
		}
		baseLines[i] = out
	}
	return strings.Join(baseLines, "\n")
}

func maxLineWidth(s string) int {
	widest := 0
	for line := range strings.SplitSeq(s, "\n") {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}

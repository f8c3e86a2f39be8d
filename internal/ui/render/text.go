// Package render provides text rendering helpers for TUI components.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize drops control characters (except tab) and invalid UTF-8, and
// turns non-breaking spaces into plain spaces. Catalog metadata is not
// trusted to be terminal safe.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsSanitize(s string) bool {
	for i := range len(s) {
		c := s[i]
		if c < 0x20 && c != '\t' {
			return true
		}
		if c >= 0x80 && c <= 0x9f {
			return true
		}
		if c == 0xc2 && i+1 < len(s) && s[i+1] == 0xa0 {
			return true
		}
	}
	return !utf8.ValidString(s)
}

// Width returns the display width of s, ignoring escape sequences.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens s to maxWidth cells, ending with "..." when cut.
func Truncate(s string, maxWidth int) string {
	return ansi.Truncate(Sanitize(s), maxWidth, "...")
}

// TruncateEllipsis is Truncate with a single-cell ellipsis.
func TruncateEllipsis(s string, maxWidth int) string {
	return ansi.Truncate(Sanitize(s), maxWidth, "…")
}

// Pad fills s with spaces up to width cells.
func Pad(s string, width int) string {
	if gap := width - Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// TruncateAndPad returns s at exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// TruncateAndPadEllipsis is TruncateAndPad with a single-cell ellipsis.
func TruncateAndPadEllipsis(s string, width int) string {
	return Pad(TruncateEllipsis(s, width), width)
}

// Row places left and right at the edges of a width-cell line, keeping at
// least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-Width(left)-Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator returns a horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// EmptyLine returns width spaces.
func EmptyLine(width int) string {
	return strings.Repeat(" ", max(width, 0))
}

package list

// cursor tracks the selected row and the first visible row. Length and
// viewport height are passed in because both change under it.
type cursor struct {
	pos    int
	offset int
	margin int
}

func (c *cursor) move(delta, n, height int) {
	if n == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, n-1)
	c.ensureVisible(n, height)
}

func (c *cursor) jump(pos, n, height int) {
	if n == 0 {
		return
	}
	c.pos = clamp(pos, n-1)
	c.ensureVisible(n, height)
}

func (c *cursor) ensureVisible(n, height int) {
	if height <= 0 || n == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(n-height, 0))
}

func (c *cursor) clampTo(n int) {
	if n == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = clamp(c.pos, n-1)
	c.offset = clamp(c.offset, n-1)
}

// handleKey applies vim-style and arrow navigation. It reports whether the
// key was a movement key.
func (c *cursor) handleKey(key string, n, height int) bool {
	switch key {
	case "j", "down":
		c.move(1, n, height)
	case "k", "up":
		c.move(-1, n, height)
	case "g", "home":
		c.jump(0, n, height)
	case "G", "end":
		c.jump(n-1, n, height)
	case "ctrl+d", "pgdown":
		c.move(max(height/2, 1), n, height)
	case "ctrl+u", "pgup":
		c.move(-max(height/2, 1), n, height)
	default:
		return false
	}
	return true
}

func clamp(v, maxVal int) int {
	return min(max(v, 0), max(maxVal, 0))
}

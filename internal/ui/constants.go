// Package ui provides shared layout constants and the embeddable Base.
package ui

const (
	// ScrollMargin is the number of rows kept visible around the cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space used by a panel border.
	BorderHeight = 2

	// BorderWidth is the horizontal space used by a panel border.
	BorderWidth = 2

	// HeaderHeight is a panel title plus its separator.
	HeaderHeight = 2

	// PanelOverhead is what a panel spends before its first list row.
	PanelOverhead = BorderHeight + HeaderHeight

	// HeaderBarHeight is the tab strip at the top of the screen.
	HeaderBarHeight = 1

	// PlayerBarHeight is the bordered now-playing bar.
	PlayerBarHeight = 4

	// StatusLineHeight is the error and help line at the bottom.
	StatusLineHeight = 1

	// MinProgressBarWidth is the narrowest usable progress bar.
	MinProgressBarWidth = 5
)

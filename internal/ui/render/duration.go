package render

import (
	"fmt"
	"time"
)

// Seconds formats a second count as M:SS. Negative input renders "0:00".
func Seconds(secs int) string {
	if secs < 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Duration formats d as M:SS, or H:MM:SS from one hour up.
func Duration(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		return "0:00"
	}
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Total formats the length of a track list: "HH:MM hrs" from one hour up,
// otherwise "N min".
func Total(d time.Duration) string {
	mins := max(int(d/time.Minute), 0)
	if h := mins / 60; h > 0 {
		return fmt.Sprintf("%02d:%02d hrs", h, mins%60)
	}
	return fmt.Sprintf("%d min", mins)
}

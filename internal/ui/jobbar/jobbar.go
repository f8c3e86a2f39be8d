// Package jobbar displays in-flight background jobs above the player bar.
package jobbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tides/internal/ui/render"
	"github.com/llehouerou/tides/internal/ui/styles"
)

// BorderHeight is the height of borders around the job bar.
const BorderHeight = 2

const (
	indicator   = "◦"
	statusText  = "downloading"
	minLabelLen = 10
)

// Height returns the total height for the given number of active jobs.
func Height(activeCount int) int {
	if activeCount == 0 {
		return 0
	}
	return activeCount + BorderHeight
}

// Job is a single background job, keyed by ID.
type Job struct {
	ID    string
	Label string
	Done  bool
}

// State holds the jobs to display.
type State struct {
	Jobs []Job
}

// Add starts tracking a job. A job already running with the same ID is
// left alone and Add reports false.
func (s *State) Add(j Job) bool {
	for i := range s.Jobs {
		if s.Jobs[i].ID == j.ID {
			if !s.Jobs[i].Done {
				return false
			}
			s.Jobs[i] = j
			return true
		}
	}
	s.Jobs = append(s.Jobs, j)
	return true
}

// Finish drops the job with id.
func (s *State) Finish(id string) {
	kept := s.Jobs[:0]
	for _, j := range s.Jobs {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	s.Jobs = kept
}

// Running reports whether a job with id is in flight.
func (s State) Running(id string) bool {
	for _, j := range s.Jobs {
		if j.ID == id && !j.Done {
			return true
		}
	}
	return false
}

// ActiveCount returns the number of non-completed jobs.
func (s State) ActiveCount() int {
	count := 0
	for _, j := range s.Jobs {
		if !j.Done {
			count++
		}
	}
	return count
}

// Height is the rendered height of s.
func (s State) Height() int {
	return Height(s.ActiveCount())
}

func labelStyle() lipgloss.Style {
	return styles.T().S().Title
}

func statusStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func indicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

// Render renders the job bar with the given width.
// Returns empty string if there are no active jobs.
func Render(state State, width int) string {
	if state.ActiveCount() == 0 {
		return ""
	}

	innerWidth := width - 2
	var lines []string
	for _, j := range state.Jobs {
		if !j.Done {
			lines = append(lines, renderJobLine(j, innerWidth))
		}
	}

	return styles.PanelStyle(false).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// renderJobLine renders: "◦ Label                    downloading"
func renderJobLine(job Job, width int) string {
	// indicator + space, label, two spaces, status
	labelWidth := max(width-2-2-lipgloss.Width(statusText), minLabelLen)

	var b strings.Builder
	b.WriteString(indicatorStyle().Render(indicator))
	b.WriteString(" ")
	b.WriteString(labelStyle().Render(render.TruncateAndPad(job.Label, labelWidth)))
	b.WriteString("  ")
	b.WriteString(statusStyle().Render(statusText))
	return b.String()
}

package library

import "strings"

// MaxSearchHistory caps the stored search terms.
const MaxSearchHistory = 20

// PushSearch moves term to the front of history, trimming whitespace and
// dropping duplicates. Blank terms leave history unchanged.
func PushSearch(history []string, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return history
	}
	next := make([]string, 0, len(history)+1)
	next = append(next, term)
	for _, h := range history {
		if h != term {
			next = append(next, h)
		}
	}
	if len(next) > MaxSearchHistory {
		next = next[:MaxSearchHistory]
	}
	return next
}

// RemoveSearch returns history without term.
func RemoveSearch(history []string, term string) []string {
	next := make([]string, 0, len(history))
	for _, h := range history {
		if h != term {
			next = append(next, h)
		}
	}
	return next
}

package library

import (
	"fmt"
	"reflect"
	"testing"
)

func TestPushSearch(t *testing.T) {
	tests := []struct {
		name    string
		history []string
		term    string
		want    []string
	}{
		{"into empty", nil, "lofi", []string{"lofi"}},
		{"prepends", []string{"a"}, "b", []string{"b", "a"}},
		{"moves duplicate to front", []string{"a", "b", "c"}, "c", []string{"c", "a", "b"}},
		{"trims", []string{"a"}, "  b  ", []string{"b", "a"}},
		{"blank ignored", []string{"a"}, "   ", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PushSearch(tt.history, tt.term)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PushSearch(%v, %q) = %v, want %v", tt.history, tt.term, got, tt.want)
			}
		})
	}
}

func TestPushSearch_Caps(t *testing.T) {
	var history []string
	for i := range MaxSearchHistory + 3 {
		history = PushSearch(history, fmt.Sprintf("q%d", i))
	}
	if len(history) != MaxSearchHistory {
		t.Fatalf("len = %d, want %d", len(history), MaxSearchHistory)
	}
	if history[0] != fmt.Sprintf("q%d", MaxSearchHistory+2) {
		t.Errorf("history[0] = %q, want newest term", history[0])
	}
}

func TestRemoveSearch(t *testing.T) {
	got := RemoveSearch([]string{"a", "b", "c"}, "b")
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("RemoveSearch = %v, want [a c]", got)
	}
}

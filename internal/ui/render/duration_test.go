package render

import (
	"testing"
	"time"
)

func TestSeconds(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{215, "3:35"},
		{3725, "62:05"},
		{-4, "0:00"},
	}
	for _, tt := range tests {
		if got := Seconds(tt.secs); got != tt.want {
			t.Errorf("Seconds(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{75 * time.Second, "1:15"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 2*time.Minute + 5*time.Second, "1:02:05"},
		{1500 * time.Millisecond, "0:01"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := Duration(tt.d); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 min"},
		{42*time.Minute + 50*time.Second, "42 min"},
		{time.Hour + 5*time.Minute, "01:05 hrs"},
		{12*time.Hour + 30*time.Minute, "12:30 hrs"},
	}
	for _, tt := range tests {
		if got := Total(tt.d); got != tt.want {
			t.Errorf("Total(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

package icons

import "testing"

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(string(StyleUnicode)) })

	tests := []struct {
		style string
		want  Icons
	}{
		{"nerd", nerdIcons},
		{"unicode", unicodeIcons},
		{"none", noneIcons},
		{"NERD", noneIcons},
		{"", noneIcons},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			if Current() != tt.want {
				t.Errorf("Init(%q) selected %+v", tt.style, Current())
			}
		})
	}
}

func TestStatus(t *testing.T) {
	t.Cleanup(func() { Init(string(StyleUnicode)) })
	Init("none")

	if got := Status(true); got != ">" {
		t.Errorf("Status(true) = %q", got)
	}
	if got := Status(false); got != "||" {
		t.Errorf("Status(false) = %q", got)
	}
}

func TestFormatPlaylist(t *testing.T) {
	t.Cleanup(func() { Init(string(StyleUnicode)) })

	tests := []struct {
		style string
		want  string
	}{
		{"none", "Road trip"},
		{"unicode", "♫ Road trip"},
	}
	for _, tt := range tests {
		Init(tt.style)
		if got := FormatPlaylist("Road trip"); got != tt.want {
			t.Errorf("%s: FormatPlaylist() = %q, want %q", tt.style, got, tt.want)
		}
	}
}

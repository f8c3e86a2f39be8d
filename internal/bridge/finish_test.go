package bridge

import "testing"

func TestFinishDetector(t *testing.T) {
	type sample struct {
		playing, finished bool
		advance           bool
		state             finishState
	}
	tests := []struct {
		name    string
		samples []sample
	}{
		{
			name: "one advance per finish",
			samples: []sample{
				{true, false, false, finishIdle},
				{false, true, true, finishFinishing},
				{false, true, false, finishAdvanced},
				{false, true, false, finishAdvanced},
			},
		},
		{
			name: "playing re-arms",
			samples: []sample{
				{false, true, true, finishFinishing},
				{true, false, false, finishIdle},
				{false, true, true, finishFinishing},
			},
		},
		{
			name: "pause is not a finish",
			samples: []sample{
				{true, false, false, finishIdle},
				{false, false, false, finishIdle},
				{false, false, false, finishIdle},
			},
		},
		{
			name: "paused sample between finishes does not re-arm",
			samples: []sample{
				{false, true, true, finishFinishing},
				{false, false, false, finishFinishing},
				{false, true, false, finishAdvanced},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d finishDetector
			for i, s := range tt.samples {
				if got := d.observe(s.playing, s.finished); got != s.advance {
					t.Errorf("sample %d: advance = %v, want %v", i, got, s.advance)
				}
				if d.state != s.state {
					t.Errorf("sample %d: state = %v, want %v", i, d.state, s.state)
				}
			}
		})
	}
}

package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/ui/action"
	"github.com/llehouerou/tides/internal/ui/testutil"
)

func result(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	msg, ok := testutil.ExecuteCmd(h.LastCommand()).(action.Msg)
	if !ok {
		t.Fatal("expected action.Msg")
	}
	res, ok := msg.Action.(Result)
	if !ok {
		t.Fatalf("action = %T, want Result", msg.Action)
	}
	return res
}

func TestYesNo(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEscape}, false},
		{"n cancels", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testutil.NewPopupHarness(New("Delete playlist", "Delete \"Chill\"?", "pl-1"))
			h.SendMsg(tt.key)

			res := result(t, h)
			if res.Confirmed != tt.want || res.Context != "pl-1" {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestYesNo_OtherKeysIgnored(t *testing.T) {
	h := testutil.NewPopupHarness(New("Delete", "Sure?", nil))
	if cmd := h.SendKey("x"); cmd != nil {
		t.Error("unexpected command for unrelated key")
	}
}

func TestOptions_SelectAndCancel(t *testing.T) {
	h := testutil.NewPopupHarness(NewOptions("Add to playlist", "Kesariya", []string{"Chill", "Road trip"}, "k1"))

	if !h.ViewContains("> Chill") || !h.ViewContains("Cancel") {
		t.Fatal("picker should open on the first option with Cancel listed")
	}
	h.SendKey("j")
	h.SendEnter()
	if res := result(t, h); !res.Confirmed || res.Selected != 1 || res.Context != "k1" {
		t.Errorf("result = %+v", res)
	}

	h.SendKey("j")
	h.SendKey("j")
	h.SendEnter()
	if res := result(t, h); res.Confirmed || res.Selected != 2 {
		t.Errorf("choosing Cancel = %+v", res)
	}

	h.SendEscape()
	if res := result(t, h); res.Confirmed || res.Selected != 2 {
		t.Errorf("esc = %+v", res)
	}
}

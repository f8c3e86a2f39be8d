package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"f2", ActionViewSearch},
		{"/", ActionSearch},
		{"enter", ActionSelect},
		{"J", ActionMoveItemDown},
		{"z", ""},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionDelete, []string{"d", "delete"}, "Remove", "tracks"},
		{ActionDelete, []string{"d", "x"}, "Remove", "queue"},
	})

	got := r.KeysFor(ActionDelete)
	if !slices.Equal(got, []string{"d", "delete", "x"}) {
		t.Errorf("KeysFor() = %v, want deduplicated keys", got)
	}
	if r.KeysFor(ActionQuit) != nil {
		t.Error("unbound action should have no keys")
	}
}

func TestBindings_NoDuplicateKeysWithinContext(t *testing.T) {
	for _, ctx := range Contexts() {
		seen := map[string]Action{}
		for _, b := range ByContext(ctx) {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					t.Errorf("%s: key %q bound to %q and %q", ctx, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
}

func TestBindings_GlobalKeysUnique(t *testing.T) {
	owner := map[string]string{}
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if ctx, ok := owner[k]; ok && (ctx == "global" || b.Context == "global") {
				t.Errorf("key %q shared between %s and %s", k, ctx, b.Context)
			}
			owner[k] = b.Context
		}
	}
}

func TestByContext_CoversAllBindings(t *testing.T) {
	n := 0
	for _, ctx := range Contexts() {
		n += len(ByContext(ctx))
	}
	if n != len(Bindings) {
		t.Errorf("contexts cover %d bindings, want %d", n, len(Bindings))
	}
}

func TestResolver_Hint(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionPlayPause, []string{" ", "p"}, "Play/pause", "playback"},
		{ActionQuit, []string{"q"}, "Quit", "global"},
	})

	got := r.Hint(
		HintItem{ActionPlayPause, "play/pause"},
		HintItem{ActionHelp, "help"},
		HintItem{ActionQuit, "quit"},
	)
	if want := "space play/pause · q quit"; got != want {
		t.Errorf("Hint() = %q, want %q", got, want)
	}
}

func TestResolver_LaterBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionDelete, []string{"x"}, "Remove", "tracks"},
		{ActionClear, []string{"x"}, "Clear", "queue"},
	})
	if got := r.Resolve("x"); got != ActionClear {
		t.Errorf("Resolve(x) = %q, want %q", got, ActionClear)
	}
}

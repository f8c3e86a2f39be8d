package keymap

import (
	"slices"
	"strings"
)

// Resolver maps key strings to actions and back.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings. When a key appears in several bindings the
// last one wins; an action's keys keep first-seen order without repeats.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action, len(bindings)),
		keys:    make(map[Action][]string, len(bindings)),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.actions[k] = b.Action
			if !slices.Contains(r.keys[b.Action], k) {
				r.keys[b.Action] = append(r.keys[b.Action], k)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "".
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to action, nil when unbound.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// Hint renders "key label" pairs for the status line using each action's
// first key. Unbound actions are skipped.
func (r *Resolver) Hint(pairs ...HintItem) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys := r.keys[p.Action]
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, DisplayKey(keys[0])+" "+p.Label)
	}
	return strings.Join(parts, " · ")
}

// HintItem is one entry of a Resolver.Hint.
type HintItem struct {
	Action Action
	Label  string
}

// DisplayKey names keys that do not print as themselves.
func DisplayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

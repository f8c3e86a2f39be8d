// Package list provides a generic scrollable list component.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tides/internal/ui"
)

// Action reports what a key did to the list.
type Action int

const (
	ActionNone   Action = iota
	ActionMoved         // cursor moved
	ActionEnter         // enter pressed on an item
	ActionDelete        // d or delete pressed on an item
)

// Result is returned from Update to tell the parent what happened.
type Result struct {
	Action Action
	Index  int // item the action applies to, -1 if none
}

// Model is a scrollable list. The parent renders rows using VisibleRange.
type Model[T any] struct {
	ui.Base
	items    []T
	cursor   cursor
	overhead int
}

// New creates a list whose panel spends overhead rows before the first item.
func New[T any](overhead int) Model[T] {
	return Model[T]{
		cursor:   cursor{margin: ui.ScrollMargin},
		overhead: overhead,
	}
}

// SetItems replaces the items and clamps the cursor.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.clampTo(len(items))
	m.cursor.ensureVisible(len(items), m.rows())
}

// Items returns the current items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if m.cursor.pos >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.pos], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.pos
}

// Select moves the cursor to index.
func (m *Model[T]) Select(index int) {
	m.cursor.jump(index, len(m.items), m.rows())
}

// VisibleRange returns the [start, end) item indices that fit the panel.
func (m Model[T]) VisibleRange() (start, end int) {
	rows := m.rows()
	if len(m.items) == 0 || rows <= 0 {
		return 0, 0
	}
	return m.cursor.offset, min(m.cursor.offset+rows, len(m.items))
}

func (m Model[T]) rows() int {
	return m.ListHeight(m.overhead)
}

// Update handles navigation keys and reports enter and delete.
func (m *Model[T]) Update(msg tea.Msg) Result {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return Result{Index: -1}
	}
	if m.cursor.handleKey(key.String(), len(m.items), m.rows()) {
		return Result{Action: ActionMoved, Index: m.cursor.pos}
	}
	if len(m.items) == 0 {
		return Result{Index: -1}
	}
	switch key.String() {
	case "enter":
		return Result{Action: ActionEnter, Index: m.cursor.pos}
	case "d", "delete":
		return Result{Action: ActionDelete, Index: m.cursor.pos}
	}
	return Result{Index: -1}
}

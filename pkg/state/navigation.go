package state

import "gitlab.com/tinyland/lab/feedtui/pkg/sources"

// Focus returns the focused widget id, or "" when there are no widgets.
func (s *Store) Focus() string { return s.focus }

// FocusedWidget returns a copy of the focused widget.
func (s *Store) FocusedWidget() (Widget, bool) { return s.Widget(s.focus) }

// SetFocus moves focus to id. Unknown ids leave focus unchanged.
func (s *Store) SetFocus(id string) {
	if _, ok := s.widgets[id]; ok {
		s.focus = id
	}
}

// FocusNext moves focus to the next widget in display order, wrapping
// around to the first widget after the last.
func (s *Store) FocusNext() {
	if len(s.order) == 0 {
		return
	}
	idx := s.focusedIndex()
	s.focus = s.order[(idx+1)%len(s.order)]
}

// FocusPrev moves focus to the previous widget, wrapping around to the last
// widget before the first.
func (s *Store) FocusPrev() {
	if len(s.order) == 0 {
		return
	}
	idx := s.focusedIndex()
	s.focus = s.order[(idx-1+len(s.order))%len(s.order)]
}

// focusedIndex returns the index of the focused widget in the order list.
// Returns 0 if not found.
func (s *Store) focusedIndex() int {
	for i, id := range s.order {
		if id == s.focus {
			return i
		}
	}
	return 0
}

// ToggleExpand toggles the focused widget between normal and fullscreen.
// If a different widget is already expanded, expansion moves to the
// focused one.
func (s *Store) ToggleExpand() {
	if s.focus == "" {
		return
	}
	if s.expanded == s.focus {
		s.expanded = ""
	} else {
		s.expanded = s.focus
	}
}

// CollapseExpanded returns to the grid view.
func (s *Store) CollapseExpanded() { s.expanded = "" }

// Expanded returns the fullscreen widget id, or "".
func (s *Store) Expanded() string { return s.expanded }

// MoveSelection moves the focused widget's row selection by delta,
// clamped to its payload.
func (s *Store) MoveSelection(delta int) {
	w, ok := s.widgets[s.focus]
	if !ok || w.Payload == nil {
		return
	}
	w.Selected = clampSelection(w.Selected+delta, w.Payload)
}

// SelectedLink returns the URL of the focused widget's selected row, or "".
func (s *Store) SelectedLink() string {
	w, ok := s.widgets[s.focus]
	if !ok || w.Payload == nil {
		return ""
	}
	return w.Payload.Link(w.Selected)
}

// Reader is the open article reader. Item is a snapshot taken when the
// reader opened, so later fetches of the widget do not change it.
type Reader struct {
	WidgetID string
	Row      int
	Item     sources.Detail
	Scroll   int
}

// OpenReader opens the reader on the focused widget's selected row. It
// returns false, leaving the reader closed, when that row has no detail.
func (s *Store) OpenReader() bool {
	w, ok := s.widgets[s.focus]
	if !ok || w.Payload == nil {
		return false
	}
	d, ok := w.Payload.Detail(w.Selected)
	if !ok {
		return false
	}
	s.reader = &Reader{WidgetID: w.ID, Row: w.Selected, Item: d}
	return true
}

// CloseReader returns to the grid.
func (s *Store) CloseReader() { s.reader = nil }

// Reader returns the open reader, false when closed.
func (s *Store) Reader() (Reader, bool) {
	if s.reader == nil {
		return Reader{}, false
	}
	return *s.reader, true
}

// ScrollReader moves the reader by delta lines within [0, limit].
func (s *Store) ScrollReader(delta, limit int) {
	if s.reader == nil {
		return
	}
	s.reader.Scroll = min(max(s.reader.Scroll+delta, 0), max(limit, 0))
}

// ToggleCompanionMenu opens or closes the companion menu. Opening resets
// the cursor.
func (s *Store) ToggleCompanionMenu() {
	s.menuOpen = !s.menuOpen
	s.menuCursor = 0
}

// MenuOpen reports whether the companion menu is visible.
func (s *Store) MenuOpen() bool { return s.menuOpen }

// SelectCompanionTab switches the companion menu tab. Out-of-range tabs
// are ignored.
func (s *Store) SelectCompanionTab(t Tab) {
	if t < 0 || t >= tabCount || t == s.tab {
		return
	}
	s.tab = t
	s.menuCursor = 0
}

// NextCompanionTab cycles to the next tab.
func (s *Store) NextCompanionTab() { s.SelectCompanionTab((s.tab + 1) % tabCount) }

// PrevCompanionTab cycles to the previous tab.
func (s *Store) PrevCompanionTab() { s.SelectCompanionTab((s.tab - 1 + tabCount) % tabCount) }

// CompanionTab returns the active tab.
func (s *Store) CompanionTab() Tab { return s.tab }

// MoveMenuCursor moves the menu cursor by delta within [0, size).
func (s *Store) MoveMenuCursor(delta, size int) {
	if size <= 0 {
		s.menuCursor = 0
		return
	}
	s.menuCursor = min(max(s.menuCursor+delta, 0), size-1)
}

// MenuCursor returns the highlighted row in the active tab.
func (s *Store) MenuCursor() int { return s.menuCursor }

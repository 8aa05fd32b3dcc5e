package state

import (
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
)

// Tab is a page of the companion menu.
type Tab int

const (
	TabStats Tab = iota
	TabSkills
	TabOutfits
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabStats:
		return "Stats"
	case TabSkills:
		return "Skills"
	case TabOutfits:
		return "Outfits"
	default:
		return "?"
	}
}

// Tabs lists the companion menu tabs in display order.
var Tabs = []Tab{TabStats, TabSkills, TabOutfits}

// Store is the single source of truth for widget results and UI state.
// All operations are total: unknown ids and out-of-range values are
// ignored rather than reported.
type Store struct {
	order   []string
	widgets map[string]*Widget

	focus    string
	expanded string
	reader   *Reader

	menuOpen   bool
	tab        Tab
	menuCursor int

	refreshAll  bool
	nextAttempt uint64
}

// New builds a store from widgets in display order. The first widget is
// focused. Duplicate ids keep the first occurrence.
func New(widgets []Widget) *Store {
	s := &Store{widgets: make(map[string]*Widget, len(widgets))}
	for _, w := range widgets {
		if _, dup := s.widgets[w.ID]; dup {
			continue
		}
		w.Status = Idle
		w.attempt = 0
		s.widgets[w.ID] = &w
		s.order = append(s.order, w.ID)
	}
	if len(s.order) > 0 {
		s.focus = s.order[0]
	}
	return s
}

// Len returns the number of widgets.
func (s *Store) Len() int { return len(s.order) }

// IDs returns widget ids in display order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Widget returns a copy of the widget with the given id.
func (s *Store) Widget(id string) (Widget, bool) {
	w, ok := s.widgets[id]
	if !ok {
		return Widget{}, false
	}
	return *w, true
}

// Widgets returns copies of every widget in display order.
func (s *Store) Widgets() []Widget {
	out := make([]Widget, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.widgets[id])
	}
	return out
}

// BeginFetch moves a widget to Fetching and returns the attempt token the
// result must carry. It returns false, changing nothing, when the id is
// unknown or a fetch is already in flight.
func (s *Store) BeginFetch(id string, now time.Time) (uint64, bool) {
	w, ok := s.widgets[id]
	if !ok || w.Status == Fetching {
		return 0, false
	}
	s.nextAttempt++
	w.attempt = s.nextAttempt
	w.Status = Fetching
	w.LastStarted = now
	return w.attempt, true
}

// ApplyFetchResult records a finished fetch. Results for unknown widgets,
// for widgets not fetching, or for an attempt other than the one in
// flight (late results after a timeout or cancel) are dropped. It reports
// whether the result was applied.
func (s *Store) ApplyFetchResult(id string, r FetchResult) bool {
	w, ok := s.widgets[id]
	if !ok || w.Status != Fetching || r.Attempt == 0 || r.Attempt != w.attempt {
		return false
	}

	w.attempt = 0
	w.LastCompleted = r.At
	if r.Err != nil {
		w.Status = Error
		w.Err = sources.AsFetchError(r.Err)
		w.Payload = nil
	} else {
		w.Status = Ready
		w.Err = nil
		w.Payload = r.Payload
	}
	w.Selected = clampSelection(w.Selected, w.Payload)
	s.settleRefreshAll()
	return true
}

// ExpireOverdue fails every fetch that has been in flight for at least
// timeout with a timeout error, and returns their ids. Any result that
// later arrives for those attempts is discarded.
func (s *Store) ExpireOverdue(now time.Time, timeout time.Duration) []string {
	var expired []string
	for _, id := range s.order {
		w := s.widgets[id]
		if w.Status != Fetching || now.Sub(w.LastStarted) < timeout {
			continue
		}
		s.fail(w, now, sources.Errorf(sources.CodeTimeout, "no response after %s", timeout))
		expired = append(expired, id)
	}
	if len(expired) > 0 {
		s.settleRefreshAll()
	}
	return expired
}

// CancelAll fails every in-flight fetch as canceled. Used on quit so that
// nothing arriving afterwards is applied.
func (s *Store) CancelAll(now time.Time) []string {
	var canceled []string
	for _, id := range s.order {
		w := s.widgets[id]
		if w.Status != Fetching {
			continue
		}
		s.fail(w, now, sources.Errorf(sources.CodeCanceled, "canceled"))
		canceled = append(canceled, id)
	}
	s.refreshAll = false
	return canceled
}

func (s *Store) fail(w *Widget, now time.Time, err *sources.FetchError) {
	w.attempt = 0
	w.Status = Error
	w.Err = err
	w.Payload = nil
	w.LastCompleted = now
	w.Selected = 0
}

// MarkRefreshAll records that a refresh of every widget is underway. The
// flag clears itself once no widget is fetching.
func (s *Store) MarkRefreshAll() {
	s.refreshAll = true
	s.settleRefreshAll()
}

// RefreshAllInFlight reports whether a refresh-all is still running.
func (s *Store) RefreshAllInFlight() bool { return s.refreshAll }

// Fetching returns the number of widgets with a fetch in flight.
func (s *Store) Fetching() int {
	n := 0
	for _, w := range s.widgets {
		if w.Status == Fetching {
			n++
		}
	}
	return n
}

func (s *Store) settleRefreshAll() {
	if s.refreshAll && s.Fetching() == 0 {
		s.refreshAll = false
	}
}

func clampSelection(sel int, p sources.Payload) int {
	if p == nil || p.Len() == 0 || sel < 0 {
		return 0
	}
	if sel >= p.Len() {
		return p.Len() - 1
	}
	return sel
}

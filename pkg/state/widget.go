// Package state holds the application state store: every widget's fetch
// lifecycle and latest result, plus UI focus and companion menu state.
//
// The store is owned by the event loop and is not safe for concurrent use.
// Fetches run elsewhere and hand results back through ApplyFetchResult;
// nothing in this package performs I/O.
package state

import (
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
)

// Status is a widget's fetch lifecycle state.
//
//	Idle → Fetching → (Ready | Error) → Fetching → ...
type Status int

const (
	Idle Status = iota
	Fetching
	Ready
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Widget is one configured dashboard pane and its fetch state.
type Widget struct {
	ID       string
	Kind     sources.Kind
	Title    string
	Row, Col int
	Interval time.Duration

	// Fetchable is false for panes rendered from local state (the
	// companion); the scheduler never starts a fetch for them.
	Fetchable bool

	Status        Status
	Payload       sources.Payload
	Err           *sources.FetchError
	LastStarted   time.Time
	LastCompleted time.Time

	// Selected is the highlighted row within the payload.
	Selected int

	// attempt is the token of the in-flight fetch; zero when none.
	attempt uint64
}

// InFlight reports whether a fetch is outstanding.
func (w Widget) InFlight() bool { return w.Status == Fetching }

// Attempt returns the token of the in-flight fetch, or zero.
func (w Widget) Attempt() uint64 { return w.attempt }

// FetchResult is what a finished fetch hands back to the store. Exactly one
// of Payload and Err is set.
type FetchResult struct {
	Attempt uint64
	Payload sources.Payload
	Err     error
	At      time.Time
}

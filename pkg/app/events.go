// Package app is the dashboard's bubbletea program: a single event loop
// that owns the state store and the companion engine, schedules widget
// fetches, applies their results and draws the grid.
//
// Fetches run as tea.Cmds on bubbletea's goroutines and report back as
// messages, so every state mutation happens inside Update.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/scheduler"
)

// TickEvent drives scheduling, timeout expiry and the companion clock.
type TickEvent struct {
	Time time.Time
}

// FetchDoneEvent carries a finished fetch back into the loop.
type FetchDoneEvent struct {
	scheduler.Completion
}

// ConfigChangedEvent is sent when the config file changes on disk. The
// running configuration is never reloaded.
type ConfigChangedEvent struct {
	Path string
}

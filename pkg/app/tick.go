package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/feedtui/pkg/scheduler"
)

// TickInterval is how often the loop checks for due widgets.
const TickInterval = time.Second

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// FetchCmd runs one fetch on a bubbletea goroutine and delivers the result
// as a FetchDoneEvent. The scheduler enforces the timeout, so the command
// always returns.
func FetchCmd(ctx context.Context, s *scheduler.Scheduler, id string, attempt uint64) tea.Cmd {
	return func() tea.Msg {
		return FetchDoneEvent{Completion: s.Fetch(ctx, id, attempt)}
	}
}

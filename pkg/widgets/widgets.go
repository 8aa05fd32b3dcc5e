// Package widgets renders dashboard panes. Renderers are pure functions of
// a state.Widget and a Context; they never touch the store or the network.
package widgets

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/state"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

// Effects are the companion skills that change how payloads are drawn.
type Effects struct {
	// NewsDigest highlights the highest scoring story.
	NewsDigest bool
	// StockAlert highlights quotes that moved at least AlertPercent.
	StockAlert   bool
	AlertPercent float64
}

// Context carries everything a renderer needs besides the widget.
type Context struct {
	Styles  theme.Styles
	Width   int // content width, excluding the pane border
	Height  int // content height, excluding the title line
	Focused bool
	Now     time.Time
	Effects Effects
}

// Render draws the content area of w: exactly ctx.Height lines, each no
// wider than ctx.Width.
func Render(w state.Widget, ctx Context) string {
	if ctx.Width <= 0 || ctx.Height <= 0 {
		return ""
	}

	var lines []string
	switch {
	case w.Status == state.Error && w.Err != nil:
		lines = renderError(w, ctx)
	case w.Payload == nil:
		lines = []string{ctx.Styles.Dim.Render(loadingText(w))}
	default:
		lines = renderPayload(w, ctx)
	}
	return block(lines, ctx.Width, ctx.Height)
}

func loadingText(w state.Widget) string {
	if w.Status == state.Fetching {
		return "Loading..."
	}
	return "Waiting for first refresh"
}

func renderPayload(w state.Widget, ctx Context) []string {
	sel := -1
	if ctx.Focused {
		sel = w.Selected
	}
	switch p := w.Payload.(type) {
	case sources.Stories:
		return renderStories(p, sel, ctx)
	case sources.Quotes:
		return renderQuotes(p, sel, ctx)
	case sources.FeedItems:
		return renderFeed(p, sel, ctx)
	case sources.Games:
		return renderGames(p, sel, ctx)
	case sources.GitHubDashboard:
		return renderGitHub(p, sel, ctx)
	case sources.Playback:
		return renderPlayback(p, ctx)
	case sources.Videos:
		return renderVideos(p, sel, ctx)
	default:
		return []string{ctx.Styles.Dim.Render(fmt.Sprintf("%d items", w.Payload.Len()))}
	}
}

func renderError(w state.Widget, ctx Context) []string {
	s := ctx.Styles
	lines := []string{s.Error.Render("Error: " + string(w.Err.Code))}
	if w.Err.Message != "" {
		lines = append(lines, wrap(w.Err.Message, ctx.Width)...)
	}
	if w.Interval > 0 && !w.LastCompleted.IsZero() {
		next := w.LastCompleted.Add(w.Interval)
		lines = append(lines, s.Dim.Render("retry "+until(next, ctx.Now)))
	}
	return lines
}

// Title builds the pane header: the widget title followed by its fetch
// status.
func Title(w state.Widget, ctx Context) string {
	s := ctx.Styles
	title := s.Title.Render(w.Title)
	var badge string
	switch w.Status {
	case state.Fetching:
		badge = s.Accent.Render("refreshing")
	case state.Error:
		badge = s.Error.Render("error")
	case state.Ready:
		badge = s.Dim.Render(ago(w.LastCompleted, ctx.Now))
	}
	if badge == "" {
		return fit(title, ctx.Width)
	}
	return fit(title+" "+s.Dim.Render("·")+" "+badge, ctx.Width)
}

// Pane wraps a title and content in the widget border. ctx.Width and
// ctx.Height describe the content area; padding and border add
// PaneFrameWidth columns and PaneFrameHeight rows.
func Pane(title, body string, ctx Context) string {
	style := ctx.Styles.Pane
	if ctx.Focused {
		style = ctx.Styles.PaneFocused
	}
	content := lipgloss.JoinVertical(lipgloss.Left, fit(title, ctx.Width), body)
	return style.Width(ctx.Width + 2).Render(content)
}

// Frame sizes added around the content area by Pane.
const (
	PaneFrameWidth  = 4
	PaneFrameHeight = 3 // border plus the title line
)

// ago formats the time since t as a short relative duration.
func ago(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func until(t, now time.Time) string {
	d := t.Sub(now)
	if d <= 0 {
		return "due"
	}
	return "in " + d.Round(time.Second).String()
}

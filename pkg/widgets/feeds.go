package widgets

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
)

func renderStories(p sources.Stories, sel int, ctx Context) []string {
	s := ctx.Styles
	top := -1
	if ctx.Effects.NewsDigest {
		top = p.Top()
	}
	rows := make([]row, 0, len(p.Items))
	for i, st := range p.Items {
		meta := s.Dim.Render(fmt.Sprintf("%d pts · %d comments", st.Score, st.Comments))
		title := st.Title
		if i == top {
			title = s.Highlight.Render("* " + title)
		}
		rows = append(rows, row{text: fmt.Sprintf("%2d. %s %s", i+1, title, meta), index: i})
	}
	if len(rows) == 0 {
		return []string{s.Dim.Render("No stories")}
	}
	return window(rows, sel, ctx.Height, ctx)
}

// Alerting reports whether q moved enough to be flagged.
func Alerting(q sources.Quote, threshold float64) bool {
	return threshold > 0 && math.Abs(q.ChangePercent) >= threshold
}

func renderQuotes(p sources.Quotes, sel int, ctx Context) []string {
	s := ctx.Styles
	rows := make([]row, 0, len(p.Items)+1)
	for i, q := range p.Items {
		change := fmt.Sprintf("%+8.2f (%+.2f%%)", q.Change, q.ChangePercent)
		if q.Change < 0 {
			change = s.Loss.Render(change)
		} else {
			change = s.Gain.Render(change)
		}
		symbol := fmt.Sprintf("%-6s", q.Symbol)
		if ctx.Effects.StockAlert && Alerting(q, ctx.Effects.AlertPercent) {
			symbol = s.Highlight.Render(fmt.Sprintf("%-6s", "!"+q.Symbol))
		}
		rows = append(rows, row{text: fmt.Sprintf("%s %10.2f %s", symbol, q.Price, change), index: i})
	}
	if len(p.Failed) > 0 {
		rows = append(rows, row{text: s.Dim.Render("unavailable: " + strings.Join(p.Failed, ", ")), index: -1})
	}
	if len(p.Items) == 0 && len(p.Failed) == 0 {
		return []string{s.Dim.Render("No quotes")}
	}
	return window(rows, sel, ctx.Height, ctx)
}

func renderFeed(p sources.FeedItems, sel int, ctx Context) []string {
	s := ctx.Styles
	rows := make([]row, 0, len(p.Items)+1)
	for i, it := range p.Items {
		meta := it.Feed
		if when := ago(it.Published, ctx.Now); when != "" {
			meta += " · " + when
		}
		rows = append(rows, row{text: it.Title + " " + s.Dim.Render(meta), index: i})
	}
	if len(p.Failed) > 0 {
		rows = append(rows, row{text: s.Dim.Render("failed: " + strings.Join(p.Failed, ", ")), index: -1})
	}
	if len(p.Items) == 0 && len(p.Failed) == 0 {
		return []string{s.Dim.Render("No entries")}
	}
	return window(rows, sel, ctx.Height, ctx)
}

func renderGames(p sources.Games, sel int, ctx Context) []string {
	s := ctx.Styles
	rows := make([]row, 0, len(p.Items)+1)
	for i, g := range p.Items {
		league := s.Dim.Render(fmt.Sprintf("[%s]", strings.ToUpper(g.League)))
		score := fmt.Sprintf("%s %s @ %s %s", g.Away, g.AwayScore, g.Home, g.HomeScore)
		if g.State == "pre" {
			score = fmt.Sprintf("%s @ %s", g.Away, g.Home)
		}
		status := s.Dim.Render(g.Status)
		if g.Live() {
			status = s.OK.Render("LIVE " + g.Status)
		}
		rows = append(rows, row{text: league + " " + score + "  " + status, index: i})
	}
	if len(p.Failed) > 0 {
		rows = append(rows, row{text: s.Dim.Render("unavailable: " + strings.Join(p.Failed, ", ")), index: -1})
	}
	if len(p.Items) == 0 && len(p.Failed) == 0 {
		return []string{s.Dim.Render("No games today")}
	}
	return window(rows, sel, ctx.Height, ctx)
}

func renderGitHub(p sources.GitHubDashboard, sel int, ctx Context) []string {
	s := ctx.Styles
	var rows []row
	idx := 0
	if len(p.Notifications) > 0 {
		rows = append(rows, row{text: s.Accent.Render(fmt.Sprintf("Notifications (%d)", len(p.Notifications))), index: -1})
		for _, n := range p.Notifications {
			rows = append(rows, row{text: s.Dim.Render(n.Repo) + " " + n.Title, index: idx})
			idx++
		}
	}
	if len(p.PullRequests) > 0 {
		rows = append(rows, row{text: s.Accent.Render(fmt.Sprintf("Pull requests (%d)", len(p.PullRequests))), index: -1})
		for _, pr := range p.PullRequests {
			rows = append(rows, row{text: s.Dim.Render(fmt.Sprintf("%s#%d", pr.Repo, pr.Number)) + " " + pr.Title, index: idx})
			idx++
		}
	}
	if len(p.Commits) > 0 {
		rows = append(rows, row{text: s.Accent.Render("Recent commits"), index: -1})
		for _, c := range p.Commits {
			rows = append(rows, row{text: s.Dim.Render(c.SHA) + " " + c.Message, index: idx})
			idx++
		}
	}
	if len(rows) == 0 {
		return []string{s.OK.Render("All caught up")}
	}
	return window(rows, sel, ctx.Height, ctx)
}

func renderPlayback(p sources.Playback, ctx Context) []string {
	s := ctx.Styles
	if p.Track == "" {
		return []string{s.Dim.Render("Nothing playing")}
	}
	status := "Paused"
	if p.IsPlaying {
		status = "Playing"
	}
	lines := []string{
		s.Title.Render(p.Track),
		p.Artist,
		s.Dim.Render(p.Album),
	}
	if p.Duration > 0 {
		width := max(ctx.Width-16, 4)
		frac := float64(p.Progress) / float64(p.Duration)
		filled := int(min(max(frac, 0), 1) * float64(width))
		bar := s.XPFilled.Render(strings.Repeat("━", filled)) + s.XPEmpty.Render(strings.Repeat("─", width-filled))
		lines = append(lines, fmt.Sprintf("%s %s/%s", bar, clock(p.Progress), clock(p.Duration)))
	}
	lines = append(lines, s.Accent.Render(status))
	return lines
}

func renderVideos(p sources.Videos, sel int, ctx Context) []string {
	s := ctx.Styles
	rows := make([]row, 0, len(p.Items)+1)
	for i, v := range p.Items {
		meta := v.Channel + " · " + sources.FormatViews(v.Views)
		if v.Duration > 0 {
			meta = clock(v.Duration) + " · " + meta
		}
		rows = append(rows, row{text: v.Title + " " + s.Dim.Render(meta), index: i})
	}
	if len(p.Failed) > 0 {
		rows = append(rows, row{text: s.Dim.Render("unavailable: " + strings.Join(p.Failed, ", ")), index: -1})
	}
	if len(p.Items) == 0 && len(p.Failed) == 0 {
		return []string{s.Dim.Render("No videos")}
	}
	return window(rows, sel, ctx.Height, ctx)
}

// clock formats d as m:ss, or h:mm:ss from an hour up.
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

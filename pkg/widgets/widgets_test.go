package widgets

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/feedtui/pkg/companion"
	"gitlab.com/tinyland/lab/feedtui/pkg/sources"
	"gitlab.com/tinyland/lab/feedtui/pkg/state"
	"gitlab.com/tinyland/lab/feedtui/pkg/theme"
)

var wgNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func wgContext(width, height int) Context {
	return Context{
		Styles:  theme.ForProfile("dark", termenv.Ascii),
		Width:   width,
		Height:  height,
		Focused: true,
		Now:     wgNow,
	}
}

func wgReady(p sources.Payload) state.Widget {
	return state.Widget{
		ID:            "w",
		Title:         "Widget",
		Status:        state.Ready,
		Payload:       p,
		LastCompleted: wgNow.Add(-2 * time.Minute),
		Interval:      time.Minute,
	}
}

func wgLines(t *testing.T, out string, width, height int) []string {
	t.Helper()
	lines := strings.Split(out, "\n")
	if len(lines) != height {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), height, out)
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, l)
		}
	}
	return lines
}

func TestRenderFillsExactRectangle(t *testing.T) {
	w := wgReady(sources.Stories{Items: []sources.Story{
		{Title: "A very long headline that will certainly not fit in the pane", Score: 10},
		{Title: "Short", Score: 3},
	}})
	wgLines(t, Render(w, wgContext(30, 5)), 30, 5)
}

func TestRenderZeroSize(t *testing.T) {
	if got := Render(wgReady(sources.Stories{}), wgContext(0, 5)); got != "" {
		t.Errorf("Render with zero width = %q, want empty", got)
	}
}

func TestRenderPlaceholders(t *testing.T) {
	w := state.Widget{ID: "hn", Title: "HN"}
	if out := Render(w, wgContext(40, 3)); !strings.Contains(out, "Waiting for first refresh") {
		t.Errorf("idle placeholder missing:\n%s", out)
	}
	w.Status = state.Fetching
	if out := Render(w, wgContext(40, 3)); !strings.Contains(out, "Loading...") {
		t.Errorf("loading placeholder missing:\n%s", out)
	}
}

func TestRenderError(t *testing.T) {
	w := state.Widget{
		ID:            "stocks",
		Status:        state.Error,
		Err:           sources.Errorf(sources.CodeTimeout, "no response after 10s"),
		Interval:      time.Minute,
		LastCompleted: wgNow.Add(-15 * time.Second),
	}
	out := Render(w, wgContext(40, 4))
	for _, want := range []string{"Error: timeout", "no response after 10s", "retry in 45s"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNewsDigestHighlightsTopStory(t *testing.T) {
	w := wgReady(sources.Stories{Items: []sources.Story{
		{Title: "Low", Score: 5},
		{Title: "High", Score: 500},
	}})
	ctx := wgContext(60, 4)

	if out := Render(w, ctx); strings.Contains(out, "* High") {
		t.Errorf("top story highlighted without the skill:\n%s", out)
	}
	ctx.Effects.NewsDigest = true
	if out := Render(w, ctx); !strings.Contains(out, "* High") {
		t.Errorf("top story not highlighted:\n%s", out)
	}
}

func TestStockAlertFlagsBigMoves(t *testing.T) {
	w := wgReady(sources.Quotes{
		Items: []sources.Quote{
			{Symbol: "AAPL", Price: 190, Change: 1, ChangePercent: 0.5},
			{Symbol: "TSLA", Price: 200, Change: -8, ChangePercent: -3.5},
		},
		Failed: []string{"NOPE"},
	})
	ctx := wgContext(60, 5)
	ctx.Effects = Effects{StockAlert: true, AlertPercent: companion.StockAlertPercent}

	out := Render(w, ctx)
	if !strings.Contains(out, "!TSLA") {
		t.Errorf("TSLA not flagged:\n%s", out)
	}
	if strings.Contains(out, "!AAPL") {
		t.Errorf("AAPL flagged:\n%s", out)
	}
	if !strings.Contains(out, "unavailable: NOPE") {
		t.Errorf("failed symbol not listed:\n%s", out)
	}
}

func TestAlerting(t *testing.T) {
	tests := []struct {
		pct, threshold float64
		want           bool
	}{
		{3.0, 3.0, true},
		{-3.2, 3.0, true},
		{2.99, 3.0, false},
		{10, 0, false},
	}
	for _, tt := range tests {
		if got := Alerting(sources.Quote{ChangePercent: tt.pct}, tt.threshold); got != tt.want {
			t.Errorf("Alerting(%v, %v) = %v, want %v", tt.pct, tt.threshold, got, tt.want)
		}
	}
}

func TestSelectionMarkerOnlyWhenFocused(t *testing.T) {
	w := wgReady(sources.FeedItems{Items: []sources.FeedItem{
		{Title: "First", Feed: "example.com"},
		{Title: "Second", Feed: "example.com"},
	}})
	w.Selected = 1
	ctx := wgContext(50, 3)

	lines := wgLines(t, Render(w, ctx), 50, 3)
	if !strings.HasPrefix(lines[1], "> Second") {
		t.Errorf("selected row = %q, want marker", lines[1])
	}

	ctx.Focused = false
	lines = wgLines(t, Render(w, ctx), 50, 3)
	if strings.Contains(lines[1], ">") {
		t.Errorf("unfocused pane shows a marker: %q", lines[1])
	}
}

func TestSelectionScrollsIntoView(t *testing.T) {
	var items []sources.Story
	for i := range 10 {
		items = append(items, sources.Story{Title: "story", Score: i})
	}
	w := wgReady(sources.Stories{Items: items})
	w.Selected = 8

	lines := wgLines(t, Render(w, wgContext(40, 3)), 40, 3)
	if !strings.HasPrefix(lines[2], ">  9.") {
		t.Errorf("last line = %q, want the selected ninth story", lines[2])
	}
}

func TestGitHubSectionsAreNotSelectable(t *testing.T) {
	w := wgReady(sources.GitHubDashboard{
		Notifications: []sources.Notification{{Title: "Review requested", Repo: "o/r"}},
		PullRequests:  []sources.PullRequest{{Title: "Add widget", Repo: "o/r", Number: 7}},
	})
	w.Selected = 1

	out := Render(w, wgContext(50, 5))
	if !strings.Contains(out, "Notifications (1)") || !strings.Contains(out, "Pull requests (1)") {
		t.Errorf("section headers missing:\n%s", out)
	}
	if !strings.Contains(out, "> o/r#7 Add widget") {
		t.Errorf("PR row not selected:\n%s", out)
	}
}

func TestGamesAndPlayback(t *testing.T) {
	games := wgReady(sources.Games{Items: []sources.Game{
		{League: "nba", Away: "BOS", Home: "LAL", AwayScore: "101", HomeScore: "99", State: "in", Status: "Q4 2:00"},
		{League: "nfl", Away: "KC", Home: "BUF", State: "pre", Status: "8:15 PM"},
	}})
	out := Render(games, wgContext(60, 3))
	for _, want := range []string{"[NBA] BOS 101 @ LAL 99", "LIVE Q4 2:00", "KC @ BUF"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	play := wgReady(sources.Playback{
		Track: "Song", Artist: "Band", Album: "LP", IsPlaying: true,
		Progress: 83 * time.Second, Duration: 225 * time.Second,
	})
	out = Render(play, wgContext(40, 6))
	for _, want := range []string{"Song", "Band", "1:23/3:45", "Playing"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	if out := Render(wgReady(sources.Playback{}), wgContext(40, 2)); !strings.Contains(out, "Nothing playing") {
		t.Errorf("empty playback:\n%s", out)
	}
}

func TestVideos(t *testing.T) {
	w := wgReady(sources.Videos{
		Items: []sources.Video{
			{ID: "a", Title: "Talk", Channel: "GopherCon", Views: 1500, Duration: time.Hour + 2*time.Minute + 3*time.Second},
			{ID: "b", Title: "Short", Channel: "Gophers", Views: 12},
		},
		Failed: []string{"UCbroken"},
	})
	out := Render(w, wgContext(70, 4))
	wgLines(t, out, 70, 4)
	for _, want := range []string{"Talk", "1:02:03 · GopherCon · 1.5K views", "Gophers · 12 views", "unavailable: UCbroken"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if out := Render(wgReady(sources.Videos{}), wgContext(30, 2)); !strings.Contains(out, "No videos") {
		t.Errorf("empty videos:\n%s", out)
	}
}

func TestReader(t *testing.T) {
	d := sources.Detail{
		Title:  "Post",
		Source: "Blog",
		Meta:   "2026-03-01 10:00",
		Link:   "https://blog.example/post",
		Body:   "First paragraph with enough words to wrap around the narrow pane.\n\nSecond.",
	}
	ctx := wgContext(30, 6)
	lines := ReaderLines(d, ctx.Width, ctx.Styles)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Source: Blog", "Info: 2026-03-01 10:00", "Second."} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in:\n%s", want, joined)
		}
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > ctx.Width {
			t.Errorf("line %d is %d wide: %q", i, w, l)
		}
	}

	maxScroll := ReaderMaxScroll(d, ctx.Width, ctx.Height, ctx.Styles)
	if maxScroll != len(lines)-ctx.Height {
		t.Errorf("max scroll = %d, want %d", maxScroll, len(lines)-ctx.Height)
	}

	top := wgLines(t, RenderReader(d, 0, ctx), 30, 6)
	if !strings.Contains(top[0], "Source: Blog") {
		t.Errorf("first line = %q", top[0])
	}
	bottom := wgLines(t, RenderReader(d, 1000, ctx), 30, 6)
	if strings.TrimSpace(bottom[5]) != strings.Repeat("─", 30) {
		t.Errorf("scrolling past the end should clamp to the closing rule, got %q", bottom[5])
	}

	empty := strings.Join(ReaderLines(sources.Detail{Title: "x", Link: "https://x"}, 40, ctx.Styles), "\n")
	if !strings.Contains(empty, "No description available.") || !strings.Contains(empty, "Press o") {
		t.Errorf("empty body:\n%s", empty)
	}
}

func TestTitleShowsStatus(t *testing.T) {
	ctx := wgContext(40, 1)
	w := wgReady(sources.Stories{})
	if got := Title(w, ctx); !strings.Contains(got, "2m ago") {
		t.Errorf("Title = %q, want age", got)
	}
	w.Status = state.Fetching
	if got := Title(w, ctx); !strings.Contains(got, "refreshing") {
		t.Errorf("Title = %q, want refreshing", got)
	}
}

func TestPaneWidth(t *testing.T) {
	ctx := wgContext(20, 2)
	out := Pane("Title", block([]string{"body"}, 20, 2), ctx)
	for i, l := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(l); w != 20+PaneFrameWidth {
			t.Errorf("pane line %d width = %d, want %d", i, w, 20+PaneFrameWidth)
		}
	}
	if n := len(strings.Split(out, "\n")); n != 2+PaneFrameHeight {
		t.Errorf("pane height = %d, want %d", n, 2+PaneFrameHeight)
	}
}

func TestAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Second, "just now"},
		{30 * time.Second, "30s ago"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := ago(wgNow.Add(-tt.d), wgNow); got != tt.want {
			t.Errorf("ago(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
	if got := ago(time.Time{}, wgNow); got != "" {
		t.Errorf("ago(zero) = %q, want empty", got)
	}
}

func wgCompanionView() CompanionView {
	c := companion.New(companion.Cat, wgNow)
	c.Level, c.XP, c.SkillPoints = 5, 120, 12
	return CompanionView{
		Companion: c,
		Rules:     companion.DefaultRules(),
		Mood:      companion.Content,
		Greeting:  "Tui: Hi there!",
		Headline:  "Go 2 released",
	}
}

func TestRenderCompanionPanel(t *testing.T) {
	v := wgCompanionView()
	out := RenderCompanion(v, wgContext(40, 14))
	for _, want := range []string{"Tui the Cat", "Lv 5", "120/500", "12 skill points", "Hi there!"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Trending") {
		t.Errorf("headline shown without trend insight:\n%s", out)
	}

	v.Companion.Skills = append(v.Companion.Skills, "cosmic_insight")
	if out := RenderCompanion(v, wgContext(40, 14)); !strings.Contains(out, "Trending: Go 2 released") {
		t.Errorf("headline missing with trend insight:\n%s", out)
	}
}

func TestRenderCompanionMenuTabs(t *testing.T) {
	v := wgCompanionView()
	v.MenuOpen = true

	v.Tab = state.TabStats
	out := RenderCompanion(v, wgContext(60, 14))
	if !strings.Contains(out, "[Stats]") || !strings.Contains(out, "x1.00") {
		t.Errorf("stats tab:\n%s", out)
	}

	v.Tab = state.TabSkills
	v.Cursor = 1
	out = RenderCompanion(v, wgContext(60, 14))
	if !strings.Contains(out, "[Skills]") || !strings.Contains(out, "> ") || !strings.Contains(out, "News Digest") {
		t.Errorf("skills tab:\n%s", out)
	}
	if !strings.Contains(out, "owned") {
		t.Errorf("greeting not shown as owned:\n%s", out)
	}

	v.Tab = state.TabOutfits
	v.Cursor = 0
	out = RenderCompanion(v, wgContext(60, 14))
	if !strings.Contains(out, "equipped") || !strings.Contains(out, "unlocks at Lv 10") {
		t.Errorf("outfits tab:\n%s", out)
	}
}

func TestMenuSize(t *testing.T) {
	if got := MenuSize(state.TabSkills); got != len(companion.Skills) {
		t.Errorf("MenuSize(skills) = %d", got)
	}
	if got := MenuSize(state.TabOutfits); got != len(companion.Outfits) {
		t.Errorf("MenuSize(outfits) = %d", got)
	}
	if got := MenuSize(state.TabStats); got != 0 {
		t.Errorf("MenuSize(stats) = %d", got)
	}
}

package sources

import (
	"fmt"
	"strings"
	"time"
)

// Payload is the success value of a fetch. The engine treats it as opaque
// beyond the row count, the per-row link used for list navigation and the
// per-row detail shown by the reader.
type Payload interface {
	Kind() Kind
	// Len is the number of selectable rows.
	Len() int
	// Link returns the URL for row i, or "" when the row has none.
	Link(i int) string
	// Detail returns the long form of row i, false when out of range.
	Detail(i int) (Detail, bool)
}

// Detail is one row opened in the reader.
type Detail struct {
	Title  string
	Source string
	Meta   string
	Link   string
	// Body is plain text; paragraphs are separated by blank lines.
	Body string
}

// Story is one Hacker News item.
type Story struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	By       string `json:"by"`
	Score    int    `json:"score"`
	Comments int    `json:"descendants"`
}

// Stories is the hackernews payload.
type Stories struct {
	Items []Story
}

func (Stories) Kind() Kind { return KindHackerNews }
func (p Stories) Len() int { return len(p.Items) }
func (p Stories) Link(i int) string {
	if i < 0 || i >= len(p.Items) {
		return ""
	}
	if p.Items[i].URL != "" {
		return p.Items[i].URL
	}
	return hnItemURL(p.Items[i].ID)
}

func (p Stories) Detail(i int) (Detail, bool) {
	if i < 0 || i >= len(p.Items) {
		return Detail{}, false
	}
	st := p.Items[i]
	meta := fmt.Sprintf("%d points", st.Score)
	if st.By != "" {
		meta += " by " + st.By
	}
	return Detail{
		Title:  st.Title,
		Source: "Hacker News",
		Meta:   fmt.Sprintf("%s · %d comments", meta, st.Comments),
		Link:   p.Link(i),
		Body:   "Discussion: " + hnItemURL(st.ID),
	}, true
}

// Top returns the index of the highest-scoring story, or -1 when empty.
func (p Stories) Top() int {
	best := -1
	for i, s := range p.Items {
		if best < 0 || s.Score > p.Items[best].Score {
			best = i
		}
	}
	return best
}

// Quote is one stock quote.
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	Currency      string
}

// Quotes is the stocks payload. Failed lists symbols that could not be
// fetched while others succeeded.
type Quotes struct {
	Items  []Quote
	Failed []string
}

func (Quotes) Kind() Kind { return KindStocks }
func (p Quotes) Len() int { return len(p.Items) }
func (p Quotes) Link(i int) string {
	if i < 0 || i >= len(p.Items) {
		return ""
	}
	return "https://finance.yahoo.com/quote/" + p.Items[i].Symbol
}
func (p Quotes) Detail(i int) (Detail, bool) {
	if i < 0 || i >= len(p.Items) {
		return Detail{}, false
	}
	q := p.Items[i]
	return Detail{
		Title:  q.Symbol,
		Source: "Stocks",
		Meta:   fmt.Sprintf("%.2f %s", q.Price, q.Currency),
		Link:   p.Link(i),
		Body:   fmt.Sprintf("Change today: %+.2f (%+.2f%%)", q.Change, q.ChangePercent),
	}, true
}

// FeedItem is one RSS/Atom entry.
type FeedItem struct {
	Title     string
	URL       string
	Feed      string
	Published time.Time
	// Summary is the entry description as plain text.
	Summary string
}

// FeedItems is the rss payload, newest first.
type FeedItems struct {
	Items  []FeedItem
	Failed []string
}

func (FeedItems) Kind() Kind { return KindRSS }
func (p FeedItems) Len() int { return len(p.Items) }
func (p FeedItems) Link(i int) string {
	if i < 0 || i >= len(p.Items) {
		return ""
	}
	return p.Items[i].URL
}
func (p FeedItems) Detail(i int) (Detail, bool) {
	if i < 0 || i >= len(p.Items) {
		return Detail{}, false
	}
	it := p.Items[i]
	d := Detail{Title: it.Title, Source: it.Feed, Link: it.URL, Body: it.Summary}
	if !it.Published.IsZero() {
		d.Meta = it.Published.Format("2006-01-02 15:04")
	}
	return d, true
}

// Game is one scoreboard entry.
type Game struct {
	League    string
	Home      string
	Away      string
	HomeScore string
	AwayScore string
	Status    string
	// State is the ESPN state: "pre", "in" or "post".
	State string
	URL   string
}

// Live reports whether the game is in progress.
func (g Game) Live() bool { return g.State == "in" }

// Games is the sports payload.
type Games struct {
	Items  []Game
	Failed []string
}

func (Games) Kind() Kind { return KindSports }
func (p Games) Len() int { return len(p.Items) }
func (p Games) Link(i int) string {
	if i < 0 || i >= len(p.Items) {
		return ""
	}
	return p.Items[i].URL
}
func (p Games) Detail(i int) (Detail, bool) {
	if i < 0 || i >= len(p.Items) {
		return Detail{}, false
	}
	g := p.Items[i]
	return Detail{
		Title:  fmt.Sprintf("%s @ %s", g.Away, g.Home),
		Source: strings.ToUpper(g.League),
		Meta:   g.Status,
		Link:   g.URL,
		Body:   fmt.Sprintf("%s %s\n%s %s", g.Away, g.AwayScore, g.Home, g.HomeScore),
	}, true
}

// Notification is one unread GitHub notification.
type Notification struct {
	Title  string
	Repo   string
	Reason string
	Type   string
	URL    string
}

// PullRequest is one open pull request authored by the user.
type PullRequest struct {
	Title  string
	Repo   string
	Number int
	URL    string
}

// Commit is one recently pushed commit.
type Commit struct {
	SHA     string
	Message string
	Repo    string
	URL     string
}

// GitHubDashboard is the github payload. Rows are ordered notifications,
// then pull requests, then commits.
type GitHubDashboard struct {
	User          string
	Notifications []Notification
	PullRequests  []PullRequest
	Commits       []Commit
}

func (GitHubDashboard) Kind() Kind { return KindGitHub }
func (p GitHubDashboard) Len() int {
	return len(p.Notifications) + len(p.PullRequests) + len(p.Commits)
}
func (p GitHubDashboard) Link(i int) string {
	switch {
	case i < 0:
		return ""
	case i < len(p.Notifications):
		return p.Notifications[i].URL
	case i < len(p.Notifications)+len(p.PullRequests):
		return p.PullRequests[i-len(p.Notifications)].URL
	case i < p.Len():
		return p.Commits[i-len(p.Notifications)-len(p.PullRequests)].URL
	}
	return ""
}
func (p GitHubDashboard) Detail(i int) (Detail, bool) {
	n, pr := len(p.Notifications), len(p.PullRequests)
	switch {
	case i < 0:
	case i < n:
		it := p.Notifications[i]
		return Detail{Title: it.Title, Source: it.Repo, Meta: it.Type + " · " + it.Reason, Link: it.URL}, true
	case i < n+pr:
		it := p.PullRequests[i-n]
		return Detail{Title: it.Title, Source: it.Repo, Meta: fmt.Sprintf("pull request #%d", it.Number), Link: it.URL}, true
	case i < p.Len():
		it := p.Commits[i-n-pr]
		return Detail{Title: it.Message, Source: it.Repo, Meta: "commit " + it.SHA, Link: it.URL}, true
	}
	return Detail{}, false
}

// Playback is the spotify payload. A zero Track means nothing is playing.
type Playback struct {
	Track     string
	Artist    string
	Album     string
	IsPlaying bool
	Progress  time.Duration
	Duration  time.Duration
	URL       string
}

func (Playback) Kind() Kind { return KindSpotify }
func (p Playback) Len() int {
	if p.Track == "" {
		return 0
	}
	return 1
}
func (p Playback) Link(i int) string {
	if i != 0 {
		return ""
	}
	return p.URL
}
func (p Playback) Detail(i int) (Detail, bool) {
	if i != 0 || p.Track == "" {
		return Detail{}, false
	}
	return Detail{Title: p.Track, Source: "Spotify", Meta: p.Artist, Link: p.URL, Body: p.Album}, true
}

// Video is one YouTube upload.
type Video struct {
	ID          string
	Title       string
	Channel     string
	Published   time.Time
	Description string
	Views       int64
	Duration    time.Duration
}

// URL is the watch page for v.
func (v Video) URL() string { return "https://www.youtube.com/watch?v=" + v.ID }

// Videos is the youtube payload.
type Videos struct {
	Items  []Video
	Failed []string
}

func (Videos) Kind() Kind { return KindYouTube }
func (p Videos) Len() int { return len(p.Items) }
func (p Videos) Link(i int) string {
	if i < 0 || i >= len(p.Items) {
		return ""
	}
	return p.Items[i].URL()
}
func (p Videos) Detail(i int) (Detail, bool) {
	if i < 0 || i >= len(p.Items) {
		return Detail{}, false
	}
	v := p.Items[i]
	meta := FormatViews(v.Views)
	if !v.Published.IsZero() {
		meta += " · " + v.Published.Format("2006-01-02")
	}
	return Detail{Title: v.Title, Source: v.Channel, Meta: meta, Link: v.URL(), Body: v.Description}, true
}

// FormatViews renders a view count as "1.2M views".
func FormatViews(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK views", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d views", n)
	}
}

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// GitHubAPI is the REST API base.
const GitHubAPI = "https://api.github.com"

// GitHub fetches notifications, open pull requests and recent pushes for
// the token's user.
type GitHub struct {
	client   *http.Client
	baseURL  string
	token    string
	username string

	notifications, pulls, commits bool

	maxNotifications, maxPulls, maxCommits int
}

// NewGitHub builds the adapter for a github widget.
func NewGitHub(w config.WidgetConfig, opts ...Option) *GitHub {
	o := buildOptions(GitHubAPI, opts)
	return &GitHub{
		client:           o.client,
		baseURL:          strings.TrimRight(o.baseURL, "/"),
		token:            w.Token,
		username:         w.Username,
		notifications:    config.Enabled(w.ShowNotifications),
		pulls:            config.Enabled(w.ShowPullRequests),
		commits:          config.Enabled(w.ShowCommits),
		maxNotifications: orDefault(w.MaxNotifications, 20),
		maxPulls:         orDefault(w.MaxPullRequests, 10),
		maxCommits:       orDefault(w.MaxCommits, 10),
	}
}

// Kind returns KindGitHub.
func (g *GitHub) Kind() Kind { return KindGitHub }

func (g *GitHub) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+g.token)
	h.Set("Accept", "application/vnd.github+json")
	h.Set("X-GitHub-Api-Version", "2022-11-28")
	return h
}

// Fetch gathers the enabled sections. Any section failing fails the whole
// fetch: they share one credential, so a partial result would only hide
// an auth problem.
func (g *GitHub) Fetch(ctx context.Context) (Payload, error) {
	if g.token == "" {
		return nil, Errorf(CodeConfig, "missing github token")
	}

	user := g.username
	if user == "" && (g.pulls || g.commits) {
		var me struct {
			Login string `json:"login"`
		}
		if _, err := getJSON(ctx, g.client, g.baseURL+"/user", g.header(), &me); err != nil {
			return nil, err
		}
		user = me.Login
	}

	out := GitHubDashboard{User: user}
	var err error
	if g.notifications {
		if out.Notifications, err = g.fetchNotifications(ctx); err != nil {
			return nil, err
		}
	}
	if g.pulls {
		if out.PullRequests, err = g.fetchPulls(ctx, user); err != nil {
			return nil, err
		}
	}
	if g.commits {
		if out.Commits, err = g.fetchCommits(ctx, user); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *GitHub) fetchNotifications(ctx context.Context) ([]Notification, error) {
	var raw []struct {
		Reason  string `json:"reason"`
		Subject struct {
			Title string `json:"title"`
			Type  string `json:"type"`
			URL   string `json:"url"`
		} `json:"subject"`
		Repository struct {
			FullName string `json:"full_name"`
			HTMLURL  string `json:"html_url"`
		} `json:"repository"`
	}
	u := fmt.Sprintf("%s/notifications?per_page=%d", g.baseURL, g.maxNotifications)
	if _, err := getJSON(ctx, g.client, u, g.header(), &raw); err != nil {
		return nil, err
	}

	out := make([]Notification, 0, min(len(raw), g.maxNotifications))
	for _, n := range raw {
		if len(out) == g.maxNotifications {
			break
		}
		out = append(out, Notification{
			Title:  n.Subject.Title,
			Repo:   n.Repository.FullName,
			Reason: n.Reason,
			Type:   n.Subject.Type,
			URL:    htmlURL(n.Subject.URL, n.Repository.HTMLURL),
		})
	}
	return out, nil
}

func (g *GitHub) fetchPulls(ctx context.Context, user string) ([]PullRequest, error) {
	var raw struct {
		Items []struct {
			Number        int    `json:"number"`
			Title         string `json:"title"`
			HTMLURL       string `json:"html_url"`
			RepositoryURL string `json:"repository_url"`
		} `json:"items"`
	}
	q := url.QueryEscape(fmt.Sprintf("involves:%s type:pr state:open", user))
	u := fmt.Sprintf("%s/search/issues?q=%s&sort=updated&per_page=%d", g.baseURL, q, g.maxPulls)
	if _, err := getJSON(ctx, g.client, u, g.header(), &raw); err != nil {
		return nil, err
	}

	out := make([]PullRequest, 0, min(len(raw.Items), g.maxPulls))
	for _, it := range raw.Items {
		if len(out) == g.maxPulls {
			break
		}
		out = append(out, PullRequest{
			Title:  it.Title,
			Repo:   repoFromAPIURL(it.RepositoryURL),
			Number: it.Number,
			URL:    it.HTMLURL,
		})
	}
	return out, nil
}

func (g *GitHub) fetchCommits(ctx context.Context, user string) ([]Commit, error) {
	var events []struct {
		Type string `json:"type"`
		Repo struct {
			Name string `json:"name"`
		} `json:"repo"`
		Payload struct {
			Commits []struct {
				SHA     string `json:"sha"`
				Message string `json:"message"`
			} `json:"commits"`
		} `json:"payload"`
	}
	u := fmt.Sprintf("%s/users/%s/events?per_page=30", g.baseURL, url.PathEscape(user))
	if _, err := getJSON(ctx, g.client, u, g.header(), &events); err != nil {
		return nil, err
	}

	var out []Commit
	for _, ev := range events {
		if ev.Type != "PushEvent" {
			continue
		}
		for _, c := range ev.Payload.Commits {
			if len(out) == g.maxCommits {
				return out, nil
			}
			msg, _, _ := strings.Cut(c.Message, "\n")
			out = append(out, Commit{
				SHA:     shortSHA(c.SHA),
				Message: msg,
				Repo:    ev.Repo.Name,
				URL:     fmt.Sprintf("https://github.com/%s/commit/%s", ev.Repo.Name, c.SHA),
			})
		}
	}
	return out, nil
}

// htmlURL turns an API subject URL into its web form where possible.
func htmlURL(apiURL, fallback string) string {
	const prefix = "https://api.github.com/repos/"
	if !strings.HasPrefix(apiURL, prefix) {
		return fallback
	}
	rest := strings.TrimPrefix(apiURL, prefix)
	rest = strings.Replace(rest, "/pulls/", "/pull/", 1)
	return "https://github.com/" + rest
}

func repoFromAPIURL(u string) string {
	if i := strings.Index(u, "/repos/"); i >= 0 {
		return u[i+len("/repos/"):]
	}
	return u
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

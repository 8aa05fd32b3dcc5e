package sources

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// RSS fetches and merges every configured feed. RSS and Atom are both
// handled by gofeed's universal parser.
type RSS struct {
	client   *http.Client
	feeds    []string
	maxItems int
}

// NewRSS builds the adapter for an rss widget. WithBaseURL is ignored;
// feed URLs come from configuration.
func NewRSS(w config.WidgetConfig, opts ...Option) *RSS {
	o := buildOptions("", opts)
	maxItems := w.MaxItems
	if maxItems <= 0 {
		maxItems = 15
	}
	return &RSS{client: o.client, feeds: w.Feeds, maxItems: maxItems}
}

// Kind returns KindRSS.
func (r *RSS) Kind() Kind { return KindRSS }

// Fetch parses each feed independently. A failing feed is skipped and
// reported in FeedItems.Failed; only when all feeds fail is an error
// returned. Items are merged newest first and truncated to max_items.
func (r *RSS) Fetch(ctx context.Context) (Payload, error) {
	if len(r.feeds) == 0 {
		return nil, Errorf(CodeConfig, "no feeds configured")
	}

	parser := gofeed.NewParser()
	parser.Client = r.client
	parser.UserAgent = UserAgent

	var out FeedItems
	var p partial
	for _, feedURL := range r.feeds {
		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, AsFetchError(ctx.Err())
			}
			p.fail(feedURL, classifyFeedError(feedURL, err))
			continue
		}
		name := strings.TrimSpace(feed.Title)
		if name == "" {
			name = hostOf(feedURL)
		}
		for _, it := range feed.Items {
			out.Items = append(out.Items, FeedItem{
				Title:     strings.TrimSpace(it.Title),
				URL:       it.Link,
				Feed:      name,
				Published: itemTime(it),
				Summary:   PlainText(firstNonEmpty(it.Description, it.Content)),
			})
		}
	}
	if err := p.result(len(r.feeds)); err != nil {
		return nil, err
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].Published.After(out.Items[j].Published)
	})
	if len(out.Items) > r.maxItems {
		out.Items = out.Items[:r.maxItems]
	}
	out.Failed = p.failed
	return out, nil
}

func classifyFeedError(feedURL string, err error) *FetchError {
	var he gofeed.HTTPError
	if errors.As(err, &he) {
		return Errorf(CodeStatus, "%s returned %d", hostOf(feedURL), he.StatusCode)
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return AsFetchError(ue)
	}
	return &FetchError{Code: CodeDecode, Message: "parse " + hostOf(feedURL), Err: err}
}

func itemTime(it *gofeed.Item) time.Time {
	switch {
	case it.PublishedParsed != nil:
		return *it.PublishedParsed
	case it.UpdatedParsed != nil:
		return *it.UpdatedParsed
	}
	return time.Time{}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

package sources

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// HackerNewsAPI is the public Firebase endpoint.
const HackerNewsAPI = "https://hacker-news.firebaseio.com/v0"

// hnParallel bounds concurrent item requests within one fetch.
const hnParallel = 8

// HackerNews fetches the configured story list and then each item.
type HackerNews struct {
	client    *http.Client
	baseURL   string
	storyType string
	count     int
}

// NewHackerNews builds the adapter for a hackernews widget.
func NewHackerNews(w config.WidgetConfig, opts ...Option) *HackerNews {
	o := buildOptions(HackerNewsAPI, opts)
	count := w.StoryCount
	if count <= 0 {
		count = 10
	}
	storyType := w.StoryType
	if storyType == "" {
		storyType = "top"
	}
	return &HackerNews{client: o.client, baseURL: o.baseURL, storyType: storyType, count: count}
}

// Kind returns KindHackerNews.
func (h *HackerNews) Kind() Kind { return KindHackerNews }

// Fetch lists story ids and fetches the first count items concurrently.
// Items that fail or were deleted are skipped; order follows the list.
func (h *HackerNews) Fetch(ctx context.Context) (Payload, error) {
	var ids []int
	if _, err := getJSON(ctx, h.client, fmt.Sprintf("%s/%sstories.json", h.baseURL, h.storyType), nil, &ids); err != nil {
		return nil, err
	}
	if len(ids) > h.count {
		ids = ids[:h.count]
	}

	items := make([]*Story, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hnParallel)
	for i, id := range ids {
		g.Go(func() error {
			var s Story
			if _, err := getJSON(gctx, h.client, fmt.Sprintf("%s/item/%d.json", h.baseURL, id), nil, &s); err != nil {
				if fe := AsFetchError(err); fe.Code == CodeTimeout || fe.Code == CodeCanceled {
					return fe
				}
				return nil
			}
			if s.Title != "" {
				items[i] = &s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := Stories{Items: make([]Story, 0, len(items))}
	for _, s := range items {
		if s != nil {
			out.Items = append(out.Items, *s)
		}
	}
	if len(out.Items) == 0 && len(ids) > 0 {
		return nil, Errorf(CodeDecode, "no readable stories in %d ids", len(ids))
	}
	return out, nil
}

func hnItemURL(id int) string {
	return "https://news.ycombinator.com/item?id=" + strconv.Itoa(id)
}

package sources

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// YouTubeAPI is the Data API v3 base.
const YouTubeAPI = "https://www.googleapis.com/youtube/v3"

// YouTube searches by query and lists the latest uploads of each
// configured channel, then reads statistics and durations for the hits.
type YouTube struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	query     string
	channels  []string
	maxVideos int
}

// NewYouTube builds the adapter for a youtube widget.
func NewYouTube(w config.WidgetConfig, opts ...Option) *YouTube {
	o := buildOptions(YouTubeAPI, opts)
	maxVideos := w.MaxVideos
	if maxVideos <= 0 {
		maxVideos = 15
	}
	return &YouTube{
		client:    o.client,
		baseURL:   strings.TrimRight(o.baseURL, "/"),
		apiKey:    w.APIKey,
		query:     strings.TrimSpace(w.SearchQuery),
		channels:  w.Channels,
		maxVideos: maxVideos,
	}
}

// Kind returns KindYouTube.
func (y *YouTube) Kind() Kind { return KindYouTube }

type ytSearch struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type ytVideos struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string    `json:"title"`
			Description  string    `json:"description"`
			ChannelTitle string    `json:"channelTitle"`
			PublishedAt  time.Time `json:"publishedAt"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Fetch runs the search and every channel listing independently. A failing
// listing is reported in Videos.Failed; the widget only errors when all of
// them fail. Results keep request order and are capped at max_videos.
func (y *YouTube) Fetch(ctx context.Context) (Payload, error) {
	if y.apiKey == "" {
		return nil, Errorf(CodeConfig, "no api_key configured")
	}
	type listing struct {
		name   string
		params url.Values
	}
	var lists []listing
	if y.query != "" {
		lists = append(lists, listing{name: "search " + strconv.Quote(y.query), params: url.Values{"q": {y.query}}})
	}
	for _, ch := range y.channels {
		lists = append(lists, listing{name: ch, params: url.Values{"channelId": {ch}, "order": {"date"}}})
	}
	if len(lists) == 0 {
		return nil, Errorf(CodeConfig, "no search_query or channels configured")
	}

	var ids []string
	seen := make(map[string]bool)
	var p partial
	for _, l := range lists {
		found, err := y.search(ctx, l.params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, AsFetchError(ctx.Err())
			}
			p.fail(l.name, err)
			continue
		}
		for _, id := range found {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if err := p.result(len(lists)); err != nil {
		return nil, err
	}
	if len(ids) > y.maxVideos {
		ids = ids[:y.maxVideos]
	}

	out := Videos{Failed: p.failed}
	if len(ids) == 0 {
		return out, nil
	}
	videos, err := y.details(ctx, ids)
	if err != nil {
		return nil, err
	}
	out.Items = videos
	return out, nil
}

func (y *YouTube) search(ctx context.Context, params url.Values) ([]string, error) {
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(y.maxVideos))
	params.Set("key", y.apiKey)

	var raw ytSearch
	if _, err := getJSON(ctx, y.client, y.baseURL+"/search?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw.Items))
	for _, it := range raw.Items {
		if it.ID.VideoID != "" {
			ids = append(ids, it.ID.VideoID)
		}
	}
	return ids, nil
}

// details fetches statistics for ids and returns them in the order given.
func (y *YouTube) details(ctx context.Context, ids []string) ([]Video, error) {
	params := url.Values{
		"part": {"snippet,statistics,contentDetails"},
		"id":   {strings.Join(ids, ",")},
		"key":  {y.apiKey},
	}
	var raw ytVideos
	if _, err := getJSON(ctx, y.client, y.baseURL+"/videos?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}

	byID := make(map[string]Video, len(raw.Items))
	for _, it := range raw.Items {
		views, _ := strconv.ParseInt(it.Statistics.ViewCount, 10, 64)
		byID[it.ID] = Video{
			ID:          it.ID,
			Title:       strings.TrimSpace(it.Snippet.Title),
			Channel:     it.Snippet.ChannelTitle,
			Published:   it.Snippet.PublishedAt,
			Description: PlainText(it.Snippet.Description),
			Views:       views,
			Duration:    ParseISODuration(it.ContentDetails.Duration),
		}
	}
	videos := make([]Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration parses the ISO 8601 durations the API reports, such as
// "PT1H2M10S". Unparsable input yields 0.
func ParseISODuration(s string) time.Duration {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	var d time.Duration
	for i, unit := range []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second} {
		if m[i+1] == "" {
			continue
		}
		n, _ := strconv.Atoi(m[i+1])
		d += time.Duration(n) * unit
	}
	return d
}

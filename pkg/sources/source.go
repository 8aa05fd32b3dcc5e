// Package sources defines the adapters that fetch widget data from external
// services. Each widget kind (hackernews, stocks, rss, sports, github,
// spotify, youtube) has one adapter implementing Source; adapters are built from
// widget configuration through a Registry and are driven by the scheduler.
// Adapters never touch application state: they only return a Payload or a
// *FetchError.
package sources

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// Kind identifies a widget/source kind. The set is closed; adding a kind
// means adding a constant, a Payload type and a factory.
type Kind string

const (
	KindHackerNews Kind = config.TypeHackerNews
	KindStocks     Kind = config.TypeStocks
	KindRSS        Kind = config.TypeRSS
	KindSports     Kind = config.TypeSports
	KindGitHub     Kind = config.TypeGitHub
	KindSpotify    Kind = config.TypeSpotify
	KindYouTube    Kind = config.TypeYouTube
	KindCreature   Kind = config.TypeCreature
)

// ParseKind maps a configured type name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindHackerNews, KindStocks, KindRSS, KindSports, KindGitHub, KindSpotify, KindYouTube, KindCreature:
		return k, nil
	default:
		return "", fmt.Errorf("unknown widget kind %q", s)
	}
}

// Source is the interface every adapter implements.
type Source interface {
	// Kind returns the widget kind this source feeds.
	Kind() Kind

	// Fetch performs one request/decode cycle. It must honor ctx
	// cancellation; the caller applies the outer timeout regardless.
	Fetch(ctx context.Context) (Payload, error)
}

// UserAgent is sent with every outbound request.
var UserAgent = "feedtui/dev"

// DefaultHTTPTimeout bounds a single HTTP round trip inside an adapter.
const DefaultHTTPTimeout = 8 * time.Second

// options holds adapter construction settings shared by every kind.
type options struct {
	client  *http.Client
	baseURL string
	authURL string
}

// Option configures an adapter.
type Option func(*options)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithAuthURL overrides the token endpoint for sources that authenticate
// separately from their API (spotify).
func WithAuthURL(u string) Option {
	return func(o *options) { o.authURL = u }
}

func buildOptions(defaultBase string, opts []Option) options {
	o := options{baseURL: defaultBase}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return o
}

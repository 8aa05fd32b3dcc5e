package config

import (
	"fmt"
	"time"
)

// Widget type names accepted in [[widgets]] entries.
const (
	TypeHackerNews = "hackernews"
	TypeStocks     = "stocks"
	TypeRSS        = "rss"
	TypeSports     = "sports"
	TypeGitHub     = "github"
	TypeSpotify    = "spotify"
	TypeYouTube    = "youtube"
	TypeCreature   = "creature"
)

// KnownTypes lists every widget type in display-menu order.
var KnownTypes = []string{
	TypeCreature,
	TypeHackerNews,
	TypeStocks,
	TypeRSS,
	TypeSports,
	TypeGitHub,
	TypeSpotify,
	TypeYouTube,
}

const (
	// MinRefreshInterval is the floor applied to every widget interval so a
	// misconfigured widget cannot hammer its source.
	MinRefreshInterval = 5 * time.Second

	// DefaultRefreshInterval applies to widgets without their own interval.
	DefaultRefreshInterval = 60 * time.Second

	// DefaultFetchTimeout bounds a single fetch.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultCompanionTick is how often usage XP is credited.
	DefaultCompanionTick = 10 * time.Second
)

// Config is the top-level configuration. It is read-only once the
// dashboard has started.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Companion CompanionConfig `toml:"companion"`
	Widgets   []WidgetConfig  `toml:"widgets" validate:"dive"`

	// Warnings collects non-fatal problems found while loading (unknown
	// keys, intervals raised to the floor).
	Warnings []string `toml:"-"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// GeneralConfig holds dashboard-wide settings.
type GeneralConfig struct {
	RefreshInterval      Duration `toml:"refresh_interval"`
	Theme                string   `toml:"theme" validate:"required"`
	FetchTimeout         Duration `toml:"fetch_timeout"`
	MaxConcurrentFetches int      `toml:"max_concurrent_fetches" validate:"gte=0"`
	CompanionPath        string   `toml:"companion_path"`
	CompanionTick        Duration `toml:"companion_tick"`
	LogFile              string   `toml:"log_file"`
}

// CompanionConfig tunes the companion progression rules.
type CompanionConfig struct {
	XPPerTick      int      `toml:"xp_per_tick" validate:"gte=0"`
	PointsPerLevel int      `toml:"points_per_level" validate:"gte=1"`
	XPCurveBase    int      `toml:"xp_curve_base" validate:"gte=1"`
	ContentWithin  Duration `toml:"content_within"`
	NeutralWithin  Duration `toml:"neutral_within"`

	// Species is only consulted when a fresh companion is created.
	Species string `toml:"species"`
}

// Position is a widget's grid cell. Collisions are allowed; later widgets
// draw over earlier ones.
type Position struct {
	Row int `toml:"row" validate:"gte=0,lte=16"`
	Col int `toml:"col" validate:"gte=0,lte=16"`
}

// WidgetConfig is one [[widgets]] entry. Kind-specific fields are ignored
// by kinds that do not use them.
type WidgetConfig struct {
	Type            string   `toml:"type" validate:"required"`
	ID              string   `toml:"id"`
	Title           string   `toml:"title"`
	Position        Position `toml:"position"`
	RefreshInterval Duration `toml:"refresh_interval"`

	// hackernews
	StoryCount int    `toml:"story_count" validate:"gte=0,lte=100"`
	StoryType  string `toml:"story_type" validate:"omitempty,oneof=top new best ask show"`

	// stocks
	Symbols []string `toml:"symbols" validate:"dive,required"`

	// rss
	Feeds    []string `toml:"feeds" validate:"dive,url"`
	MaxItems int      `toml:"max_items" validate:"gte=0,lte=200"`

	// sports
	Leagues []string `toml:"leagues"`

	// github
	Token             string `toml:"token"`
	Username          string `toml:"username"`
	ShowNotifications *bool  `toml:"show_notifications"`
	ShowPullRequests  *bool  `toml:"show_pull_requests"`
	ShowCommits       *bool  `toml:"show_commits"`
	MaxNotifications  int    `toml:"max_notifications" validate:"gte=0"`
	MaxPullRequests   int    `toml:"max_pull_requests" validate:"gte=0"`
	MaxCommits        int    `toml:"max_commits" validate:"gte=0"`

	// spotify
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`

	// youtube
	APIKey      string   `toml:"api_key"`
	Channels    []string `toml:"channels" validate:"dive,required"`
	SearchQuery string   `toml:"search_query"`
	MaxVideos   int      `toml:"max_videos" validate:"gte=0,lte=50"`

	// creature
	ShowOnStartup bool `toml:"show_on_startup"`
}

// Interval returns the effective refresh interval for the widget, applying
// the general default and the minimum floor.
func (w WidgetConfig) Interval(general GeneralConfig) time.Duration {
	d := w.RefreshInterval.Or(general.RefreshInterval.Or(DefaultRefreshInterval))
	if d < MinRefreshInterval {
		return MinRefreshInterval
	}
	return d
}

// Enabled reports a tri-state flag, defaulting to true when unset.
func Enabled(flag *bool) bool {
	return flag == nil || *flag
}

// normalize fills documented defaults that depend on position in the list
// and records warnings for values that were adjusted.
func (c *Config) normalize() {
	if c.General.Theme == "" {
		c.General.Theme = "dark"
	}
	if c.General.RefreshInterval.Duration > 0 && c.General.RefreshInterval.Duration < MinRefreshInterval {
		c.Warnings = append(c.Warnings, fmt.Sprintf("general.refresh_interval %s raised to %s", c.General.RefreshInterval.Duration, MinRefreshInterval))
		c.General.RefreshInterval = Duration{MinRefreshInterval}
	}

	for i := range c.Widgets {
		w := &c.Widgets[i]
		if w.ID == "" {
			w.ID = fmt.Sprintf("%s-%d", w.Type, i)
		}
		if w.Title == "" {
			w.Title = defaultTitle(w.Type)
		}
		if d := w.RefreshInterval.Duration; d > 0 && d < MinRefreshInterval {
			c.Warnings = append(c.Warnings, fmt.Sprintf("widget %q refresh_interval %s raised to %s", w.ID, d, MinRefreshInterval))
			w.RefreshInterval = Duration{MinRefreshInterval}
		}
		switch w.Type {
		case TypeHackerNews:
			if w.StoryCount == 0 {
				w.StoryCount = 10
			}
			if w.StoryType == "" {
				w.StoryType = "top"
			}
		case TypeRSS:
			if w.MaxItems == 0 {
				w.MaxItems = 15
			}
		case TypeYouTube:
			if w.MaxVideos == 0 {
				w.MaxVideos = 15
			}
		case TypeGitHub:
			if w.MaxNotifications == 0 {
				w.MaxNotifications = 20
			}
			if w.MaxPullRequests == 0 {
				w.MaxPullRequests = 10
			}
			if w.MaxCommits == 0 {
				w.MaxCommits = 10
			}
		}
	}
}

func defaultTitle(kind string) string {
	switch kind {
	case TypeHackerNews:
		return "Hacker News"
	case TypeStocks:
		return "Stocks"
	case TypeRSS:
		return "RSS Feed"
	case TypeSports:
		return "Sports"
	case TypeGitHub:
		return "GitHub"
	case TypeSpotify:
		return "Spotify"
	case TypeYouTube:
		return "YouTube"
	case TypeCreature:
		return "Tui"
	default:
		return kind
	}
}

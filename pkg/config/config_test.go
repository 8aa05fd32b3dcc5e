package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Widgets) != 5 {
		t.Fatalf("expected 5 default widgets, got %d", len(cfg.Widgets))
	}
	if cfg.Widgets[0].Type != TypeCreature {
		t.Errorf("first default widget should be the creature, got %q", cfg.Widgets[0].Type)
	}
	if cfg.General.FetchTimeout.Duration != 10*time.Second {
		t.Errorf("default fetch timeout = %v, want 10s", cfg.General.FetchTimeout.Duration)
	}
}

func TestLoadFromStringParsesWidgets(t *testing.T) {
	cfg, err := LoadFromString(`
[general]
refresh_interval = "30s"
theme = "nord"

[[widgets]]
type = "hackernews"
id = "hn"
position = { row = 0, col = 1 }
story_count = 5

[[widgets]]
type = "stocks"
symbols = ["AAPL", "TSLA"]
refresh_interval = "2m"
position = { row = 1, col = 0 }
`)
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.General.Theme != "nord" {
		t.Errorf("theme = %q, want nord", cfg.General.Theme)
	}
	if len(cfg.Widgets) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(cfg.Widgets))
	}

	hn := cfg.Widgets[0]
	if hn.ID != "hn" || hn.StoryCount != 5 || hn.StoryType != "top" {
		t.Errorf("unexpected hackernews widget: %+v", hn)
	}
	if hn.Title != "Hacker News" {
		t.Errorf("expected default title, got %q", hn.Title)
	}
	if got := hn.Interval(cfg.General); got != 30*time.Second {
		t.Errorf("hn interval = %v, want general default 30s", got)
	}

	stocks := cfg.Widgets[1]
	if stocks.ID != "stocks-1" {
		t.Errorf("generated id = %q, want stocks-1", stocks.ID)
	}
	if got := stocks.Interval(cfg.General); got != 2*time.Minute {
		t.Errorf("stocks interval = %v, want 2m", got)
	}
}

func TestLoadFromStringWithoutWidgetsKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromString("[general]\ntheme = \"light\"\n")
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	if len(cfg.Widgets) != len(DefaultConfig().Widgets) {
		t.Errorf("expected default widgets, got %d", len(cfg.Widgets))
	}
}

func TestIntervalFloor(t *testing.T) {
	cfg, err := LoadFromString(`
[[widgets]]
type = "hackernews"
refresh_interval = "1s"
`)
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	if got := cfg.Widgets[0].Interval(cfg.General); got != MinRefreshInterval {
		t.Errorf("interval = %v, want floor %v", got, MinRefreshInterval)
	}
	if len(cfg.Warnings) == 0 {
		t.Error("expected a warning about the raised interval")
	}
}

func TestUnknownKeysAreWarnings(t *testing.T) {
	cfg, err := LoadFromString(`
[general]
colour = "blue"
`)
	if err != nil {
		t.Fatalf("unknown keys must not be fatal: %v", err)
	}
	found := false
	for _, w := range cfg.Warnings {
		if strings.Contains(w, "colour") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning mentioning colour, got %v", cfg.Warnings)
	}
}

func TestMalformedTOMLIsError(t *testing.T) {
	if _, err := LoadFromString("[general\ntheme = "); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestBadDurationIsError(t *testing.T) {
	if _, err := LoadFromString("[general]\nrefresh_interval = \"soon\"\n"); err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg, err := LoadFromString(`
[[widgets]]
type = "weather"

[[widgets]]
type = "stocks"
id = "dup"

[[widgets]]
type = "rss"
id = "dup"
feeds = ["not a url"]

[[widgets]]
type = "sports"
leagues = ["quidditch"]
`)
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}

	err = cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	want := []string{"unknown widget type", "needs at least one symbol", "duplicate widget id", "url", "unknown league"}
	joined := verr.Error()
	for _, w := range want {
		if !strings.Contains(joined, w) {
			t.Errorf("expected %q in %q", w, joined)
		}
	}
}

func TestValidateCredentialsRequired(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("SPOTIFY_CLIENT_ID", "")
	cfg, err := LoadFromString(`
[[widgets]]
type = "github"

[[widgets]]
type = "spotify"
`)
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for missing credentials")
	}
	if !strings.Contains(err.Error(), "token") || !strings.Contains(err.Error(), "client_id") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateYouTube(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	cfg, err := LoadFromString(`
[[widgets]]
type = "youtube"
`)
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for an unconfigured youtube widget")
	}
	if !strings.Contains(err.Error(), "api_key") || !strings.Contains(err.Error(), "search_query") {
		t.Errorf("unexpected error: %v", err)
	}

	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	cfg, err = LoadFromString(`
[[widgets]]
type = "youtube"
search_query = "golang"
`)
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	w := cfg.Widgets[0]
	if w.APIKey != "yt-key" || w.MaxVideos != 15 || w.Title != "YouTube" {
		t.Errorf("youtube defaults = %+v", w)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FEEDTUI_THEME", "gruvbox")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	cfg, err := LoadFromString(`
[[widgets]]
type = "github"
`)
	if err != nil {
		t.Fatalf("LoadFromString: %v", err)
	}
	if cfg.General.Theme != "gruvbox" {
		t.Errorf("theme = %q, want gruvbox", cfg.General.Theme)
	}
	if cfg.Widgets[0].Token != "ghp_test" {
		t.Errorf("token = %q, want env value", cfg.Widgets[0].Token)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadFromFileRecordsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\ntheme = \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30s", 30 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"", 0, false},
		{"-5s", 0, true},
		{"later", 0, true},
	}
	for _, tt := range tests {
		var d Duration
		err := d.UnmarshalText([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && d.Duration != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, d.Duration, tt.want)
		}
	}
}

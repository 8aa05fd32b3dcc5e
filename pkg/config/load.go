package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrNoConfig is returned by LoadFromFile when the named file is missing.
var ErrNoConfig = errors.New("config file not found")

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/feedtui/config.toml
//  2. ~/.config/feedtui/config.toml
//  3. ~/.feedtui/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. Unlike Load,
// a missing file is an error: the caller asked for that file explicitly.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
		}
		return nil, err
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFromString parses configuration from TOML text.
func LoadFromString(s string) (*Config, error) {
	return LoadFromReader(strings.NewReader(s))
}

// LoadFromReader reads configuration from an io.Reader. Absent optional
// fields take their defaults. A config that declares no widgets at all
// keeps the default widget set.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	defaults := cfg.Widgets
	cfg.Widgets = nil

	meta, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	if !meta.IsDefined("widgets") {
		cfg.Widgets = defaults
	}
	for _, key := range meta.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown config key %q", key.String()))
	}

	applyEnvOverrides(cfg)
	cfg.normalize()
	return cfg, nil
}

// DefaultConfig returns the default configuration: the companion pane plus
// a handful of keyless sources.
func DefaultConfig() *Config {
	cfg := &Config{
		General: GeneralConfig{
			RefreshInterval: Duration{DefaultRefreshInterval},
			Theme:           "dark",
			FetchTimeout:    Duration{DefaultFetchTimeout},
			CompanionPath:   DefaultCompanionPath(),
			CompanionTick:   Duration{DefaultCompanionTick},
			LogFile:         DefaultLogFile(),
		},
		Companion: CompanionConfig{
			XPPerTick:      1,
			PointsPerLevel: 1,
			XPCurveBase:    100,
			ContentWithin:  Duration{24 * time.Hour},
			NeutralWithin:  Duration{72 * time.Hour},
			Species:        "blob",
		},
		Widgets: []WidgetConfig{
			{
				Type:          TypeCreature,
				Position:      Position{Row: 0, Col: 0},
				ShowOnStartup: true,
			},
			{
				Type:       TypeHackerNews,
				Position:   Position{Row: 0, Col: 1},
				StoryCount: 10,
				StoryType:  "top",
			},
			{
				Type:     TypeStocks,
				Position: Position{Row: 1, Col: 0},
				Symbols:  []string{"AAPL", "GOOGL", "MSFT", "NVDA"},
			},
			{
				Type:     TypeRSS,
				Title:    "Tech News",
				Position: Position{Row: 1, Col: 1},
				Feeds:    []string{"https://feeds.arstechnica.com/arstechnica/technology-lab"},
				MaxItems: 10,
			},
			{
				Type:     TypeSports,
				Position: Position{Row: 2, Col: 0},
				Leagues:  []string{"nba", "nfl"},
			},
		},
	}
	cfg.normalize()
	return cfg
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FEEDTUI_THEME"); v != "" {
		cfg.General.Theme = v
	}
	if v := os.Getenv("FEEDTUI_REFRESH_INTERVAL"); v != "" {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err == nil && d.Duration > 0 {
			cfg.General.RefreshInterval = d
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring FEEDTUI_REFRESH_INTERVAL=%q", v))
		}
	}
	for i := range cfg.Widgets {
		w := &cfg.Widgets[i]
		switch w.Type {
		case TypeGitHub:
			if w.Token == "" {
				w.Token = os.Getenv("GITHUB_TOKEN")
			}
		case TypeSpotify:
			if w.ClientID == "" {
				w.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
			}
			if w.ClientSecret == "" {
				w.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
			}
			if w.RefreshToken == "" {
				w.RefreshToken = os.Getenv("SPOTIFY_REFRESH_TOKEN")
			}
		case TypeYouTube:
			if w.APIKey == "" {
				w.APIKey = os.Getenv("YOUTUBE_API_KEY")
			}
		}
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "feedtui", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "feedtui", "config.toml"))
	}

	paths = append(paths, filepath.Join(home, ".feedtui", "config.toml"))
	return paths
}

// DefaultDataDir is where the companion record lives unless configured
// otherwise.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".feedtui")
}

// DefaultCompanionPath returns the per-user companion record location.
func DefaultCompanionPath() string {
	return filepath.Join(DefaultDataDir(), "tui.json")
}

// DefaultLogFile returns $XDG_STATE_HOME/feedtui/feedtui.log, falling back
// to the data directory.
func DefaultLogFile() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, "feedtui", "feedtui.log")
	}
	return filepath.Join(DefaultDataDir(), "feedtui.log")
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

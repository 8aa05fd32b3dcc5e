// Package theme holds the dashboard palettes and turns them into lipgloss
// styles for the terminal's color depth.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// DefaultName is used when the configured theme is unknown.
const DefaultName = "dark"

// Theme defines the complete color palette for the dashboard.
type Theme struct {
	Name string `toml:"name"`

	// Base colors
	Background string `toml:"background"` // hex color e.g. "#1a1b26"
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`

	// Widget panes
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`

	// Fetch status
	StatusOK      string `toml:"status_ok"`
	StatusWarn    string `toml:"status_warn"`
	StatusError   string `toml:"status_error"`
	StatusUnknown string `toml:"status_unknown"`

	// Quotes
	Gain string `toml:"gain"`
	Loss string `toml:"loss"`

	// Companion and skill effects
	Highlight string `toml:"highlight"` // top story, stock alert, selection
	XPFilled  string `toml:"xp_filled"`
	XPEmpty   string `toml:"xp_empty"`

	HelpKey  string `toml:"help_key"`
	HelpDesc string `toml:"help_desc"`
}

// colors returns pointers to every color field, keyed by TOML name.
func (t *Theme) colors() map[string]*string {
	return map[string]*string{
		"background":     &t.Background,
		"foreground":     &t.Foreground,
		"dim":            &t.Dim,
		"accent":         &t.Accent,
		"border":         &t.Border,
		"border_focus":   &t.BorderFocus,
		"title":          &t.Title,
		"status_ok":      &t.StatusOK,
		"status_warn":    &t.StatusWarn,
		"status_error":   &t.StatusError,
		"status_unknown": &t.StatusUnknown,
		"gain":           &t.Gain,
		"loss":           &t.Loss,
		"highlight":      &t.Highlight,
		"xp_filled":      &t.XPFilled,
		"xp_empty":       &t.XPEmpty,
		"help_key":       &t.HelpKey,
		"help_desc":      &t.HelpDesc,
	}
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to the dark theme if not found.
func Get(name string) Theme {
	t, _ := Lookup(name)
	return t
}

// Lookup is Get that also reports whether name was known.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, true
	}
	return registry[DefaultName], false
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a theme under its lowercase name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

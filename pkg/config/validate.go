package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid config: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid config (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// knownLeagues mirrors the league aliases the sports source understands.
var knownLeagues = []string{
	"nba", "nfl", "mlb", "nhl", "mls", "epl", "premier-league",
	"ncaaf", "college-football", "ncaab", "college-basketball",
}

// Validate checks the configuration for structural problems. It returns
// a *ValidationError describing all of them, or nil.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s fails %q", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
		}
	}

	if c.Companion.NeutralWithin.Duration > 0 && c.Companion.NeutralWithin.Duration < c.Companion.ContentWithin.Duration {
		problems = append(problems, "companion.neutral_within must not be shorter than companion.content_within")
	}

	seen := make(map[string]bool, len(c.Widgets))
	for i, w := range c.Widgets {
		where := fmt.Sprintf("widgets[%d]", i)
		if w.ID != "" {
			where = fmt.Sprintf("widget %q", w.ID)
			if seen[w.ID] {
				problems = append(problems, fmt.Sprintf("duplicate widget id %q", w.ID))
			}
			seen[w.ID] = true
		}
		problems = append(problems, w.kindProblems(where)...)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// kindProblems checks the fields each widget type requires.
func (w WidgetConfig) kindProblems(where string) []string {
	var problems []string
	switch w.Type {
	case TypeHackerNews, TypeCreature:
	case TypeStocks:
		if len(w.Symbols) == 0 {
			problems = append(problems, where+": stocks widget needs at least one symbol")
		}
	case TypeRSS:
		if len(w.Feeds) == 0 {
			problems = append(problems, where+": rss widget needs at least one feed")
		}
	case TypeSports:
		if len(w.Leagues) == 0 {
			problems = append(problems, where+": sports widget needs at least one league")
		}
		for _, l := range w.Leagues {
			if !slices.Contains(knownLeagues, strings.ToLower(l)) {
				problems = append(problems, fmt.Sprintf("%s: unknown league %q", where, l))
			}
		}
	case TypeGitHub:
		if w.Token == "" {
			problems = append(problems, where+": github widget needs a token (or GITHUB_TOKEN)")
		}
	case TypeSpotify:
		if w.ClientID == "" || w.ClientSecret == "" || w.RefreshToken == "" {
			problems = append(problems, where+": spotify widget needs client_id, client_secret and refresh_token")
		}
	case TypeYouTube:
		if w.APIKey == "" {
			problems = append(problems, where+": youtube widget needs an api_key (or YOUTUBE_API_KEY)")
		}
		if len(w.Channels) == 0 && strings.TrimSpace(w.SearchQuery) == "" {
			problems = append(problems, where+": youtube widget needs channels or a search_query")
		}
	default:
		problems = append(problems, fmt.Sprintf("%s: unknown widget type %q (want one of %s)", where, w.Type, strings.Join(KnownTypes, ", ")))
	}
	return problems
}

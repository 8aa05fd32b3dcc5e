package sources

import (
	"context"
	"net/http"
	"strings"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// ESPNAPI is the base of ESPN's public scoreboard API.
const ESPNAPI = "https://site.api.espn.com/apis/site/v2/sports"

// espnLeagues maps configured league names to ESPN sport/league paths.
var espnLeagues = map[string]string{
	"nba":                "basketball/nba",
	"nfl":                "football/nfl",
	"mlb":                "baseball/mlb",
	"nhl":                "hockey/nhl",
	"mls":                "soccer/usa.1",
	"epl":                "soccer/eng.1",
	"premier-league":     "soccer/eng.1",
	"ncaaf":              "football/college-football",
	"college-football":   "football/college-football",
	"ncaab":              "basketball/mens-college-basketball",
	"college-basketball": "basketball/mens-college-basketball",
}

// LeaguePath returns the ESPN path for a league name.
func LeaguePath(league string) (string, bool) {
	p, ok := espnLeagues[strings.ToLower(league)]
	return p, ok
}

// Sports fetches today's scoreboard for each configured league.
type Sports struct {
	client  *http.Client
	baseURL string
	leagues []string
}

// NewSports builds the adapter for a sports widget.
func NewSports(w config.WidgetConfig, opts ...Option) *Sports {
	o := buildOptions(ESPNAPI, opts)
	return &Sports{client: o.client, baseURL: o.baseURL, leagues: w.Leagues}
}

// Kind returns KindSports.
func (s *Sports) Kind() Kind { return KindSports }

type espnScoreboard struct {
	Events []struct {
		Name   string `json:"name"`
		Status struct {
			Type struct {
				State       string `json:"state"`
				ShortDetail string `json:"shortDetail"`
				Description string `json:"description"`
			} `json:"type"`
		} `json:"status"`
		Competitions []struct {
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					Abbreviation string `json:"abbreviation"`
					DisplayName  string `json:"displayName"`
				} `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
		Links []struct {
			Href string `json:"href"`
		} `json:"links"`
	} `json:"events"`
}

// Fetch requests each league's scoreboard. Unknown or failing leagues are
// reported in Games.Failed; the fetch only fails when every league does.
func (s *Sports) Fetch(ctx context.Context) (Payload, error) {
	if len(s.leagues) == 0 {
		return nil, Errorf(CodeConfig, "no leagues configured")
	}

	var out Games
	var p partial
	for _, league := range s.leagues {
		games, err := s.league(ctx, league)
		if err != nil {
			if ctx.Err() != nil {
				return nil, AsFetchError(ctx.Err())
			}
			p.fail(league, err)
			continue
		}
		out.Items = append(out.Items, games...)
	}
	if err := p.result(len(s.leagues)); err != nil {
		return nil, err
	}
	out.Failed = p.failed
	return out, nil
}

func (s *Sports) league(ctx context.Context, league string) ([]Game, error) {
	path, ok := LeaguePath(league)
	if !ok {
		return nil, Errorf(CodeConfig, "unknown league %q", league)
	}

	var sb espnScoreboard
	if _, err := getJSON(ctx, s.client, s.baseURL+"/"+path+"/scoreboard", nil, &sb); err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(sb.Events))
	for _, ev := range sb.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		g := Game{
			League: strings.ToUpper(league),
			Status: ev.Status.Type.ShortDetail,
			State:  ev.Status.Type.State,
		}
		if g.Status == "" {
			g.Status = ev.Status.Type.Description
		}
		for _, c := range ev.Competitions[0].Competitors {
			name := c.Team.Abbreviation
			if name == "" {
				name = c.Team.DisplayName
			}
			switch c.HomeAway {
			case "home":
				g.Home, g.HomeScore = name, c.Score
			case "away":
				g.Away, g.AwayScore = name, c.Score
			}
		}
		if g.Home == "" || g.Away == "" {
			continue
		}
		if len(ev.Links) > 0 {
			g.URL = ev.Links[0].Href
		}
		games = append(games, g)
	}
	return games, nil
}

package sources

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/feedtui/pkg/config"
)

// Spotify endpoints.
const (
	SpotifyAPI      = "https://api.spotify.com/v1"
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// Spotify exchanges the configured refresh token for an access token and
// reads the current playback.
type Spotify struct {
	client       *http.Client
	baseURL      string
	authURL      string
	clientID     string
	clientSecret string
	refreshToken string

	// access token cache, touched only from Fetch; the scheduler never
	// runs two fetches of one widget at once.
	accessToken string
	expiresAt   time.Time
	now         func() time.Time
}

// NewSpotify builds the adapter for a spotify widget.
func NewSpotify(w config.WidgetConfig, opts ...Option) *Spotify {
	o := buildOptions(SpotifyAPI, opts)
	auth := o.authURL
	if auth == "" {
		auth = SpotifyTokenURL
	}
	return &Spotify{
		client:       o.client,
		baseURL:      strings.TrimRight(o.baseURL, "/"),
		authURL:      auth,
		clientID:     w.ClientID,
		clientSecret: w.ClientSecret,
		refreshToken: w.RefreshToken,
		now:          time.Now,
	}
}

// Kind returns KindSpotify.
func (s *Spotify) Kind() Kind { return KindSpotify }

// Fetch returns the current playback. No active device (204) yields an
// empty Playback, not an error.
func (s *Spotify) Fetch(ctx context.Context) (Payload, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	var raw struct {
		IsPlaying  bool `json:"is_playing"`
		ProgressMs int  `json:"progress_ms"`
		Item       *struct {
			Name       string `json:"name"`
			DurationMs int    `json:"duration_ms"`
			Artists    []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name string `json:"name"`
			} `json:"album"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"item"`
	}

	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	status, err := getJSON(ctx, s.client, s.baseURL+"/me/player/currently-playing", h, &raw)
	if err != nil {
		if status == http.StatusUnauthorized {
			s.accessToken = ""
		}
		return nil, err
	}
	if status == http.StatusNoContent || raw.Item == nil {
		return Playback{}, nil
	}

	artists := make([]string, 0, len(raw.Item.Artists))
	for _, a := range raw.Item.Artists {
		artists = append(artists, a.Name)
	}
	return Playback{
		Track:     raw.Item.Name,
		Artist:    strings.Join(artists, ", "),
		Album:     raw.Item.Album.Name,
		IsPlaying: raw.IsPlaying,
		Progress:  time.Duration(raw.ProgressMs) * time.Millisecond,
		Duration:  time.Duration(raw.Item.DurationMs) * time.Millisecond,
		URL:       raw.Item.ExternalURLs.Spotify,
	}, nil
}

// token returns a cached access token or refreshes it.
func (s *Spotify) token(ctx context.Context) (string, error) {
	if s.accessToken != "" && s.now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.clientID == "" || s.clientSecret == "" || s.refreshToken == "" {
		return "", Errorf(CodeConfig, "missing spotify credentials")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", s.refreshToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &FetchError{Code: CodeConfig, Message: "bad token url", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.clientID, s.clientSecret)

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if _, err := doJSON(s.client, req, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", Errorf(CodeDecode, "token response had no access_token")
	}

	s.accessToken = tok.AccessToken
	// Treat the token as expired a minute early.
	s.expiresAt = s.now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return s.accessToken, nil
}

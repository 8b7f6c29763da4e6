// Package publish uploads finished rehearsals to a Spotify show as podcast
// episodes, authenticating with the client-credentials flow.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	"rehearsals/internal/config"
)

const (
	defaultAPIBase  = "https://api.spotify.com"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
	episodeURLBase  = "https://open.spotify.com/episode/"

	episodeLanguage = "en"
	maxErrorBody    = 4096
)

var ErrMissingConfig = errors.New("missing required environment variables")

// Show is the informational metadata of the target podcast show.
type Show struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Publisher     string `json:"publisher"`
	TotalEpisodes int    `json:"total_episodes"`
}

// Episode is one entry of the show's episode listing.
type Episode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// Client talks to the Spotify API for one configured show. A constructed
// Client has already verified its credentials against the show; callers never
// see a half-initialized one.
type Client struct {
	httpClient *http.Client
	apiBase    string
	showID     string
	log        *zap.SugaredLogger
	now        func() time.Time
}

// New builds a client and probes the target show. Any missing configuration
// value or a failed probe is a construction error.
func New(ctx context.Context, cfg config.SpotifyConfig, log *zap.SugaredLogger) (*Client, error) {
	return newClient(ctx, cfg, defaultAPIBase, defaultTokenURL, log)
}

// NewWithEndpoints is for tests that stand in for the Spotify API locally.
func NewWithEndpoints(ctx context.Context, cfg config.SpotifyConfig, apiBase, tokenURL string, log *zap.SugaredLogger) (*Client, error) {
	return newClient(ctx, cfg, apiBase, tokenURL, log)
}

func newClient(ctx context.Context, cfg config.SpotifyConfig, apiBase, tokenURL string, log *zap.SugaredLogger) (*Client, error) {
	if missing := cfg.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}
	c := &Client{
		httpClient: creds.Client(ctx),
		apiBase:    apiBase,
		showID:     cfg.ShowID,
		log:        log,
		now:        time.Now,
	}

	// Reachability check: fetch the show once. This also forces the first
	// token exchange, so credential problems surface here.
	if _, err := c.fetchShow(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize Spotify client: %w", err)
	}
	return c, nil
}

// ShowDetails returns the show metadata. Informational only, so it fails
// soft: on error it logs and returns the zero Show.
func (c *Client) ShowDetails(ctx context.Context) Show {
	show, err := c.fetchShow(ctx)
	if err != nil {
		c.log.Warnw("fetch show details failed", "show", c.showID, "error", err)
		return Show{}
	}
	return show
}

// Episodes lists up to limit recent episodes. Fails soft like ShowDetails.
func (c *Client) Episodes(ctx context.Context, limit int) []Episode {
	endpoint := c.showURL() + "/episodes?limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Warnw("build episode listing request failed", "error", err)
		return nil
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("list episodes failed", "show", c.showID, "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warnw("list episodes failed", "show", c.showID, "status", resp.StatusCode)
		return nil
	}

	var body struct {
		Items []Episode `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warnw("decode episode listing failed", "error", err)
		return nil
	}
	return body.Items
}

// UploadEpisode posts the audio to the show's episode endpoint and returns
// the new episode id. Anything but 201 is a hard error carrying the response
// body; an id is never fabricated.
func (c *Client) UploadEpisode(ctx context.Context, audio []byte, title, description string) (string, error) {
	form := url.Values{}
	form.Set("name", title)
	form.Set("description", description)
	form.Set("language", episodeLanguage)
	form.Set("audio", string(audio))
	form.Set("publish_date", c.now().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.showURL()+"/episodes",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload episode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("upload failed with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if created.ID == "" {
		return "", errors.New("upload response carried no episode id")
	}
	return created.ID, nil
}

// EpisodeURL derives the public page for an episode id. Empty in, empty out.
func (c *Client) EpisodeURL(episodeID string) string {
	if episodeID == "" {
		return ""
	}
	return episodeURLBase + episodeID
}

func (c *Client) fetchShow(ctx context.Context) (Show, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.showURL(), nil)
	if err != nil {
		return Show{}, fmt.Errorf("create show request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Show{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Show{}, fmt.Errorf("show lookup returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var show Show
	if err := json.NewDecoder(resp.Body).Decode(&show); err != nil {
		return Show{}, fmt.Errorf("decode show: %w", err)
	}
	return show, nil
}

func (c *Client) showURL() string {
	return c.apiBase + "/v1/shows/" + url.PathEscape(c.showID)
}

package publish

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehearsals/internal/config"
)

func testSpotifyConfig() config.SpotifyConfig {
	return config.SpotifyConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		ShowID:       "show123",
	}
}

// newAPIServer fakes the token endpoint and the show API. The mux is extended
// per test for upload/listing behavior.
func newAPIServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func handleShow(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/shows/show123", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"show123","name":"rehearsals","publisher":"me","total_episodes":2}`))
	})
}

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := newAPIServer(t, mux)
	c, err := NewWithEndpoints(context.Background(), testSpotifyConfig(), srv.URL, srv.URL+"/api/token", nil)
	require.NoError(t, err)
	return c
}

func TestNew_MissingConfig(t *testing.T) {
	t.Parallel()

	cfg := testSpotifyConfig()
	cfg.ClientSecret = ""
	_, err := New(context.Background(), cfg, nil)
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "SPOTIFY_CLIENT_SECRET")
}

func TestNew_ProbeFailure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/shows/show123", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":404}}`, http.StatusNotFound)
	})
	srv := newAPIServer(t, mux)

	_, err := NewWithEndpoints(context.Background(), testSpotifyConfig(), srv.URL, srv.URL+"/api/token", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize Spotify client")
}

func TestNew_SendsBearerToken(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/shows/show123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"show123"}`))
	})
	newTestClient(t, mux)
}

func TestShowDetails(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	handleShow(mux)
	c := newTestClient(t, mux)

	show := c.ShowDetails(context.Background())
	assert.Equal(t, "rehearsals", show.Name)
	assert.Equal(t, 2, show.TotalEpisodes)
}

func TestShowDetails_FailsSoft(t *testing.T) {
	t.Parallel()

	ok := true
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/shows/show123", func(w http.ResponseWriter, r *http.Request) {
		if !ok {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"id":"show123"}`))
	})
	c := newTestClient(t, mux)

	ok = false
	show := c.ShowDetails(context.Background())
	assert.Equal(t, Show{}, show, "informational read must return empty, not propagate")
}

func TestEpisodes(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	handleShow(mux)
	mux.HandleFunc("GET /v1/shows/show123/episodes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"items":[{"id":"ep1","name":"Morning"},{"id":"ep2","name":"Evening"}]}`))
	})
	c := newTestClient(t, mux)

	eps := c.Episodes(context.Background(), 10)
	require.Len(t, eps, 2)
	assert.Equal(t, "ep1", eps[0].ID)
	assert.Equal(t, "Evening", eps[1].Name)
}

func TestEpisodes_FailsSoft(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	handleShow(mux)
	mux.HandleFunc("GET /v1/shows/show123/episodes", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	c := newTestClient(t, mux)

	assert.Nil(t, c.Episodes(context.Background(), 5))
}

func TestUploadEpisode(t *testing.T) {
	t.Parallel()

	audio := []byte{0x01, 0x02, 0xff}
	mux := http.NewServeMux()
	handleShow(mux)
	mux.HandleFunc("POST /v1/shows/show123/episodes", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Enhanced: Breathe deeply and", r.PostForm.Get("name"))
		assert.Equal(t, "Enhanced: Breathe deeply and relax", r.PostForm.Get("description"))
		assert.Equal(t, "en", r.PostForm.Get("language"))
		assert.Equal(t, string(audio), r.PostForm.Get("audio"))
		assert.Equal(t, "2025-11-02T10:00:00Z", r.PostForm.Get("publish_date"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ep-new"}`))
	})
	c := newTestClient(t, mux)
	c.now = func() time.Time { return time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC) }

	id, err := c.UploadEpisode(context.Background(), audio,
		"Enhanced: Breathe deeply and", "Enhanced: Breathe deeply and relax")
	require.NoError(t, err)
	assert.Equal(t, "ep-new", id)
}

func TestUploadEpisode_NonCreatedIsHardError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	handleShow(mux)
	mux.HandleFunc("POST /v1/shows/show123/episodes", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusForbidden)
	})
	c := newTestClient(t, mux)

	_, err := c.UploadEpisode(context.Background(), []byte("a"), "t", "d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestUploadEpisode_MissingIDIsAnError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	handleShow(mux)
	mux.HandleFunc("POST /v1/shows/show123/episodes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})
	c := newTestClient(t, mux)

	_, err := c.UploadEpisode(context.Background(), []byte("a"), "t", "d")
	require.Error(t, err)
}

func TestEpisodeURL(t *testing.T) {
	t.Parallel()

	c := &Client{}
	assert.Equal(t, "https://open.spotify.com/episode/ep1", c.EpisodeURL("ep1"))
	assert.Equal(t, "", c.EpisodeURL(""))
}

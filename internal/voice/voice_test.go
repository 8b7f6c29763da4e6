package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehearsals/internal/config"
)

func testConfig() config.ElevenLabsConfig {
	cfg := config.Defaults().ElevenLabs
	cfg.APIKey = "test-key"
	return cfg
}

func TestSynthesize_Success(t *testing.T) {
	t.Parallel()

	audio := []byte{0xff, 0xf3, 0x44, 0x00, 0x11}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/21m00Tcm4TlvDq8ikWAM", r.URL.Path)
		assert.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))

		var req struct {
			Text          string `json:"text"`
			ModelID       string `json:"model_id"`
			VoiceSettings struct {
				Stability       float64 `json:"stability"`
				SimilarityBoost float64 `json:"similarity_boost"`
				UseSpeakerBoost bool    `json:"use_speaker_boost"`
			} `json:"voice_settings"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Enhanced: breathe", req.Text)
		assert.Equal(t, "eleven_monolingual_v1", req.ModelID)
		assert.InDelta(t, 0.5, req.VoiceSettings.Stability, 1e-9)
		assert.True(t, req.VoiceSettings.UseSpeakerBoost)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	c := NewWithBaseURL(testConfig(), srv.URL)
	got, err := c.Synthesize(context.Background(), "Enhanced: breathe")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestSynthesize_EmptyText(t *testing.T) {
	t.Parallel()

	c := NewWithBaseURL(testConfig(), "http://127.0.0.1:0")
	_, err := c.Synthesize(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestSynthesize_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(testConfig(), srv.URL)
	_, err := c.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestSynthesize_EmptyAudioIsAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWithBaseURL(testConfig(), srv.URL)
	_, err := c.Synthesize(context.Background(), "hello")
	require.ErrorIs(t, err, ErrEmptyAudio)
}

func TestSynthesize_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewWithBaseURL(testConfig(), srv.URL)
	_, err := c.Synthesize(context.Background(), "hello")
	require.Error(t, err)
}

// Package voice synthesizes speech from text through the ElevenLabs HTTP API.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"rehearsals/internal/config"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	synthesizePath = "/v1/text-to-speech/"

	headerAPIKey      = "xi-api-key"
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	contentTypeJSON   = "application/json"
	acceptMPEG        = "audio/mpeg"

	defaultTimeout = 60 * time.Second
	maxErrorBody   = 4096
)

var (
	ErrEmptyText  = errors.New("text cannot be empty")
	ErrEmptyAudio = errors.New("received empty audio data")
)

// Client calls the ElevenLabs text-to-speech endpoint and returns the MP3
// clip as a single buffer. It never hides a failure behind empty bytes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cfg        config.ElevenLabsConfig
}

// request is the JSON payload of a synthesis call.
type request struct {
	Text          string   `json:"text"`
	ModelID       string   `json:"model_id"`
	VoiceSettings settings `json:"voice_settings"`
}

type settings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

func New(cfg config.ElevenLabsConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		cfg:        cfg,
	}
}

// NewWithBaseURL is for tests that point the client at a local server.
func NewWithBaseURL(cfg config.ElevenLabsConfig, baseURL string) *Client {
	c := New(cfg)
	c.baseURL = baseURL
	return c
}

// Synthesize converts text to a voiced MP3 clip.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	payload, err := json.Marshal(request{
		Text:    text,
		ModelID: c.cfg.ModelID,
		VoiceSettings: settings{
			Stability:       c.cfg.Stability,
			SimilarityBoost: c.cfg.Similarity,
			Style:           c.cfg.Style,
			UseSpeakerBoost: c.cfg.SpeakerBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis request: %w", err)
	}

	endpoint := c.baseURL + synthesizePath + url.PathEscape(c.cfg.VoiceID) +
		"?output_format=" + url.QueryEscape(c.cfg.OutputFormat)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create synthesis request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.cfg.APIKey)
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAccept, acceptMPEG)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voice synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if len(body) == 0 {
			body = []byte(resp.Status)
		}
		return nil, fmt.Errorf("voice synthesis error: status=%d, body=%s",
			resp.StatusCode, bytes.TrimSpace(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}
	return audio, nil
}

// Package config loads process configuration from the environment, with a
// .env file honored the way the original tooling honors it.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("ELEVENLABS_API_KEY is not set")

type Config struct {
	// Voice synthesis. The API key is required: without it the app cannot
	// produce audio and refuses to start.
	ElevenLabs ElevenLabsConfig

	// Publishing. All three values are required for the publishing client;
	// with any of them missing, publishing is disabled rather than fatal.
	Spotify SpotifyConfig

	// LogFile is where structured logs go. The TUI owns the terminal, so
	// with no file configured logging is a no-op.
	LogFile string `env:"REHEARSALS_LOG"`
}

type ElevenLabsConfig struct {
	APIKey       string  `env:"ELEVENLABS_API_KEY"`
	VoiceID      string  `env:"ELEVENLABS_VOICE_ID"`
	ModelID      string  `env:"ELEVENLABS_MODEL_ID"`
	OutputFormat string  `env:"ELEVENLABS_OUTPUT_FORMAT"`
	Stability    float64 `env:"ELEVENLABS_STABILITY"`
	Similarity   float64 `env:"ELEVENLABS_SIMILARITY"`
	Style        float64 `env:"ELEVENLABS_STYLE"`
	SpeakerBoost bool    `env:"ELEVENLABS_SPEAKER_BOOST"`
}

type SpotifyConfig struct {
	ClientID     string `env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
	ShowID       string `env:"SPOTIFY_SHOW_ID"`
}

// Defaults returns the configuration before the environment is applied.
func Defaults() *Config {
	return &Config{
		ElevenLabs: ElevenLabsConfig{
			VoiceID:      "21m00Tcm4TlvDq8ikWAM",
			ModelID:      "eleven_monolingual_v1",
			OutputFormat: "mp3_44100_128",
			Stability:    0.5,
			Similarity:   0.75,
			Style:        0.0,
			SpeakerBoost: true,
		},
	}
}

// Load reads .env (if present) and the environment over the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// ValidateVoice checks the fatal-at-startup requirement.
func (c *Config) ValidateVoice() error {
	if strings.TrimSpace(c.ElevenLabs.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// PublishingConfigured reports whether the publishing client can be built.
func (c *Config) PublishingConfigured() bool {
	return len(c.Spotify.Missing()) == 0
}

// Missing lists the names of unset publishing variables, for the degraded
// startup message.
func (s SpotifyConfig) Missing() []string {
	var out []string
	if strings.TrimSpace(s.ClientID) == "" {
		out = append(out, "SPOTIFY_CLIENT_ID")
	}
	if strings.TrimSpace(s.ClientSecret) == "" {
		out = append(out, "SPOTIFY_CLIENT_SECRET")
	}
	if strings.TrimSpace(s.ShowID) == "" {
		out = append(out, "SPOTIFY_SHOW_ID")
	}
	return out
}

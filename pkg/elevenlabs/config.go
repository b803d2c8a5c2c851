package elevenlabs

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the HTTPS address of the ElevenLabs API.
	DefaultBaseURL = "https://api.elevenlabs.io"
	// DefaultWSBaseURL is the WebSocket address used for realtime sessions.
	DefaultWSBaseURL = "wss://api.elevenlabs.io"

	EnvAPIKey    = "ELEVENLABS_API_KEY"
	EnvBaseURL   = "ELEVENLABS_BASE_URL"
	EnvWSBaseURL = "ELEVENLABS_WS_URL"

	defaultTimeout = 30 * time.Second
)

// Config holds the connection configuration for a Client. It is resolved
// once at construction time and never mutated afterwards, so a single Client
// is safe to share across goroutines.
//
// The credential has no default: a Config without an APIKey fails validation.
// Base addresses default to the public API endpoints.
type Config struct {
	APIKey     string
	BaseURL    string
	WSBaseURL  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *Logger
}

// NewConfig builds a Config from the environment. A .env file is loaded if
// one exists. Fields not present in the environment are left empty and filled
// with defaults during client construction.
func NewConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		APIKey:    os.Getenv(EnvAPIKey),
		BaseURL:   os.Getenv(EnvBaseURL),
		WSBaseURL: os.Getenv(EnvWSBaseURL),
	}
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.WSBaseURL == "" {
		c.WSBaseURL = DefaultWSBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.Logger == nil {
		c.Logger = GetGlobalLogger()
	}
}

// Validate checks that the configuration is usable: a non-empty credential
// and well-formed base addresses.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return newConfigError("API key is required: pass WithAPIKey or set " + EnvAPIKey)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return newConfigError("invalid base URL: " + c.BaseURL)
	}

	w, err := url.Parse(c.WSBaseURL)
	if err != nil || (w.Scheme != "ws" && w.Scheme != "wss") || w.Host == "" {
		return newConfigError("invalid WebSocket base URL: " + c.WSBaseURL)
	}

	return nil
}

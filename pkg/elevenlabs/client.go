package elevenlabs

import (
	"net/http"
	"time"
)

// Option configures a Client at construction time. Options take precedence
// over an injected Config, which takes precedence over the environment.
type Option func(*Config)

// WithAPIKey sets the credential sent in the xi-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithBaseURL overrides the HTTPS API base address.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) { c.BaseURL = baseURL }
}

// WithWSBaseURL overrides the WebSocket base address.
func WithWSBaseURL(wsBaseURL string) Option {
	return func(c *Config) { c.WSBaseURL = wsBaseURL }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.Timeout = timeout }
}

// WithHTTPClient supplies a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTPClient = hc }
}

// WithLogger supplies a custom logger.
func WithLogger(l *Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// Client maps methods onto the ElevenLabs HTTP and WebSocket API surface.
// Each endpoint field is a thin wrapper delegating to the shared Transport.
// The Client holds only immutable connection configuration and is safe to
// share across goroutines.
type Client struct {
	cfg       *Config
	transport *Transport

	TextToSpeech              *TextToSpeechService
	SpeechToSpeech            *SpeechToSpeechService
	Voices                    *VoicesService
	Samples                   *SamplesService
	History                   *HistoryService
	Models                    *ModelsService
	User                      *UserService
	Usage                     *UsageService
	Dubbing                   *DubbingService
	AudioIsolation            *AudioIsolationService
	SoundGeneration           *SoundGenerationService
	Workspace                 *WorkspaceService
	PronunciationDictionaries *PronunciationService
}

// NewClient constructs a Client from the environment plus explicit options.
func NewClient(opts ...Option) (*Client, error) {
	return NewClientWithConfig(nil, opts...)
}

// NewClientWithConfig constructs a Client, resolving configuration once with
// precedence explicit option > injected cfg > environment. A missing
// credential is a construction-time failure.
func NewClientWithConfig(cfg *Config, opts ...Option) (*Client, error) {
	resolved := NewConfig()
	if cfg != nil {
		if cfg.APIKey != "" {
			resolved.APIKey = cfg.APIKey
		}
		if cfg.BaseURL != "" {
			resolved.BaseURL = cfg.BaseURL
		}
		if cfg.WSBaseURL != "" {
			resolved.WSBaseURL = cfg.WSBaseURL
		}
		if cfg.Timeout != 0 {
			resolved.Timeout = cfg.Timeout
		}
		if cfg.HTTPClient != nil {
			resolved.HTTPClient = cfg.HTTPClient
		}
		if cfg.Logger != nil {
			resolved.Logger = cfg.Logger
		}
	}
	for _, opt := range opts {
		opt(resolved)
	}
	resolved.applyDefaults()
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	t := newTransport(resolved)
	return &Client{
		cfg:       resolved,
		transport: t,

		TextToSpeech:              &TextToSpeechService{transport: t},
		SpeechToSpeech:            &SpeechToSpeechService{transport: t},
		Voices:                    &VoicesService{transport: t},
		Samples:                   &SamplesService{transport: t},
		History:                   &HistoryService{transport: t},
		Models:                    &ModelsService{transport: t},
		User:                      &UserService{transport: t},
		Usage:                     &UsageService{transport: t},
		Dubbing:                   &DubbingService{transport: t},
		AudioIsolation:            &AudioIsolationService{transport: t},
		SoundGeneration:           &SoundGenerationService{transport: t},
		Workspace:                 &WorkspaceService{transport: t},
		PronunciationDictionaries: &PronunciationService{transport: t},
	}, nil
}

// BaseURL returns the resolved HTTPS base address.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

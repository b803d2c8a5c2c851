package elevenlabs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := NewClient()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeConfigInvalid), "got %v", err)
}

func TestNewClientFromEnvironment(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvBaseURL, "http://localhost:9999")
	t.Setenv(EnvWSBaseURL, "")

	c, err := NewClient()
	require.NoError(t, err)
	assert.Equal(t, "env-key", c.cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", c.BaseURL())
	assert.Equal(t, DefaultWSBaseURL, c.cfg.WSBaseURL)
	assert.Equal(t, defaultTimeout, c.cfg.Timeout)
}

func TestConfigPrecedence(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvBaseURL, "http://env.example")

	// Injected config beats the environment.
	c, err := NewClientWithConfig(&Config{APIKey: "cfg-key"})
	require.NoError(t, err)
	assert.Equal(t, "cfg-key", c.cfg.APIKey)
	assert.Equal(t, "http://env.example", c.BaseURL())

	// Explicit options beat both.
	c, err = NewClientWithConfig(&Config{APIKey: "cfg-key", BaseURL: "http://cfg.example"},
		WithAPIKey("opt-key"),
		WithBaseURL("http://opt.example"))
	require.NoError(t, err)
	assert.Equal(t, "opt-key", c.cfg.APIKey)
	assert.Equal(t, "http://opt.example", c.BaseURL())
}

func TestNewClientDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvWSBaseURL, "")

	c, err := NewClient(WithAPIKey("k"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultWSBaseURL, c.cfg.WSBaseURL)
}

func TestNewClientRejectsBadURLs(t *testing.T) {
	_, err := NewClient(WithAPIKey("k"), WithBaseURL("ftp://example.com"))
	assert.True(t, IsCode(err, ErrCodeConfigInvalid), "got %v", err)

	_, err = NewClient(WithAPIKey("k"), WithWSBaseURL("http://example.com"))
	assert.True(t, IsCode(err, ErrCodeConfigInvalid), "got %v", err)
}

func TestWithTimeoutAndHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c, err := NewClient(WithAPIKey("k"), WithTimeout(5*time.Second), WithHTTPClient(hc))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, c.cfg.Timeout)
	assert.Same(t, hc, c.transport.httpClient)
}

func TestClientServicesShareTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shared-key", r.Header.Get("xi-api-key"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/models":
			_, _ = w.Write([]byte(`[{"model_id":"eleven_multilingual_v2","name":"Multilingual v2"}]`))
		case "/v1/user":
			_, _ = w.Write([]byte(`{"user_id":"u1"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("shared-key"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	models, err := c.Models.List(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "eleven_multilingual_v2", models[0].ModelID)

	user, err := c.User.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
}

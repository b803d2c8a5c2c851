package elevenlabs

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDubbingCreateFromFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/dubbing", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "es", r.FormValue("target_lang"))
		assert.Equal(t, "en", r.FormValue("source_lang"))
		assert.Equal(t, "2", r.FormValue("num_speakers"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "interview.mp4", header.Filename)
		assert.Equal(t, "video/mp4", header.Header.Get("Content-Type"))
		b := new(bytes.Buffer)
		_, _ = b.ReadFrom(file)
		assert.Equal(t, "video-bytes", b.String())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dubbing_id":"abc123","status":"dubbing"}`))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	job, err := c.Dubbing.Create(context.Background(), &DubbingRequest{
		File:           NewFilePart(strings.NewReader("video-bytes"), "interview.mp4"),
		SourceLanguage: "en",
		TargetLanguage: "es",
		NumSpeakers:    Int(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", job.DubbingID)
	assert.Equal(t, "dubbing", job.Status)
}

func TestDubbingCreateFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "https://example.com/talk.mp4", r.FormValue("source_url"))
		assert.Empty(t, r.MultipartForm.File["file"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dubbing_id":"d2","status":"dubbing"}`))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	job, err := c.Dubbing.Create(context.Background(), &DubbingRequest{
		SourceURL:      "https://example.com/talk.mp4",
		TargetLanguage: "fr",
	})
	require.NoError(t, err)
	assert.Equal(t, "d2", job.DubbingID)
}

func TestDubbingGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/dubbing/abc123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dubbing_id":"abc123","status":"dubbed","target_languages":["es"]}`))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	job, err := c.Dubbing.Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "dubbed", job.Status)
	assert.Equal(t, []string{"es"}, job.TargetLanguages)
}

func TestDubbingTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/dubbing/abc123/transcript/es", r.URL.Path)
		assert.Equal(t, "srt", r.URL.Query().Get("format_type"))
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("1\n00:00:00,000 --> 00:00:01,000\nHola\n"))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := c.Dubbing.Transcript(context.Background(), "abc123", "es", "srt")
	require.NoError(t, err)
	assert.Contains(t, got, "Hola")
}

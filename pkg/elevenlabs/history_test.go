package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/history", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		assert.Equal(t, "h0", r.URL.Query().Get("start_after_history_item_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"history": [
				{"history_item_id": "h1", "voice_id": "v1", "text": "hello", "date_unix": 1714000000},
				{"history_item_id": "h2", "voice_id": "v1", "text": "world", "date_unix": 1713000000}
			],
			"last_history_item_id": "h2",
			"has_more": true
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	page, err := c.History.List(context.Background(), &HistoryListOptions{PageSize: 25, StartAfterHistoryItemID: "h0"})
	require.NoError(t, err)
	require.Len(t, page.History, 2)
	assert.Equal(t, "h1", page.History[0].HistoryItemID)
	assert.Equal(t, "h2", page.LastHistoryItemID)
	assert.True(t, page.HasMore)
}

func TestHistoryListUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("bad-key"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.History.List(context.Background(), nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrCodeAuthentication, apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid api key", apiErr.Message)
}

func TestHistoryAudio(t *testing.T) {
	audio := []byte{0x49, 0x44, 0x33}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/history/h1/audio", r.URL.Path)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := c.History.Audio(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestHistoryDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/history/download", r.URL.Path)
		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"h1", "h2"}, body["history_item_ids"])
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("PK..."))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := c.History.Download(context.Background(), []string{"h1", "h2"})
	require.NoError(t, err)
	assert.Equal(t, []byte("PK..."), got)
}

func TestHistoryDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/history/h1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)
	require.NoError(t, c.History.Delete(context.Background(), "h1"))
}

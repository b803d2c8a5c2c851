package elevenlabs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextToSpeechConvert(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x90, 0x00}
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/v1", r.URL.Path)
		assert.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := c.TextToSpeech.Convert(context.Background(), "v1", "Hello world", &SynthesisOptions{
		ModelID:      "eleven_multilingual_v2",
		OutputFormat: "mp3_44100_128",
		VoiceSettings: &VoiceSettings{
			Stability:       Float64(0.5),
			SimilarityBoost: Float64(0.75),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, audio, got)

	assert.Equal(t, "Hello world", gotBody["text"])
	assert.Equal(t, "eleven_multilingual_v2", gotBody["model_id"])
	settings, ok := gotBody["voice_settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.5, settings["stability"])
	assert.Equal(t, 0.75, settings["similarity_boost"])
}

func TestTextToSpeechOmitsUnsetOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"text":"hi"}`, string(body))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.TextToSpeech.Convert(context.Background(), "v1", "hi", nil)
	require.NoError(t, err)
}

func TestTextToSpeechConvertWithTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/v1/with-timestamps", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"audio_base64": "QVVESU8=",
			"alignment": {
				"characters": ["h", "i"],
				"character_start_times_seconds": [0.0, 0.1],
				"character_end_times_seconds": [0.1, 0.2]
			}
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := c.TextToSpeech.ConvertWithTimestamps(context.Background(), "v1", "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "QVVESU8=", got.AudioBase64)
	require.NotNil(t, got.Alignment)
	assert.Equal(t, []string{"h", "i"}, got.Alignment.Characters)
	assert.Equal(t, []float64{0.1, 0.2}, got.Alignment.CharacterEndTimesSeconds)
	assert.Nil(t, got.NormalizedAlignment)
}

func TestTextToSpeechStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/v1/stream", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("optimize_streaming_latency"))
		flusher := w.(http.Flusher)
		for _, chunk := range []string{"aaa", "bbb", "ccc"} {
			_, _ = w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	var got []byte
	err = c.TextToSpeech.Stream(context.Background(), "v1", "hi", &SynthesisOptions{
		OptimizeStreamingLatency: Int(2),
	}, func(chunk []byte) {
		got = append(got, chunk...)
	})
	require.NoError(t, err)
	assert.Equal(t, "aaabbbccc", string(got))
}

func TestTextToSpeechStreamWithTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/v1/stream/with-timestamps", r.URL.Path)
		_, _ = w.Write([]byte(`{"audio_base64":"YQ=="}` + "\n" + `{"audio_base64":"Yg==","alignment":{"characters":["b"]}}` + "\n"))
	}))
	defer srv.Close()

	c, err := NewClient(WithAPIKey("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	var events []*SpeechWithTimestamps
	err = c.TextToSpeech.StreamWithTimestamps(context.Background(), "v1", "ab", nil, func(ev *SpeechWithTimestamps) {
		events = append(events, ev)
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "YQ==", events[0].AudioBase64)
	assert.Nil(t, events[0].Alignment)
	require.NotNil(t, events[1].Alignment)
	assert.Equal(t, []string{"b"}, events[1].Alignment.Characters)
}

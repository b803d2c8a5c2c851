package elevenlabs

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// TextToSpeechService wraps the /v1/text-to-speech endpoints.
type TextToSpeechService struct {
	transport *Transport
}

// SynthesisOptions are the recognized per-call options for synthesis.
// Unset fields are omitted from the outgoing request; the remote service
// applies its defaults.
type SynthesisOptions struct {
	ModelID       string         `json:"model_id,omitempty"`
	LanguageCode  string         `json:"language_code,omitempty"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
	Seed          *int           `json:"seed,omitempty"`
	PreviousText  string         `json:"previous_text,omitempty"`
	NextText      string         `json:"next_text,omitempty"`

	// Query-side options.
	OutputFormat             string `json:"-"`
	OptimizeStreamingLatency *int   `json:"-"`
}

type synthesisRequest struct {
	Text string `json:"text"`
	SynthesisOptions
}

// SpeechWithTimestamps is the decoded response of the timestamped synthesis
// endpoints: base64 audio plus character-level alignment.
type SpeechWithTimestamps struct {
	AudioBase64         string     `json:"audio_base64"`
	Alignment           *Alignment `json:"alignment,omitempty"`
	NormalizedAlignment *Alignment `json:"normalized_alignment,omitempty"`
}

func synthesisQuery(opts *SynthesisOptions) url.Values {
	if opts == nil {
		return nil
	}
	q := url.Values{}
	if opts.OutputFormat != "" {
		q.Set("output_format", opts.OutputFormat)
	}
	if opts.OptimizeStreamingLatency != nil {
		q.Set("optimize_streaming_latency", strconv.Itoa(*opts.OptimizeStreamingLatency))
	}
	return q
}

func synthesisBody(text string, opts *SynthesisOptions) synthesisRequest {
	req := synthesisRequest{Text: text}
	if opts != nil {
		req.SynthesisOptions = *opts
	}
	return req
}

// Convert synthesizes text with the given voice and returns the audio bytes.
func (s *TextToSpeechService) Convert(ctx context.Context, voiceID, text string, opts *SynthesisOptions) ([]byte, error) {
	path := pathWithQuery("/v1/text-to-speech/"+url.PathEscape(voiceID), synthesisQuery(opts))
	return s.transport.PostBinary(ctx, path, synthesisBody(text, opts))
}

// ConvertWithTimestamps synthesizes text and returns base64 audio together
// with character alignment.
func (s *TextToSpeechService) ConvertWithTimestamps(ctx context.Context, voiceID, text string, opts *SynthesisOptions) (*SpeechWithTimestamps, error) {
	path := pathWithQuery("/v1/text-to-speech/"+url.PathEscape(voiceID)+"/with-timestamps", synthesisQuery(opts))
	var out SpeechWithTimestamps
	if err := s.transport.Post(ctx, path, synthesisBody(text, opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stream synthesizes text and invokes onChunk for each audio chunk as it
// arrives. It returns once the stream completes.
func (s *TextToSpeechService) Stream(ctx context.Context, voiceID, text string, opts *SynthesisOptions, onChunk func([]byte)) error {
	path := pathWithQuery("/v1/text-to-speech/"+url.PathEscape(voiceID)+"/stream", synthesisQuery(opts))
	return s.transport.PostStreaming(ctx, path, synthesisBody(text, opts), onChunk)
}

// StreamWithTimestamps streams newline-delimited timestamp events, invoking
// onEvent once per decoded event in arrival order.
func (s *TextToSpeechService) StreamWithTimestamps(ctx context.Context, voiceID, text string, opts *SynthesisOptions, onEvent func(*SpeechWithTimestamps)) error {
	path := pathWithQuery("/v1/text-to-speech/"+url.PathEscape(voiceID)+"/stream/with-timestamps", synthesisQuery(opts))
	return s.transport.PostStreamingWithTimestamps(ctx, path, synthesisBody(text, opts), func(raw json.RawMessage) {
		var ev SpeechWithTimestamps
		if err := json.Unmarshal(raw, &ev); err != nil {
			return
		}
		onEvent(&ev)
	})
}

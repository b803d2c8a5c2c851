package elevenlabs

import (
	"context"
	"encoding/json"
	"net/url"
)

// SpeechToSpeechService wraps the /v1/speech-to-speech endpoints.
type SpeechToSpeechService struct {
	transport *Transport
}

// SpeechToSpeechOptions are the recognized per-call options for voice
// conversion. VoiceSettings are serialized into a JSON form field.
type SpeechToSpeechOptions struct {
	ModelID       string
	VoiceSettings *VoiceSettings
	Seed          *int

	OutputFormat string
}

func (s *SpeechToSpeechService) fields(audio *FilePart, opts *SpeechToSpeechOptions) (map[string]any, error) {
	fields := map[string]any{"audio": audio}
	if opts == nil {
		return fields, nil
	}
	if opts.ModelID != "" {
		fields["model_id"] = opts.ModelID
	}
	if opts.VoiceSettings != nil {
		settings, err := json.Marshal(opts.VoiceSettings)
		if err != nil {
			return nil, newJSONError(err.Error())
		}
		fields["voice_settings"] = string(settings)
	}
	if opts.Seed != nil {
		fields["seed"] = *opts.Seed
	}
	return fields, nil
}

func speechToSpeechQuery(opts *SpeechToSpeechOptions) url.Values {
	if opts == nil || opts.OutputFormat == "" {
		return nil
	}
	q := url.Values{}
	q.Set("output_format", opts.OutputFormat)
	return q
}

// Convert re-renders the uploaded audio with the given voice and returns the
// converted audio bytes.
func (s *SpeechToSpeechService) Convert(ctx context.Context, voiceID string, audio *FilePart, opts *SpeechToSpeechOptions) ([]byte, error) {
	fields, err := s.fields(audio, opts)
	if err != nil {
		return nil, err
	}
	path := pathWithQuery("/v1/speech-to-speech/"+url.PathEscape(voiceID), speechToSpeechQuery(opts))
	return s.transport.PostMultipartBinary(ctx, path, fields)
}

// Stream is Convert with per-chunk delivery of the converted audio.
func (s *SpeechToSpeechService) Stream(ctx context.Context, voiceID string, audio *FilePart, opts *SpeechToSpeechOptions, onChunk func([]byte)) error {
	fields, err := s.fields(audio, opts)
	if err != nil {
		return err
	}
	path := pathWithQuery("/v1/speech-to-speech/"+url.PathEscape(voiceID)+"/stream", speechToSpeechQuery(opts))
	return s.transport.PostMultipartStreaming(ctx, path, fields, onChunk)
}

package elevenlabs

import "context"

// SoundGenerationService wraps the /v1/sound-generation endpoint.
type SoundGenerationService struct {
	transport *Transport
}

// SoundGenerationOptions tune sound-effect generation. Unset fields are
// omitted so the remote service applies its defaults.
type SoundGenerationOptions struct {
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	PromptInfluence *float64 `json:"prompt_influence,omitempty"`
}

type soundGenerationRequest struct {
	Text string `json:"text"`
	SoundGenerationOptions
}

// Generate renders a sound effect from a text prompt and returns the audio
// bytes.
func (s *SoundGenerationService) Generate(ctx context.Context, text string, opts *SoundGenerationOptions) ([]byte, error) {
	req := soundGenerationRequest{Text: text}
	if opts != nil {
		req.SoundGenerationOptions = *opts
	}
	return s.transport.PostBinary(ctx, "/v1/sound-generation", req)
}

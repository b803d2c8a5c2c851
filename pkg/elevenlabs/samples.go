package elevenlabs

import (
	"context"
	"net/url"
)

// SamplesService wraps the voice-sample endpoints.
type SamplesService struct {
	transport *Transport
}

// Delete removes one sample from a voice.
func (s *SamplesService) Delete(ctx context.Context, voiceID, sampleID string) error {
	path := "/v1/voices/" + url.PathEscape(voiceID) + "/samples/" + url.PathEscape(sampleID)
	return s.transport.Delete(ctx, path, nil, nil)
}

// Audio returns the raw audio of one sample.
func (s *SamplesService) Audio(ctx context.Context, voiceID, sampleID string) ([]byte, error) {
	path := "/v1/voices/" + url.PathEscape(voiceID) + "/samples/" + url.PathEscape(sampleID) + "/audio"
	return s.transport.GetBinary(ctx, path, nil)
}

package elevenlabs

import "context"

// AudioIsolationService wraps the /v1/audio-isolation endpoints, which strip
// background noise from uploaded audio.
type AudioIsolationService struct {
	transport *Transport
}

// Isolate uploads audio and returns the isolated-voice rendition.
func (s *AudioIsolationService) Isolate(ctx context.Context, audio *FilePart) ([]byte, error) {
	return s.transport.PostMultipartBinary(ctx, "/v1/audio-isolation", map[string]any{"audio": audio})
}

// IsolateStream is Isolate with per-chunk delivery.
func (s *AudioIsolationService) IsolateStream(ctx context.Context, audio *FilePart, onChunk func([]byte)) error {
	return s.transport.PostMultipartStreaming(ctx, "/v1/audio-isolation/stream", map[string]any{"audio": audio}, onChunk)
}

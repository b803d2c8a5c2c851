package elevenlabs

import (
	"context"
	"net/url"
)

// DubbingService wraps the /v1/dubbing endpoints.
type DubbingService struct {
	transport *Transport
}

// DubbingRequest carries the multipart fields for creating a dubbing job.
// Exactly one of File or SourceURL should be set.
type DubbingRequest struct {
	File      *FilePart
	SourceURL string

	Name           string
	SourceLanguage string
	TargetLanguage string
	NumSpeakers    *int
	Watermark      *bool
}

// DubbingJob is the remote job document. Status transitions through
// "dubbing" to "dubbed" or "failed".
type DubbingJob struct {
	DubbingID       string   `json:"dubbing_id"`
	Name            string   `json:"name,omitempty"`
	Status          string   `json:"status"`
	TargetLanguages []string `json:"target_languages,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Create starts a dubbing job from an uploaded file or a source URL.
func (s *DubbingService) Create(ctx context.Context, req *DubbingRequest) (*DubbingJob, error) {
	fields := map[string]any{
		"target_lang": req.TargetLanguage,
	}
	if req.File != nil {
		fields["file"] = req.File
	}
	if req.SourceURL != "" {
		fields["source_url"] = req.SourceURL
	}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.SourceLanguage != "" {
		fields["source_lang"] = req.SourceLanguage
	}
	if req.NumSpeakers != nil {
		fields["num_speakers"] = *req.NumSpeakers
	}
	if req.Watermark != nil {
		fields["watermark"] = *req.Watermark
	}

	var out DubbingJob
	if err := s.transport.PostMultipart(ctx, "/v1/dubbing", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches the current state of a dubbing job.
func (s *DubbingService) Get(ctx context.Context, dubbingID string) (*DubbingJob, error) {
	var out DubbingJob
	if err := s.transport.Get(ctx, "/v1/dubbing/"+url.PathEscape(dubbingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a dubbing job.
func (s *DubbingService) Delete(ctx context.Context, dubbingID string) error {
	return s.transport.Delete(ctx, "/v1/dubbing/"+url.PathEscape(dubbingID), nil, nil)
}

// Audio returns the dubbed audio or video for one target language.
func (s *DubbingService) Audio(ctx context.Context, dubbingID, languageCode string) ([]byte, error) {
	path := "/v1/dubbing/" + url.PathEscape(dubbingID) + "/audio/" + url.PathEscape(languageCode)
	return s.transport.GetBinary(ctx, path, nil)
}

// Transcript returns the dub transcript for one target language. formatType
// may be "srt" or "webvtt"; empty lets the service pick.
func (s *DubbingService) Transcript(ctx context.Context, dubbingID, languageCode, formatType string) (string, error) {
	q := url.Values{}
	if formatType != "" {
		q.Set("format_type", formatType)
	}
	path := "/v1/dubbing/" + url.PathEscape(dubbingID) + "/transcript/" + url.PathEscape(languageCode)
	raw, err := s.transport.GetBinary(ctx, path, q)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

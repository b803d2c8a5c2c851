package elevenlabs

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// VoicesService wraps the /v1/voices endpoints.
type VoicesService struct {
	transport *Transport
}

// Voice is a voice document as returned by the service.
type Voice struct {
	VoiceID           string            `json:"voice_id"`
	Name              string            `json:"name"`
	Category          string            `json:"category,omitempty"`
	Description       string            `json:"description,omitempty"`
	Labels            map[string]string `json:"labels,omitempty"`
	PreviewURL        string            `json:"preview_url,omitempty"`
	AvailableForTiers []string          `json:"available_for_tiers,omitempty"`
	SafetyControl     string            `json:"safety_control,omitempty"`
	Settings          *VoiceSettings    `json:"settings,omitempty"`
	Samples           []VoiceSample     `json:"samples,omitempty"`
}

// VoiceSample describes one uploaded sample attached to a voice.
type VoiceSample struct {
	SampleID  string `json:"sample_id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

type voicesResponse struct {
	Voices []Voice `json:"voices"`
}

// AddVoiceRequest carries the multipart fields for creating a cloned voice.
type AddVoiceRequest struct {
	Name        string
	Description string
	Labels      map[string]string
	Files       []*FilePart
}

type addVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}

// safetyControlBan is the safety_control value marking a banned voice.
const safetyControlBan = "BAN"

// List returns all voices available to the account.
func (s *VoicesService) List(ctx context.Context) ([]Voice, error) {
	var out voicesResponse
	if err := s.transport.Get(ctx, "/v1/voices", nil, &out); err != nil {
		return nil, err
	}
	return out.Voices, nil
}

// Get fetches one voice. withSettings controls whether the settings document
// is included.
func (s *VoicesService) Get(ctx context.Context, voiceID string, withSettings bool) (*Voice, error) {
	q := url.Values{}
	if withSettings {
		q.Set("with_settings", strconv.FormatBool(withSettings))
	}
	var out Voice
	if err := s.transport.Get(ctx, "/v1/voices/"+url.PathEscape(voiceID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Add creates a voice from uploaded samples and returns its ID.
func (s *VoicesService) Add(ctx context.Context, req *AddVoiceRequest) (string, error) {
	fields := map[string]any{
		"name":  req.Name,
		"files": req.Files,
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if len(req.Labels) > 0 {
		labels, err := json.Marshal(req.Labels)
		if err != nil {
			return "", newJSONError(err.Error())
		}
		fields["labels"] = string(labels)
	}

	var out addVoiceResponse
	if err := s.transport.PostMultipart(ctx, "/v1/voices/add", fields, &out); err != nil {
		return "", err
	}
	return out.VoiceID, nil
}

// Edit updates a voice's name, description, labels, or samples.
func (s *VoicesService) Edit(ctx context.Context, voiceID string, req *AddVoiceRequest) error {
	fields := map[string]any{"name": req.Name}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if len(req.Labels) > 0 {
		labels, err := json.Marshal(req.Labels)
		if err != nil {
			return newJSONError(err.Error())
		}
		fields["labels"] = string(labels)
	}
	if len(req.Files) > 0 {
		fields["files"] = req.Files
	}
	return s.transport.PostMultipart(ctx, "/v1/voices/"+url.PathEscape(voiceID)+"/edit", fields, nil)
}

// Delete removes a voice.
func (s *VoicesService) Delete(ctx context.Context, voiceID string) error {
	return s.transport.Delete(ctx, "/v1/voices/"+url.PathEscape(voiceID), nil, nil)
}

// Settings returns the stored settings of a voice.
func (s *VoicesService) Settings(ctx context.Context, voiceID string) (*VoiceSettings, error) {
	var out VoiceSettings
	if err := s.transport.Get(ctx, "/v1/voices/"+url.PathEscape(voiceID)+"/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DefaultSettings returns the service-wide default voice settings.
func (s *VoicesService) DefaultSettings(ctx context.Context) (*VoiceSettings, error) {
	var out VoiceSettings
	if err := s.transport.Get(ctx, "/v1/voices/settings/default", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditSettings replaces the stored settings of a voice.
func (s *VoicesService) EditSettings(ctx context.Context, voiceID string, settings *VoiceSettings) error {
	return s.transport.Post(ctx, "/v1/voices/"+url.PathEscape(voiceID)+"/settings/edit", settings, nil)
}

// IsBanned reports whether the voice is flagged by safety controls. A
// validation, not-found, or generic API failure degrades to false instead of
// propagating; authentication and rate-limit failures still surface. This
// trades correctness for caller convenience: a missing voice and a banned
// voice are both "not banned".
func (s *VoicesService) IsBanned(ctx context.Context, voiceID string) (bool, error) {
	v, err := s.Get(ctx, voiceID, false)
	if err != nil {
		if isSwallowedVoiceProbeError(err) {
			return false, nil
		}
		return false, err
	}
	return v.SafetyControl == safetyControlBan, nil
}

// IsActive reports whether the voice exists and is not banned, degrading to
// true on the same swallowed failure kinds as IsBanned.
func (s *VoicesService) IsActive(ctx context.Context, voiceID string) (bool, error) {
	v, err := s.Get(ctx, voiceID, false)
	if err != nil {
		if isSwallowedVoiceProbeError(err) {
			return true, nil
		}
		return false, err
	}
	return v.SafetyControl != safetyControlBan, nil
}

func isSwallowedVoiceProbeError(err error) bool {
	return IsCode(err, ErrCodeValidation) ||
		IsCode(err, ErrCodeNotFound) ||
		IsCode(err, ErrCodeBadRequest) ||
		IsCode(err, ErrCodeUnprocessable) ||
		IsCode(err, ErrCodeAPI)
}

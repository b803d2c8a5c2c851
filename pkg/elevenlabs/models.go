package elevenlabs

import "context"

// ModelsService wraps the /v1/models endpoint.
type ModelsService struct {
	transport *Transport
}

// Model describes one synthesis model.
type Model struct {
	ModelID              string          `json:"model_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	CanDoTextToSpeech    bool            `json:"can_do_text_to_speech"`
	CanDoVoiceConversion bool            `json:"can_do_voice_conversion"`
	CanUseStyle          bool            `json:"can_use_style"`
	CanUseSpeakerBoost   bool            `json:"can_use_speaker_boost"`
	TokenCostFactor      float64         `json:"token_cost_factor"`
	Languages            []ModelLanguage `json:"languages,omitempty"`
}

// ModelLanguage is one language supported by a model.
type ModelLanguage struct {
	LanguageID string `json:"language_id"`
	Name       string `json:"name"`
}

// List returns all models available to the account.
func (s *ModelsService) List(ctx context.Context) ([]Model, error) {
	var out []Model
	if err := s.transport.Get(ctx, "/v1/models", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

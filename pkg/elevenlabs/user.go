package elevenlabs

import "context"

// UserService wraps the /v1/user endpoints.
type UserService struct {
	transport *Transport
}

// User is the account document.
type User struct {
	UserID       string       `json:"user_id,omitempty"`
	FirstName    string       `json:"first_name,omitempty"`
	IsNewUser    bool         `json:"is_new_user"`
	Subscription Subscription `json:"subscription"`
}

// Subscription describes the account's plan and quota.
type Subscription struct {
	Tier                        string `json:"tier"`
	Status                      string `json:"status,omitempty"`
	Currency                    string `json:"currency,omitempty"`
	CharacterCount              int64  `json:"character_count"`
	CharacterLimit              int64  `json:"character_limit"`
	CanExtendCharacterLimit     bool   `json:"can_extend_character_limit"`
	AllowedToExtendCharLimit    bool   `json:"allowed_to_extend_character_limit"`
	NextCharacterCountResetUnix int64  `json:"next_character_count_reset_unix"`
	VoiceLimit                  int    `json:"voice_limit"`
	CanUseInstantVoiceCloning   bool   `json:"can_use_instant_voice_cloning"`
	CanUseProfessionalCloning   bool   `json:"can_use_professional_voice_cloning"`
}

// Get fetches the account document.
func (s *UserService) Get(ctx context.Context) (*User, error) {
	var out User
	if err := s.transport.Get(ctx, "/v1/user", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subscription fetches the subscription document alone.
func (s *UserService) Subscription(ctx context.Context) (*Subscription, error) {
	var out Subscription
	if err := s.transport.Get(ctx, "/v1/user/subscription", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

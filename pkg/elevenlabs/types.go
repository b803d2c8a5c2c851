package elevenlabs

// VoiceSettings tunes synthesis behavior per voice. Unset pointer fields are
// omitted from the outgoing request so the remote service applies its own
// defaults.
type VoiceSettings struct {
	Stability       *float64 `json:"stability,omitempty"`
	SimilarityBoost *float64 `json:"similarity_boost,omitempty"`
	Style           *float64 `json:"style,omitempty"`
	Speed           *float64 `json:"speed,omitempty"`
	UseSpeakerBoost *bool    `json:"use_speaker_boost,omitempty"`
}

// Alignment carries per-character timing information returned by the
// timestamped synthesis endpoints.
type Alignment struct {
	Characters                 []string  `json:"characters"`
	CharacterStartTimesSeconds []float64 `json:"character_start_times_seconds"`
	CharacterEndTimesSeconds   []float64 `json:"character_end_times_seconds"`
}

// statusResponse is the minimal body several mutation endpoints return.
type statusResponse struct {
	Status string `json:"status"`
}

// Pointer helpers for optional option-struct fields.

func Float64(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

func Bool(v bool) *bool { return &v }

func String(v string) *string { return &v }

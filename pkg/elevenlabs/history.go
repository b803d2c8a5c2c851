package elevenlabs

import (
	"context"
	"net/url"
	"strconv"
)

// HistoryService wraps the /v1/history endpoints.
type HistoryService struct {
	transport *Transport
}

// HistoryItem is one generated-audio record.
type HistoryItem struct {
	HistoryItemID            string `json:"history_item_id"`
	RequestID                string `json:"request_id,omitempty"`
	VoiceID                  string `json:"voice_id"`
	VoiceName                string `json:"voice_name,omitempty"`
	ModelID                  string `json:"model_id,omitempty"`
	Text                     string `json:"text"`
	DateUnix                 int64  `json:"date_unix"`
	CharacterCountChangeFrom int64  `json:"character_count_change_from"`
	CharacterCountChangeTo   int64  `json:"character_count_change_to"`
	ContentType              string `json:"content_type,omitempty"`
	State                    string `json:"state,omitempty"`
}

// HistoryPage is one page of history items plus the cursor for the next.
type HistoryPage struct {
	History           []HistoryItem `json:"history"`
	LastHistoryItemID string        `json:"last_history_item_id"`
	HasMore           bool          `json:"has_more"`
}

// HistoryListOptions control pagination and filtering of List.
type HistoryListOptions struct {
	PageSize                int
	StartAfterHistoryItemID string
	VoiceID                 string
}

// List returns a page of history items, newest first.
func (s *HistoryService) List(ctx context.Context, opts *HistoryListOptions) (*HistoryPage, error) {
	q := url.Values{}
	if opts != nil {
		if opts.PageSize > 0 {
			q.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.StartAfterHistoryItemID != "" {
			q.Set("start_after_history_item_id", opts.StartAfterHistoryItemID)
		}
		if opts.VoiceID != "" {
			q.Set("voice_id", opts.VoiceID)
		}
	}
	var out HistoryPage
	if err := s.transport.Get(ctx, "/v1/history", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one history item.
func (s *HistoryService) Get(ctx context.Context, historyItemID string) (*HistoryItem, error) {
	var out HistoryItem
	if err := s.transport.Get(ctx, "/v1/history/"+url.PathEscape(historyItemID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one history item.
func (s *HistoryService) Delete(ctx context.Context, historyItemID string) error {
	return s.transport.Delete(ctx, "/v1/history/"+url.PathEscape(historyItemID), nil, nil)
}

// Audio returns the audio bytes of one history item.
func (s *HistoryService) Audio(ctx context.Context, historyItemID string) ([]byte, error) {
	return s.transport.GetBinary(ctx, "/v1/history/"+url.PathEscape(historyItemID)+"/audio", nil)
}

// Download returns the audio of the given items: a single audio file for one
// ID, a zip archive for several.
func (s *HistoryService) Download(ctx context.Context, historyItemIDs []string) ([]byte, error) {
	body := map[string][]string{"history_item_ids": historyItemIDs}
	return s.transport.PostBinary(ctx, "/v1/history/download", body)
}

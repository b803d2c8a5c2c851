package elevenlabs

import (
	"context"
	"net/url"
	"strconv"
)

// PronunciationService wraps the /v1/pronunciation-dictionaries endpoints.
type PronunciationService struct {
	transport *Transport
}

// PronunciationDictionary is the dictionary document.
type PronunciationDictionary struct {
	ID               string `json:"id"`
	LatestVersionID  string `json:"latest_version_id"`
	Name             string `json:"name"`
	CreatedBy        string `json:"created_by,omitempty"`
	CreationTimeUnix int64  `json:"creation_time_unix,omitempty"`
	Description      string `json:"description,omitempty"`
}

// PronunciationRule is one replacement rule. Type is "alias" or "phoneme";
// Alphabet applies to phoneme rules ("ipa" or "cmu").
type PronunciationRule struct {
	StringToReplace string `json:"string_to_replace"`
	Type            string `json:"type"`
	Alias           string `json:"alias,omitempty"`
	Phoneme         string `json:"phoneme,omitempty"`
	Alphabet        string `json:"alphabet,omitempty"`
}

// PronunciationDictionaryPage is one page of dictionaries.
type PronunciationDictionaryPage struct {
	PronunciationDictionaries []PronunciationDictionary `json:"pronunciation_dictionaries"`
	NextCursor                string                    `json:"next_cursor"`
	HasMore                   bool                      `json:"has_more"`
}

type dictionaryVersionResponse struct {
	ID        string `json:"id"`
	VersionID string `json:"version_id"`
}

// AddFromFile creates a dictionary from an uploaded PLS lexicon file.
func (s *PronunciationService) AddFromFile(ctx context.Context, name string, file *FilePart, description string) (*PronunciationDictionary, error) {
	fields := map[string]any{
		"name": name,
		"file": file,
	}
	if description != "" {
		fields["description"] = description
	}
	var out PronunciationDictionary
	if err := s.transport.PostMultipart(ctx, "/v1/pronunciation-dictionaries/add-from-file", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns a page of dictionaries.
func (s *PronunciationService) List(ctx context.Context, cursor string, pageSize int) (*PronunciationDictionaryPage, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	var out PronunciationDictionaryPage
	if err := s.transport.Get(ctx, "/v1/pronunciation-dictionaries", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches one dictionary.
func (s *PronunciationService) Get(ctx context.Context, dictionaryID string) (*PronunciationDictionary, error) {
	var out PronunciationDictionary
	if err := s.transport.Get(ctx, "/v1/pronunciation-dictionaries/"+url.PathEscape(dictionaryID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddRules appends rules, producing a new dictionary version.
func (s *PronunciationService) AddRules(ctx context.Context, dictionaryID string, rules []PronunciationRule) (string, error) {
	body := map[string]any{"rules": rules}
	var out dictionaryVersionResponse
	if err := s.transport.Post(ctx, "/v1/pronunciation-dictionaries/"+url.PathEscape(dictionaryID)+"/add-rules", body, &out); err != nil {
		return "", err
	}
	return out.VersionID, nil
}

// RemoveRules deletes rules by their string_to_replace keys, producing a new
// dictionary version.
func (s *PronunciationService) RemoveRules(ctx context.Context, dictionaryID string, ruleStrings []string) (string, error) {
	body := map[string]any{"rule_strings": ruleStrings}
	var out dictionaryVersionResponse
	if err := s.transport.Post(ctx, "/v1/pronunciation-dictionaries/"+url.PathEscape(dictionaryID)+"/remove-rules", body, &out); err != nil {
		return "", err
	}
	return out.VersionID, nil
}

// DownloadVersion returns the PLS lexicon of one dictionary version.
func (s *PronunciationService) DownloadVersion(ctx context.Context, dictionaryID, versionID string) ([]byte, error) {
	path := "/v1/pronunciation-dictionaries/" + url.PathEscape(dictionaryID) + "/" + url.PathEscape(versionID) + "/download"
	return s.transport.GetBinary(ctx, path, nil)
}

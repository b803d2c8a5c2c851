package elevenlabs

import (
	"context"
	"net/url"
	"strconv"
)

// UsageService wraps the /v1/usage endpoints.
type UsageService struct {
	transport *Transport
}

// UsageStats is a time series of character usage, bucketed by the requested
// breakdown. Keys of Usage depend on the breakdown type ("All" by default).
type UsageStats struct {
	Time  []int64              `json:"time"`
	Usage map[string][]float64 `json:"usage"`
}

// CharacterStatsOptions control the window and breakdown of CharacterStats.
type CharacterStatsOptions struct {
	BreakdownType           string
	IncludeWorkspaceMetrics bool
}

// CharacterStats returns character usage between two unix-millisecond
// timestamps.
func (s *UsageService) CharacterStats(ctx context.Context, startUnixMillis, endUnixMillis int64, opts *CharacterStatsOptions) (*UsageStats, error) {
	q := url.Values{}
	q.Set("start_unix", strconv.FormatInt(startUnixMillis, 10))
	q.Set("end_unix", strconv.FormatInt(endUnixMillis, 10))
	if opts != nil {
		if opts.BreakdownType != "" {
			q.Set("breakdown_type", opts.BreakdownType)
		}
		if opts.IncludeWorkspaceMetrics {
			q.Set("include_workspace_metrics", "true")
		}
	}
	var out UsageStats
	if err := s.transport.Get(ctx, "/v1/usage/character-stats", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

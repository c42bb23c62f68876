package store

import (
	"context"
	"strings"
	"time"

	"github.com/rcliao/wellness/internal/model"
)

// Filter holds parameters for listing tracker entries.
type Filter struct {
	Emotion string
	Query   string // case-insensitive substring of the thought
	Since   time.Time
	Limit   int // 0 means 20, negative means no limit
}

// Search returns entries matching the filter, newest first.
func (t *Tracker) Search(ctx context.Context, f Filter) ([]model.TrackerEntry, error) {
	limit := f.Limit
	if limit == 0 {
		limit = 20
	}

	entries, err := t.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	results := []model.TrackerEntry{}
	for _, e := range entries {
		if f.Emotion != "" && !e.HasEmotion(f.Emotion) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Thought), query) {
			continue
		}
		if !f.Since.IsZero() && e.Date.Before(f.Since) {
			continue
		}
		results = append(results, e)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/wellness/internal/model"
)

// Tracker stores mood check-ins.
type Tracker struct {
	*Records[model.TrackerEntry]
}

// EntryParams holds the user's input for one check-in.
type EntryParams struct {
	Emotions       []string
	AnxietyLevel   int
	BodySensations []string
	Thought        string
}

// Validate checks the input against the fixed vocabularies.
func (p EntryParams) Validate() error {
	if len(p.Emotions) == 0 {
		return fmt.Errorf("%w: at least one emotion is required", ErrInvalidRecord)
	}
	for _, e := range p.Emotions {
		if !model.ValidEmotions[e] {
			return fmt.Errorf("%w: unknown emotion %q", ErrInvalidRecord, e)
		}
	}
	if p.AnxietyLevel < model.MinAnxiety || p.AnxietyLevel > model.MaxAnxiety {
		return fmt.Errorf("%w: anxiety level %d outside %d..%d",
			ErrInvalidRecord, p.AnxietyLevel, model.MinAnxiety, model.MaxAnxiety)
	}
	for _, b := range p.BodySensations {
		if !model.ValidSensations[b] {
			return fmt.Errorf("%w: unknown body sensation %q", ErrInvalidRecord, b)
		}
	}
	return nil
}

// validEntry checks an entry that did not come through Add.
func validEntry(e model.TrackerEntry) error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: entry has no date", ErrInvalidRecord)
	}
	return EntryParams{
		Emotions:       e.Emotions,
		AnxietyLevel:   e.AnxietyLevel,
		BodySensations: e.BodySensations,
		Thought:        e.Thought,
	}.Validate()
}

// Add validates and appends a check-in dated now. It is user-intentional data
// entry: storage failures are returned to the caller.
func (t *Tracker) Add(ctx context.Context, p EntryParams) (model.TrackerEntry, error) {
	if err := p.Validate(); err != nil {
		return model.TrackerEntry{}, err
	}

	sensations := p.BodySensations
	if sensations == nil {
		sensations = []string{}
	}
	entry, err := t.Append(ctx, model.TrackerEntry{
		Date:           t.s.now().UTC(),
		Emotions:       dedupe(p.Emotions),
		AnxietyLevel:   p.AnxietyLevel,
		BodySensations: dedupe(sensations),
		Thought:        strings.TrimSpace(p.Thought),
	})
	if err != nil {
		return model.TrackerEntry{}, err
	}

	// Last() falls back to the list head, so a failed pointer write loses nothing.
	if raw, err := encode(entry); err == nil {
		if err := t.s.Set(ctx, KeyLastEntry, raw); err != nil {
			t.s.log.Warn("save last entry pointer", zap.Error(err))
		}
	}
	return entry, nil
}

// Last returns the most recently submitted entry, or nil if there is none.
func (t *Tracker) Last(ctx context.Context) (*model.TrackerEntry, error) {
	raw, ok, err := t.s.Get(ctx, KeyLastEntry)
	if err != nil {
		return nil, err
	}
	if ok {
		var e model.TrackerEntry
		if err := json.Unmarshal([]byte(raw), &e); err == nil {
			return &e, nil
		}
		t.s.log.Warn("malformed last entry, falling back to history", zap.String("key", KeyLastEntry))
	}
	return t.First(ctx)
}

// dedupe drops repeated tags, keeping first-seen order.
func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

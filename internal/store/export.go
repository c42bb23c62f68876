package store

import (
	"context"
	"time"

	"github.com/rcliao/wellness/internal/model"
)

// Snapshot is a full export of the journal. Accounts are not included.
type Snapshot struct {
	ExportedAt          time.Time                  `json:"exported_at"`
	TrackerEntries      []model.TrackerEntry       `json:"tracker_entries"`
	AntianxietySessions []model.AntianxietySession `json:"antianxiety_sessions"`
	MeditationSessions  []model.MeditationSession  `json:"meditation_sessions"`
	ProgramProgress     []model.ProgramDayProgress `json:"program_progress"`
}

// ImportResult counts what an import added.
type ImportResult struct {
	TrackerEntries      int `json:"tracker_entries"`
	AntianxietySessions int `json:"antianxiety_sessions"`
	MeditationSessions  int `json:"meditation_sessions"`
	ProgramDays         int `json:"program_days"`
	// Skipped counts records and program days rejected as invalid.
	Skipped int `json:"skipped"`
}

// ExportAll returns every stored record.
func (s *Store) ExportAll(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{ExportedAt: s.now().UTC()}
	var err error

	if snap.TrackerEntries, err = s.Tracker.ReadAll(ctx); err != nil {
		return nil, err
	}
	if snap.AntianxietySessions, err = s.Antianxiety.ReadAll(ctx); err != nil {
		return nil, err
	}
	if snap.MeditationSessions, err = s.Meditations.ReadAll(ctx); err != nil {
		return nil, err
	}
	if snap.ProgramProgress, err = s.Program.Progress(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// Import merges a snapshot into the store. Records whose id already exists are
// skipped, so importing the same export twice is a no-op.
func (s *Store) Import(ctx context.Context, snap Snapshot) (ImportResult, error) {
	var res ImportResult
	var skipped int
	var err error

	if res.TrackerEntries, skipped, err = s.Tracker.merge(ctx, snap.TrackerEntries); err != nil {
		return res, err
	}
	res.Skipped += skipped
	if res.AntianxietySessions, skipped, err = s.Antianxiety.merge(ctx, snap.AntianxietySessions); err != nil {
		return res, err
	}
	res.Skipped += skipped
	if res.MeditationSessions, skipped, err = s.Meditations.merge(ctx, snap.MeditationSessions); err != nil {
		return res, err
	}
	res.Skipped += skipped
	if res.ProgramDays, skipped, err = s.Program.mergeDays(ctx, snap.ProgramProgress); err != nil {
		return res, err
	}
	res.Skipped += skipped
	return res, nil
}

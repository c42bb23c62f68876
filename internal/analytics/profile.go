package analytics

import (
	"github.com/rcliao/wellness/internal/catalog"
	"github.com/rcliao/wellness/internal/model"
)

// ProgramTotalDays is the length of the program.
const ProgramTotalDays = 7

// ProfileStats summarises everything the user has logged.
type ProfileStats struct {
	TotalAntianxietySessions int                        `json:"total_antianxiety_sessions"`
	ExerciseCounts           map[model.ExerciseType]int `json:"exercise_counts"`
	TotalTrackerEntries      int                        `json:"total_tracker_entries"`
	AvgAnxietyLevel          float64                    `json:"avg_anxiety_level"`
	EmotionCounts            map[string]int             `json:"emotion_counts"`
	ProgramCompletedDays     int                        `json:"program_completed_days"`
	ProgramTotalDays         int                        `json:"program_total_days"`
	LastTrackerEntry         *model.TrackerEntry        `json:"last_tracker_entry"`
	LastAntianxietySession   *model.AntianxietySession  `json:"last_antianxiety_session"`
}

// Profile computes profile statistics over full, newest-first histories.
// Sessions with an unknown exercise type are left out of ExerciseCounts.
func Profile(entries []model.TrackerEntry, sessions []model.AntianxietySession, program []model.ProgramDayProgress) ProfileStats {
	st := ProfileStats{
		TotalAntianxietySessions: len(sessions),
		ExerciseCounts:           make(map[model.ExerciseType]int, len(model.ExerciseTypes)),
		TotalTrackerEntries:      len(entries),
		AvgAnxietyLevel:          AverageAnxiety(entries),
		EmotionCounts:            EmotionCounts(entries),
		ProgramTotalDays:         ProgramTotalDays,
	}
	for _, t := range model.ExerciseTypes {
		st.ExerciseCounts[t] = 0
	}
	for _, s := range sessions {
		if model.ValidExerciseTypes[s.ExerciseType] {
			st.ExerciseCounts[s.ExerciseType]++
		}
	}
	for _, d := range program {
		if d.CompletedAt != nil {
			st.ProgramCompletedDays++
		}
	}
	if len(entries) > 0 {
		e := entries[0]
		st.LastTrackerEntry = &e
	}
	if len(sessions) > 0 {
		s := sessions[0]
		st.LastAntianxietySession = &s
	}
	return st
}

// MeditationStats summarises completed meditations.
type MeditationStats struct {
	TotalSessions int                      `json:"total_sessions"`
	TotalMinutes  int                      `json:"total_minutes"`
	ByCategory    map[catalog.Category]int `json:"by_category"`
	Orphaned      int                      `json:"orphaned"`
}

// Meditation aggregates meditation sessions. Sessions whose meditation is no
// longer in the library are skipped and counted as orphaned.
func Meditation(sessions []model.MeditationSession, lookup func(id string) (catalog.Meditation, error)) MeditationStats {
	st := MeditationStats{ByCategory: make(map[catalog.Category]int, len(catalog.Categories))}
	for _, c := range catalog.Categories {
		st.ByCategory[c] = 0
	}
	for _, s := range sessions {
		med, err := lookup(s.MeditationID)
		if err != nil {
			st.Orphaned++
			continue
		}
		st.TotalSessions++
		st.TotalMinutes += s.Duration
		st.ByCategory[med.Category]++
	}
	return st
}

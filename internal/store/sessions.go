package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/wellness/internal/model"
)

// CompleteExercise records a finished anti-anxiety exercise. CBT answers are
// kept only for the cbt exercise.
func (s *Store) CompleteExercise(ctx context.Context, typ model.ExerciseType, cbtAnswers map[string]string) (model.AntianxietySession, error) {
	session := model.AntianxietySession{
		ExerciseType: typ,
		CompletedAt:  s.now().UTC(),
	}
	if err := validExercise(session); err != nil {
		return model.AntianxietySession{}, err
	}
	if typ == model.ExerciseCBT && len(cbtAnswers) > 0 {
		session.CBTAnswers = make(map[string]string, len(cbtAnswers))
		for k, v := range cbtAnswers {
			session.CBTAnswers[k] = v
		}
	}
	return s.Antianxiety.Append(ctx, session)
}

// CompleteMeditation records a meditation that played to its natural end.
// duration is the catalog length in minutes.
func (s *Store) CompleteMeditation(ctx context.Context, meditationID string, duration int) (model.MeditationSession, error) {
	session := model.MeditationSession{
		MeditationID: meditationID,
		CompletedAt:  s.now().UTC(),
		Duration:     duration,
	}
	if err := validMeditation(session); err != nil {
		return model.MeditationSession{}, err
	}
	return s.Meditations.Append(ctx, session)
}

func validExercise(a model.AntianxietySession) error {
	if !model.ValidExerciseTypes[a.ExerciseType] {
		return fmt.Errorf("%w: unknown exercise type %q", ErrInvalidRecord, a.ExerciseType)
	}
	return checkCompletedAt(a.CompletedAt)
}

func validMeditation(m model.MeditationSession) error {
	if m.MeditationID == "" {
		return fmt.Errorf("%w: meditation id is required", ErrInvalidRecord)
	}
	if m.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRecord)
	}
	return checkCompletedAt(m.CompletedAt)
}

func checkCompletedAt(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: missing completion time", ErrInvalidRecord)
	}
	return nil
}

package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rcliao/wellness/internal/kv"
	"github.com/rcliao/wellness/internal/model"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// tickingClock advances one minute per call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	backend, err := kv.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	s := New(backend, WithClock(tickingClock()))
	t.Cleanup(func() { s.Close() })
	return s
}

func newMemStore(t *testing.T) (*Store, *kv.Memory, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	backend := kv.NewMemory()
	return New(backend, WithClock(tickingClock()), WithLogger(zap.New(core))), backend, logs
}

func TestAppendThenReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	entry, err := s.Tracker.Add(ctx, EntryParams{
		Emotions:       []string{"fear", "calm"},
		AnxietyLevel:   6,
		BodySensations: []string{"tension"},
		Thought:        "  deadline tomorrow  ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Contains(t, entry.ID, "entry_")
	assert.Equal(t, "deadline tomorrow", entry.Thought)

	all, err := s.Tracker.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entry.ID, all[0].ID)
	assert.True(t, entry.Date.Equal(all[0].Date))
	assert.Equal(t, entry.Emotions, all[0].Emotions)
	assert.Equal(t, entry.AnxietyLevel, all[0].AnxietyLevel)
	assert.Equal(t, entry.BodySensations, all[0].BodySensations)
	assert.Equal(t, entry.Thought, all[0].Thought)
}

func TestReadAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, _ := s.Tracker.Add(ctx, EntryParams{Emotions: []string{"calm"}, AnxietyLevel: 2})
	second, _ := s.Tracker.Add(ctx, EntryParams{Emotions: []string{"joy"}, AnxietyLevel: 3})

	all, err := s.Tracker.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestReadAllAbsentKeyIsEmpty(t *testing.T) {
	s := newTestStore(t)

	all, err := s.Meditations.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestReadAllMalformedFailsClosed(t *testing.T) {
	ctx := context.Background()
	s, backend, logs := newMemStore(t)
	require.NoError(t, backend.Set(ctx, KeyTrackerEntries, "{not json"))

	all, err := s.Tracker.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 1, logs.FilterMessage("malformed stored list, reading as empty").Len())
}

func TestWriteFailureIsStorageError(t *testing.T) {
	ctx := context.Background()
	s, backend, _ := newMemStore(t)
	backend.FailWrites = true

	_, err := s.Tracker.Add(ctx, EntryParams{Emotions: []string{"calm"}, AnxietyLevel: 1})
	require.Error(t, err)
	assert.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, kv.ErrInjected)

	_, err = s.CompleteExercise(ctx, model.ExerciseBreathing, nil)
	assert.True(t, IsStorageError(err))
}

func TestReadFailureIsStorageError(t *testing.T) {
	s, backend, _ := newMemStore(t)
	backend.FailReads = true

	_, err := s.Antianxiety.ReadAll(context.Background())
	assert.True(t, IsStorageError(err))
}

func TestConcurrentAppendsKeepEveryRecord(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newMemStore(t)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CompleteExercise(ctx, model.ExerciseGrounding, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := s.Antianxiety.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}

func TestAddValidation(t *testing.T) {
	s, _, _ := newMemStore(t)
	ctx := context.Background()

	cases := map[string]EntryParams{
		"no emotions":     {AnxietyLevel: 5},
		"unknown emotion": {Emotions: []string{"bliss"}, AnxietyLevel: 5},
		"anxiety low":     {Emotions: []string{"calm"}, AnxietyLevel: 0},
		"anxiety high":    {Emotions: []string{"calm"}, AnxietyLevel: 11},
		"bad sensation":   {Emotions: []string{"calm"}, AnxietyLevel: 5, BodySensations: []string{"itch"}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Tracker.Add(ctx, p)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}

	all, _ := s.Tracker.ReadAll(ctx)
	assert.Empty(t, all)
}

func TestAddDedupesTags(t *testing.T) {
	s, _, _ := newMemStore(t)

	e, err := s.Tracker.Add(context.Background(), EntryParams{
		Emotions:     []string{"fear", "calm", "fear"},
		AnxietyLevel: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fear", "calm"}, e.Emotions)
	assert.Equal(t, []string{}, e.BodySensations)
}

func TestLastEntry(t *testing.T) {
	ctx := context.Background()
	s, backend, _ := newMemStore(t)

	last, err := s.Tracker.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	s.Tracker.Add(ctx, EntryParams{Emotions: []string{"calm"}, AnxietyLevel: 2})
	second, _ := s.Tracker.Add(ctx, EntryParams{Emotions: []string{"anger"}, AnxietyLevel: 8})

	last, err = s.Tracker.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, second.ID, last.ID)

	// Without the pointer key the newest history entry is used.
	require.NoError(t, backend.Delete(ctx, KeyLastEntry))
	last, err = s.Tracker.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, last.ID)
}

func TestCompleteExercise(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cbt, err := s.CompleteExercise(ctx, model.ExerciseCBT, map[string]string{"situation": "meeting"})
	require.NoError(t, err)
	assert.Equal(t, "meeting", cbt.CBTAnswers["situation"])

	body, err := s.CompleteExercise(ctx, model.ExerciseBody, map[string]string{"ignored": "x"})
	require.NoError(t, err)
	assert.Nil(t, body.CBTAnswers)

	_, err = s.CompleteExercise(ctx, "yoga", nil)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	all, _ := s.Antianxiety.ReadAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, model.ExerciseBody, all[0].ExerciseType)
	assert.Equal(t, "meeting", all[1].CBTAnswers["situation"])
}

func TestCompleteMeditation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.CompleteMeditation(ctx, "sleep-1", 15)
	require.NoError(t, err)
	assert.Equal(t, 15, m.Duration)

	_, err = s.CompleteMeditation(ctx, "", 15)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	_, err = s.CompleteMeditation(ctx, "sleep-1", 0)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	first, err := s.Meditations.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.ID, first.ID)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Tracker.Add(ctx, EntryParams{Emotions: []string{"sadness"}, AnxietyLevel: 4, Thought: "Missed the Train"})
	s.Tracker.Add(ctx, EntryParams{Emotions: []string{"joy"}, AnxietyLevel: 2, Thought: "train ride was nice"})
	s.Tracker.Add(ctx, EntryParams{Emotions: []string{"sadness", "fear"}, AnxietyLevel: 7})

	byQuery, err := s.Tracker.Search(ctx, Filter{Query: "TRAIN"})
	require.NoError(t, err)
	assert.Len(t, byQuery, 2)

	byEmotion, _ := s.Tracker.Search(ctx, Filter{Emotion: "sadness"})
	assert.Len(t, byEmotion, 2)
	assert.Equal(t, 7, byEmotion[0].AnxietyLevel)

	both, _ := s.Tracker.Search(ctx, Filter{Emotion: "sadness", Query: "train"})
	require.Len(t, both, 1)
	assert.Equal(t, "Missed the Train", both[0].Thought)

	limited, _ := s.Tracker.Search(ctx, Filter{Limit: 1})
	assert.Len(t, limited, 1)

	since, _ := s.Tracker.Search(ctx, Filter{Since: t0.Add(100 * time.Hour)})
	assert.Empty(t, since)
}

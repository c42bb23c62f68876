package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/wellness/internal/model"
)

func TestProgramMergeKeepsOneRecordPerDay(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Program.SaveField(ctx, 2, "a", model.Text("first"))
	require.NoError(t, err)
	_, err = s.Program.SaveField(ctx, 2, "b", model.List("x", "y"))
	require.NoError(t, err)

	days, err := s.Program.Progress(ctx)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].DayID)
	assert.Equal(t, model.Text("first"), days[0].Responses["a"])
	assert.Equal(t, model.List("x", "y"), days[0].Responses["b"])
	assert.Nil(t, days[0].CompletedAt)
}

func TestProgramOverwriteField(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Program.SaveField(ctx, 1, "a", model.Text("draft"))
	d, err := s.Program.SaveField(ctx, 1, "a", model.Text("final"))
	require.NoError(t, err)
	assert.Equal(t, "final", d.Responses["a"].Text)
	assert.Len(t, d.Responses, 1)
}

func TestProgramMirrorsFieldKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Program.SaveField(ctx, 3, "rewrite_belief", model.Text("I am enough"))
	s.Program.SaveField(ctx, 3, "labels", model.List("lazy", "slow"))

	raw, ok, err := s.Get(ctx, FieldKey(3, "rewrite_belief"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "I am enough", raw)

	raw, _, _ = s.Get(ctx, FieldKey(3, "labels"))
	assert.Equal(t, `["lazy","slow"]`, raw)
}

func TestProgramRebuildsFromFieldKeys(t *testing.T) {
	ctx := context.Background()
	s, backend, _ := newMemStore(t)

	backend.Set(ctx, "program_day_4_fear_main", "spiders")
	backend.Set(ctx, "program_day_4_quoted", `"quoted"`)
	backend.Set(ctx, "program_day_1_gratitude_list", `["sun","tea"]`)
	backend.Set(ctx, "program_day_1_empty", "")
	backend.Set(ctx, "program_day_x_bad", "ignored")

	days, err := s.Program.Progress(ctx)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, 1, days[0].DayID)
	assert.Equal(t, model.List("sun", "tea"), days[0].Responses["gratitude_list"])
	assert.NotContains(t, days[0].Responses, "empty")

	assert.Equal(t, 4, days[1].DayID)
	assert.Equal(t, model.Text("spiders"), days[1].Responses["fear_main"])
	assert.Equal(t, model.Text(`"quoted"`), days[1].Responses["quoted"])

	// The first aggregate write carries the rebuilt answers along.
	_, err = s.Program.SaveField(ctx, 4, "fear_name", model.Text("Bob"))
	require.NoError(t, err)
	d, err := s.Program.Day(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, d.Responses, 3)
}

func TestProgramMarkComplete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Program.SaveField(ctx, 5, "realistic_belief", model.Text("ok"))
	d, err := s.Program.MarkComplete(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, d.CompletedAt)
	assert.Equal(t, "ok", d.Responses["realistic_belief"].Text)

	fresh, err := s.Program.MarkComplete(ctx, 6)
	require.NoError(t, err)
	assert.NotNil(t, fresh.CompletedAt)
	assert.Empty(t, fresh.Responses)

	days, _ := s.Program.Progress(ctx)
	assert.Len(t, days, 2)
}

func TestProgramInvalidDay(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Program.SaveField(ctx, 0, "a", model.Text("x"))
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, err = s.Program.MarkComplete(ctx, 8)
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, err = s.Program.Day(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, err = s.Program.SaveField(ctx, 1, " ", model.Text("x"))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestProgramDayEmpty(t *testing.T) {
	s := newTestStore(t)

	d, err := s.Program.Day(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, d.DayID)
	assert.NotNil(t, d.Responses)
	assert.Empty(t, d.Responses)
}

func TestProgramRecoversFromMalformedAggregate(t *testing.T) {
	ctx := context.Background()
	s, backend, logs := newMemStore(t)

	for day := 1; day <= 3; day++ {
		_, err := s.Program.SaveField(ctx, day, "a", model.Text("answer"))
		require.NoError(t, err)
	}
	raw, ok, err := backend.Get(ctx, KeyProgramProgress)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, backend.Set(ctx, KeyProgramProgress, raw[:len(raw)-1]))

	_, err = s.Program.SaveField(ctx, 4, "b", model.List("x"))
	require.NoError(t, err)

	days, err := s.Program.Progress(ctx)
	require.NoError(t, err)
	require.Len(t, days, 4)
	for i, d := range days[:3] {
		assert.Equal(t, i+1, d.DayID)
		assert.Equal(t, model.Text("answer"), d.Responses["a"])
	}
	assert.Equal(t, model.List("x"), days[3].Responses["b"])
	assert.Equal(t, 1, logs.FilterMessage("malformed program progress, rebuilding from field keys").Len())
}

func TestProgramImportOverMalformedAggregate(t *testing.T) {
	ctx := context.Background()
	s, backend, _ := newMemStore(t)

	_, err := s.Program.SaveField(ctx, 1, "a", model.Text("mine"))
	require.NoError(t, err)
	require.NoError(t, backend.Set(ctx, KeyProgramProgress, "[{"))

	changed, skipped, err := s.Program.mergeDays(ctx, []model.ProgramDayProgress{
		{DayID: 1, Responses: map[string]model.ResponseValue{"a": model.Text("theirs")}},
		{DayID: 2, Responses: map[string]model.ResponseValue{"c": model.List("p", "q")}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, 0, skipped)

	d, err := s.Program.Day(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Text("mine"), d.Responses["a"])

	// Imported answers get their per-field mirrors too.
	raw, ok, err := s.Get(ctx, FieldKey(2, "c"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["p","q"]`, raw)
}

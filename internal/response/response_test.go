package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/wellness/internal/model"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		entry     model.TrackerEntry
		kind      Kind
		questions int
		practice  bool
	}{
		{
			name:      "high anxiety",
			entry:     model.TrackerEntry{AnxietyLevel: 9, Emotions: []string{"joy"}},
			kind:      KindBody,
			questions: 2,
			practice:  true,
		},
		{
			name:      "anxiety tag at low level",
			entry:     model.TrackerEntry{AnxietyLevel: 2, Emotions: []string{"calm", "anxiety"}, Thought: "racing"},
			kind:      KindBody,
			questions: 2,
			practice:  true,
		},
		{
			name:      "threshold is inclusive",
			entry:     model.TrackerEntry{AnxietyLevel: 7, Emotions: []string{"sadness"}, Thought: "x"},
			kind:      KindBody,
			questions: 2,
			practice:  true,
		},
		{
			name:      "sad thought",
			entry:     model.TrackerEntry{AnxietyLevel: 3, Emotions: []string{"sadness"}, Thought: "I feel stuck"},
			kind:      KindCognitive,
			questions: 3,
		},
		{
			name:      "anger with thought",
			entry:     model.TrackerEntry{AnxietyLevel: 4, Emotions: []string{"hope", "anger"}, Thought: "they ignored me"},
			kind:      KindCognitive,
			questions: 3,
		},
		{
			name:      "heavy emotion without thought",
			entry:     model.TrackerEntry{AnxietyLevel: 3, Emotions: []string{"fear"}, Thought: "   "},
			kind:      KindSystemic,
			questions: 3,
		},
		{
			name:      "calm",
			entry:     model.TrackerEntry{AnxietyLevel: 2, Emotions: []string{"calm"}},
			kind:      KindSystemic,
			questions: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := Select(tt.entry)
			assert.Equal(t, tt.kind, track.Kind)
			assert.Len(t, track.Questions, tt.questions)
			if tt.practice {
				require.NotNil(t, track.Practice)
				assert.Len(t, track.Practice.Steps, 5)
			} else {
				assert.Nil(t, track.Practice)
			}
		})
	}
}

func TestSelectUsesFirstQuestions(t *testing.T) {
	track := Select(model.TrackerEntry{AnxietyLevel: 3, Emotions: []string{"emptiness"}, Thought: "nothing matters"})
	assert.Equal(t, cognitiveQuestions[:3], track.Questions)

	track = Select(model.TrackerEntry{AnxietyLevel: 1, Emotions: []string{"joy"}})
	assert.Equal(t, systemicQuestions[:3], track.Questions)
}

func TestSelectReturnsCopies(t *testing.T) {
	track := Select(model.TrackerEntry{AnxietyLevel: 9, Emotions: []string{"fear"}})
	track.Questions[0] = "changed"
	track.Practice.Steps[0] = "changed"

	again := Select(model.TrackerEntry{AnxietyLevel: 9, Emotions: []string{"fear"}})
	assert.NotEqual(t, "changed", again.Questions[0])
	assert.NotEqual(t, "changed", again.Practice.Steps[0])
}

func TestFlowWithPractice(t *testing.T) {
	f := NewFlow(Select(model.TrackerEntry{AnxietyLevel: 8, Emotions: []string{"fear"}}))
	assert.Equal(t, PhaseQuestioning, f.Phase())
	assert.Equal(t, 0, f.Index())
	assert.Equal(t, bodyQuestions[0], f.Question())

	require.NoError(t, f.Next())
	assert.Equal(t, 1, f.Index())
	assert.Equal(t, bodyQuestions[1], f.Question())

	require.NoError(t, f.Next())
	assert.Equal(t, PhasePractice, f.Phase())
	assert.Empty(t, f.Question())
	assert.Error(t, f.Next())

	require.NoError(t, f.Finish())
	assert.Equal(t, PhaseDone, f.Phase())
	assert.Error(t, f.Finish())
}

func TestFlowWithoutPractice(t *testing.T) {
	f := NewFlow(Select(model.TrackerEntry{AnxietyLevel: 2, Emotions: []string{"calm"}}))
	assert.Error(t, f.Finish())

	for i := 0; i < 3; i++ {
		assert.Equal(t, PhaseQuestioning, f.Phase())
		require.NoError(t, f.Next())
	}
	assert.Equal(t, PhaseDone, f.Phase())
}

func TestFlowAdvance(t *testing.T) {
	body := Select(model.TrackerEntry{AnxietyLevel: 8, Emotions: []string{"fear"}})

	f := NewFlow(body)
	f.Advance(1)
	assert.Equal(t, PhaseQuestioning, f.Phase())
	assert.Equal(t, 1, f.Index())

	f = NewFlow(body)
	f.Advance(2)
	assert.Equal(t, PhasePractice, f.Phase())

	f = NewFlow(body)
	f.Advance(10)
	assert.Equal(t, PhaseDone, f.Phase())
}

func TestFlowEmptyTrack(t *testing.T) {
	f := NewFlow(Track{Kind: KindSystemic})
	assert.Equal(t, PhaseDone, f.Phase())
	assert.Empty(t, f.Question())
}

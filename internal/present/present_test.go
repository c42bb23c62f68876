package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/wellness/internal/analytics"
	"github.com/rcliao/wellness/internal/model"
	"github.com/rcliao/wellness/internal/response"
)

var now = time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC)

func TestAnxietyColor(t *testing.T) {
	assert.Equal(t, ColorLow, AnxietyColor(1))
	assert.Equal(t, ColorLow, AnxietyColor(3))
	assert.Equal(t, ColorMedium, AnxietyColor(3.1))
	assert.Equal(t, ColorMedium, AnxietyColor(6))
	assert.Equal(t, ColorHigh, AnxietyColor(7))
}

func TestTrendText(t *testing.T) {
	assert.Equal(t, "Anxiety is rising", TrendText(analytics.TrendUp))
	assert.Equal(t, "Anxiety is easing", TrendText(analytics.TrendDown))
	assert.Equal(t, "Steady level", TrendText(analytics.TrendStable))
}

func TestEmotionLabel(t *testing.T) {
	assert.Equal(t, "Emptiness", EmotionLabel("emptiness"))
	assert.Equal(t, "boredom", EmotionLabel("boredom"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "10 Mar, 09:05", FormatDate(now, time.UTC))
	assert.Equal(t, "10 Mar, 11:05", FormatDate(now, time.FixedZone("UTC+2", 2*60*60)))
}

func TestTopEmotions(t *testing.T) {
	top := TopEmotions(map[string]int{"calm": 2, "joy": 5, "fear": 2, "hope": 1, "anger": 1}, 4)
	assert.Equal(t, []EmotionCount{
		{"joy", 5}, {"calm", 2}, {"fear", 2}, {"anger", 1},
	}, top)
}

func TestReport(t *testing.T) {
	entries := []model.TrackerEntry{
		{Date: now, AnxietyLevel: 8, Emotions: []string{"anxiety", "fear"}},
		{Date: now.AddDate(0, 0, -1), AnxietyLevel: 4, Emotions: []string{"calm"}},
	}
	out := Report(analytics.Compute(entries, entries, now), analytics.PeriodWeek, time.UTC)
	assert.Contains(t, out, "Analytics: week")
	assert.Contains(t, out, "6.0")
	assert.Contains(t, out, "Steady level")
	assert.Contains(t, out, "2 days")
	assert.Contains(t, out, "Anxiety + Fear")
	assert.Contains(t, out, "Tuesday")
}

func TestReportEmpty(t *testing.T) {
	out := Report(analytics.Compute(nil, nil, now), analytics.PeriodMonth, time.UTC)
	assert.Contains(t, out, "No entries for this period yet.")
	assert.Contains(t, out, "0 days")
}

func TestProfile(t *testing.T) {
	entries := []model.TrackerEntry{{Date: now, AnxietyLevel: 5, Emotions: []string{"hope"}}}
	st := analytics.Profile(entries, nil, nil)
	out := Profile(st, analytics.MeditationStats{TotalMinutes: 25, TotalSessions: 2}, &model.User{Email: "ana@example.com"}, time.UTC)
	assert.Contains(t, out, "Profile: ana@example.com")
	assert.Contains(t, out, "Hope")
	assert.Contains(t, out, "10 Mar, 09:05")
	assert.Contains(t, out, "0 / 7")
	assert.Contains(t, out, "25")
}

func TestTrack(t *testing.T) {
	f := response.NewFlow(response.Select(model.TrackerEntry{AnxietyLevel: 9, Emotions: []string{"joy"}}))
	out := Track(f)
	assert.Contains(t, out, "1/2")
	assert.NotContains(t, out, "2/2")

	f.Advance(2)
	out = Track(f)
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "A short body practice")
	assert.Contains(t, out, "5. ")

	f.Advance(1)
	assert.Contains(t, Track(f), "Done.")
}

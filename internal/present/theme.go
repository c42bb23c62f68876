// Package present renders analytics, profile and follow-up tracks as terminal
// text.
package present

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/wellness/internal/analytics"
	"github.com/rcliao/wellness/internal/model"
)

// Anxiety colors.
const (
	ColorLow    = lipgloss.Color("#4A9D7A")
	ColorMedium = lipgloss.Color("#C08450")
	ColorHigh   = lipgloss.Color("#C75450")
	ColorMuted  = lipgloss.Color("#8A8A8A")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7B6B8E")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A90A4")).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(22)

	valueStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// AnxietyColor maps an anxiety level (or average) to its display color.
func AnxietyColor(level float64) lipgloss.Color {
	switch {
	case level <= 3:
		return ColorLow
	case level <= 6:
		return ColorMedium
	}
	return ColorHigh
}

// TrendText describes a trend in words.
func TrendText(t analytics.Trend) string {
	switch t {
	case analytics.TrendUp:
		return "Anxiety is rising"
	case analytics.TrendDown:
		return "Anxiety is easing"
	}
	return "Steady level"
}

// TrendColor is red for rising anxiety and green for easing.
func TrendColor(t analytics.Trend) lipgloss.Color {
	switch t {
	case analytics.TrendUp:
		return ColorHigh
	case analytics.TrendDown:
		return ColorLow
	}
	return ColorMuted
}

var emotionLabels = map[string]string{
	"calm":      "Calm",
	"joy":       "Joy",
	"sadness":   "Sadness",
	"anxiety":   "Anxiety",
	"anger":     "Anger",
	"fear":      "Fear",
	"emptiness": "Emptiness",
	"hope":      "Hope",
}

// EmotionLabel returns the display name of an emotion tag. Unknown tags are
// shown as stored.
func EmotionLabel(tag string) string {
	if l, ok := emotionLabels[tag]; ok {
		return l
	}
	return tag
}

// FormatDate renders t like "10 Mar, 09:05" in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2 Jan, 15:04")
}

// EmotionCount is one row of a ranked emotion list.
type EmotionCount struct {
	Emotion string
	Count   int
}

// TopEmotions ranks counts by count, then by tag, and keeps the first n.
func TopEmotions(counts map[string]int, n int) []EmotionCount {
	out := make([]EmotionCount, 0, len(counts))
	for em, c := range counts {
		out = append(out, EmotionCount{Emotion: em, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Emotion < out[j].Emotion
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func colored(c lipgloss.Color, s string) string {
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(s)
}

func emotionList(tags []string) string {
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = EmotionLabel(t)
	}
	return strings.Join(labels, ", ")
}

// EntryLine renders a tracker entry on one line.
func EntryLine(e model.TrackerEntry, loc *time.Location) string {
	line := dimStyle.Render(FormatDate(e.Date, loc)) + "  " +
		colored(AnxietyColor(float64(e.AnxietyLevel)), strings.Repeat("●", e.AnxietyLevel)) + "  " +
		emotionList(e.Emotions)
	if e.Thought != "" {
		line += dimStyle.Render("  " + e.Thought)
	}
	return line
}

package present

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/wellness/internal/analytics"
	"github.com/rcliao/wellness/internal/model"
	"github.com/rcliao/wellness/internal/response"
)

const barWidth = 20

// Report renders an analytics report for a period.
func Report(r analytics.Report, p analytics.Period, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Analytics: " + string(p)))
	b.WriteString("\n")

	if r.TotalEntries == 0 {
		b.WriteString(dimStyle.Render("No entries for this period yet."))
		b.WriteString("\n")
		b.WriteString(row("Streak", valueStyle.Render(days(r.StreakDays))))
		return containerStyle.Render(b.String())
	}

	b.WriteString(row("Average anxiety", colored(AnxietyColor(r.AvgAnxiety), fmt.Sprintf("%.1f", r.AvgAnxiety))))
	b.WriteString("\n")
	b.WriteString(row("Entries", valueStyle.Render(fmt.Sprint(r.TotalEntries))))
	b.WriteString("\n")
	b.WriteString(row("Trend", colored(TrendColor(r.Trend), TrendText(r.Trend))))
	b.WriteString("\n")
	b.WriteString(row("Streak", valueStyle.Render(days(r.StreakDays))))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Mood chart"))
	b.WriteString("\n")
	for _, pt := range r.Chart {
		b.WriteString(row(pt.Label+" "+FormatDate(pt.Date, loc), bar(pt.Value, model.MaxAnxiety, AnxietyColor(float64(pt.Value)))))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Emotions"))
	b.WriteString("\n")
	for _, f := range r.EmotionFrequency {
		b.WriteString(row(EmotionLabel(f.Emotion), fmt.Sprintf("%3d%% (%d)", f.Percentage, f.Count)))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("By weekday"))
	b.WriteString("\n")
	for _, w := range r.WeekdayPattern {
		if w.Count == 0 {
			b.WriteString(row(w.Day, dimStyle.Render("-")))
		} else {
			b.WriteString(row(w.Day, colored(AnxietyColor(w.AvgAnxiety), fmt.Sprintf("%.1f", w.AvgAnxiety))+
				dimStyle.Render(fmt.Sprintf(" (%d)", w.Count))))
		}
		b.WriteString("\n")
	}

	if len(r.EmotionPairs) > 0 {
		b.WriteString(sectionStyle.Render("Often together"))
		b.WriteString("\n")
		for _, pr := range r.EmotionPairs {
			b.WriteString(row(EmotionLabel(pr.Pair[0])+" + "+EmotionLabel(pr.Pair[1]), fmt.Sprint(pr.Count)))
			b.WriteString("\n")
		}
	}
	return containerStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Profile renders profile statistics.
func Profile(st analytics.ProfileStats, med analytics.MeditationStats, user *model.User, loc *time.Location) string {
	var b strings.Builder
	title := "Profile"
	if user != nil {
		title += ": " + user.Email
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Journal"))
	b.WriteString("\n")
	b.WriteString(row("Entries", valueStyle.Render(fmt.Sprint(st.TotalTrackerEntries))))
	b.WriteString("\n")
	if st.TotalTrackerEntries > 0 {
		b.WriteString(row("Average anxiety", colored(AnxietyColor(st.AvgAnxietyLevel), fmt.Sprintf("%.1f", st.AvgAnxietyLevel))))
		b.WriteString("\n")
	}
	for _, ec := range TopEmotions(st.EmotionCounts, 4) {
		b.WriteString(row(EmotionLabel(ec.Emotion), fmt.Sprint(ec.Count)))
		b.WriteString("\n")
	}
	if st.LastTrackerEntry != nil {
		b.WriteString(row("Last entry", dimStyle.Render(FormatDate(st.LastTrackerEntry.Date, loc))))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Exercises"))
	b.WriteString("\n")
	b.WriteString(row("Sessions", valueStyle.Render(fmt.Sprint(st.TotalAntianxietySessions))))
	b.WriteString("\n")
	for _, t := range model.ExerciseTypes {
		b.WriteString(row(string(t), fmt.Sprint(st.ExerciseCounts[t])))
		b.WriteString("\n")
	}
	if st.LastAntianxietySession != nil {
		b.WriteString(row("Last session", dimStyle.Render(FormatDate(st.LastAntianxietySession.CompletedAt, loc))))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Meditation"))
	b.WriteString("\n")
	b.WriteString(row("Sessions", valueStyle.Render(fmt.Sprint(med.TotalSessions))))
	b.WriteString("\n")
	b.WriteString(row("Minutes", valueStyle.Render(fmt.Sprint(med.TotalMinutes))))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Program"))
	b.WriteString("\n")
	b.WriteString(row("Days completed", valueStyle.Render(fmt.Sprintf("%d / %d", st.ProgramCompletedDays, st.ProgramTotalDays))))
	b.WriteString("\n")
	b.WriteString(bar(st.ProgramCompletedDays, st.ProgramTotalDays, ColorLow))

	return containerStyle.Render(b.String())
}

// Track renders a follow-up flow at its current position: questions answered
// so far, the current question, and the practice once reached.
func Track(f *response.Flow) string {
	t := f.Track()
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title))
	b.WriteString("\n")

	shown := len(t.Questions)
	if f.Phase() == response.PhaseQuestioning {
		shown = f.Index() + 1
	}
	for i := 0; i < shown; i++ {
		q := fmt.Sprintf("%d/%d  %s", i+1, len(t.Questions), t.Questions[i])
		if f.Phase() == response.PhaseQuestioning && i == f.Index() {
			b.WriteString(valueStyle.Render(q))
		} else {
			b.WriteString(dimStyle.Render(q))
		}
		b.WriteString("\n")
	}

	if t.Practice != nil && f.Phase() != response.PhaseQuestioning {
		b.WriteString(sectionStyle.Render(t.Practice.Title))
		b.WriteString("\n")
		for i, s := range t.Practice.Steps {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
		}
	}
	if f.Phase() == response.PhaseDone {
		b.WriteString(dimStyle.Render("Done."))
	}
	return containerStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func bar(value, total int, c lipgloss.Color) string {
	if total <= 0 {
		return ""
	}
	filled := min(max(value*barWidth/total, 0), barWidth)
	return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %d", value)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

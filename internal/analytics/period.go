// Package analytics derives display statistics from tracker history. Every
// function here is pure: it reads its arguments, never mutates them, and
// depends on the current time only through an explicit now.
package analytics

import (
	"fmt"
	"time"

	"github.com/rcliao/wellness/internal/model"
)

// Period selects how far back the analytics screen looks.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// Fixed-length windows, not calendar weeks or months.
const (
	WeekWindow  = 7 * 24 * time.Hour
	MonthWindow = 30 * 24 * time.Hour
)

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	}
	return "", fmt.Errorf("invalid period %q (valid: week, month, all)", s)
}

// Window returns the period length; zero for PeriodAll.
func (p Period) Window() time.Duration {
	switch p {
	case PeriodWeek:
		return WeekWindow
	case PeriodMonth:
		return MonthWindow
	}
	return 0
}

// FilterByPeriod keeps entries dated within [now-window, now], preserving input
// order. PeriodAll returns a copy of every entry.
func FilterByPeriod(entries []model.TrackerEntry, p Period, now time.Time) []model.TrackerEntry {
	out := make([]model.TrackerEntry, 0, len(entries))
	window := p.Window()
	if window == 0 {
		return append(out, entries...)
	}

	cutoff := now.Add(-window)
	for _, e := range entries {
		if e.Date.Before(cutoff) || e.Date.After(now) {
			continue
		}
		out = append(out, e)
	}
	return out
}

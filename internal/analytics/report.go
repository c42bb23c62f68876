package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/rcliao/wellness/internal/model"
)

const (
	chartPoints     = 7
	topEmotions     = 6
	topPairs        = 3
	trendMinEntries = 4
	trendThreshold  = 0.5
)

// Sunday-first weekday names, indexed by time.Weekday.
var (
	WeekdayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	WeekdayFull  = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

// Trend is the direction anxiety is moving in.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ChartPoint is one bar of the mood chart.
type ChartPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
	Label string    `json:"label"`
}

// EmotionShare is an emotion's share of all tag occurrences.
type EmotionShare struct {
	Emotion    string `json:"emotion"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// WeekdayStat is the anxiety pattern of one day of the week.
type WeekdayStat struct {
	Day        string  `json:"day"`
	AvgAnxiety float64 `json:"avg_anxiety"`
	Count      int     `json:"count"`
}

// EmotionPair counts entries in which two emotions were logged together.
type EmotionPair struct {
	Pair  [2]string `json:"pair"`
	Count int       `json:"count"`
}

// Report is everything the analytics screen shows for one period.
type Report struct {
	AvgAnxiety       float64        `json:"avg_anxiety"`
	TotalEntries     int            `json:"total_entries"`
	Chart            []ChartPoint   `json:"chart"`
	EmotionFrequency []EmotionShare `json:"emotion_frequency"`
	WeekdayPattern   []WeekdayStat  `json:"weekday_pattern"`
	EmotionPairs     []EmotionPair  `json:"emotion_pairs"`
	Trend            Trend          `json:"trend"`
	StreakDays       int            `json:"streak_days"`
}

// Compute builds the report. filtered is the period-filtered history (newest
// first); all is the full history, used only for the streak. Weekdays and
// calendar days are taken in now's location.
func Compute(filtered, all []model.TrackerEntry, now time.Time) Report {
	loc := now.Location()
	return Report{
		AvgAnxiety:       AverageAnxiety(filtered),
		TotalEntries:     len(filtered),
		Chart:            ChartSeries(filtered, loc),
		EmotionFrequency: EmotionFrequency(filtered, topEmotions),
		WeekdayPattern:   WeekdayPattern(filtered, loc),
		EmotionPairs:     EmotionPairs(filtered, topPairs),
		Trend:            AnxietyTrend(filtered),
		StreakDays:       Streak(all, now),
	}
}

// AverageAnxiety is the mean anxiety level rounded to one decimal, 0 when empty.
func AverageAnxiety(entries []model.TrackerEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	return round1(meanAnxiety(entries))
}

// ChartSeries maps the 7 newest entries to chart points in chronological order.
func ChartSeries(entries []model.TrackerEntry, loc *time.Location) []ChartPoint {
	n := min(len(entries), chartPoints)
	points := make([]ChartPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		e := entries[i]
		points = append(points, ChartPoint{
			Date:  e.Date,
			Value: e.AnxietyLevel,
			Label: WeekdayShort[e.Date.In(loc).Weekday()],
		})
	}
	return points
}

// EmotionCounts counts every emotion tag occurrence.
func EmotionCounts(entries []model.TrackerEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, em := range e.Emotions {
			counts[em]++
		}
	}
	return counts
}

// EmotionFrequency ranks emotions by occurrence. Percentages are of all tag
// occurrences, not of entries, and are computed before truncating to top.
// Ties keep the order in which emotions first appear.
func EmotionFrequency(entries []model.TrackerEntry, top int) []EmotionShare {
	var order []string
	counts := make(map[string]int)
	total := 0
	for _, e := range entries {
		for _, em := range e.Emotions {
			if counts[em] == 0 {
				order = append(order, em)
			}
			counts[em]++
			total++
		}
	}

	shares := make([]EmotionShare, 0, len(order))
	for _, em := range order {
		shares = append(shares, EmotionShare{
			Emotion:    em,
			Count:      counts[em],
			Percentage: int(math.Round(float64(counts[em]) * 100 / float64(total))),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Count > shares[j].Count })

	if top > 0 && len(shares) > top {
		shares = shares[:top]
	}
	return shares
}

// WeekdayPattern buckets entries by day of week. All 7 buckets are returned,
// Sunday first, including empty ones.
func WeekdayPattern(entries []model.TrackerEntry, loc *time.Location) []WeekdayStat {
	var totals, counts [7]int
	for _, e := range entries {
		d := e.Date.In(loc).Weekday()
		totals[d] += e.AnxietyLevel
		counts[d]++
	}

	stats := make([]WeekdayStat, 7)
	for d := range stats {
		stats[d] = WeekdayStat{Day: WeekdayFull[d], Count: counts[d]}
		if counts[d] > 0 {
			stats[d].AvgAnxiety = round1(float64(totals[d]) / float64(counts[d]))
		}
	}
	return stats
}

// EmotionPairs counts unordered emotion pairs co-occurring within an entry.
// Each pair is keyed alphabetically so order of entry does not matter.
func EmotionPairs(entries []model.TrackerEntry, top int) []EmotionPair {
	var order [][2]string
	counts := make(map[[2]string]int)
	for _, e := range entries {
		if len(e.Emotions) < 2 {
			continue
		}
		for i := 0; i < len(e.Emotions)-1; i++ {
			for j := i + 1; j < len(e.Emotions); j++ {
				key := canonicalPair(e.Emotions[i], e.Emotions[j])
				if counts[key] == 0 {
					order = append(order, key)
				}
				counts[key]++
			}
		}
	}

	pairs := make([]EmotionPair, 0, len(order))
	for _, key := range order {
		pairs = append(pairs, EmotionPair{Pair: key, Count: counts[key]})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Count > pairs[j].Count })

	if top > 0 && len(pairs) > top {
		pairs = pairs[:top]
	}
	return pairs
}

func canonicalPair(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// AnxietyTrend compares the newer half of a newest-first list with the older
// half. Fewer than 4 entries is always stable.
func AnxietyTrend(entries []model.TrackerEntry) Trend {
	if len(entries) < trendMinEntries {
		return TrendStable
	}
	half := len(entries) / 2
	diff := meanAnxiety(entries[:half]) - meanAnxiety(entries[half:])
	switch {
	case diff > trendThreshold:
		return TrendUp
	case diff < -trendThreshold:
		return TrendDown
	}
	return TrendStable
}

// Streak counts consecutive calendar days with at least one entry, ending today
// or yesterday in now's location. A most recent entry older than yesterday
// means no streak.
func Streak(entries []model.TrackerEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}
	loc := now.Location()

	seen := make(map[int64]bool)
	var days []int64
	for _, e := range entries {
		d := civilDay(e.Date.In(loc))
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	today := civilDay(now)
	if days[0] != today && days[0] != today-1 {
		return 0
	}

	streak := 0
	expect := days[0]
	for _, d := range days {
		if d != expect {
			break
		}
		streak++
		expect--
	}
	return streak
}

// civilDay numbers the calendar date of t (in t's own location) so that
// consecutive dates differ by one regardless of DST.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func meanAnxiety(entries []model.TrackerEntry) float64 {
	sum := 0
	for _, e := range entries {
		sum += e.AnxietyLevel
	}
	return float64(sum) / float64(len(entries))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Package aggregate holds the pure derivation logic computed over fetched
// records: time/energy summaries, metric series, progress percentages, and
// autocomplete sets. Everything here is input to output with no storage
// access, recomputed on every call.
package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/metric"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/pomodoro"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/app/domain/timeaudit"
)

// DurationMinutes interprets two wall-clock "HH:MM" strings within the same
// calendar day and returns the difference in minutes. Entries crossing
// midnight are not supported: an end before the start yields a negative
// result, unguarded. Malformed input yields 0.
func DurationMinutes(startTime, endTime string) int {
	start, ok := parseClock(startTime)
	if !ok {
		return 0
	}
	end, ok := parseClock(endTime)
	if !ok {
		return 0
	}
	return end - start
}

func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// Summary is the rollup of a set of time-audit entries within a window.
// Energy counts and dollar counts each sum to TotalEntries.
type Summary struct {
	WindowDays   int                         `json:"windowDays"`
	TotalEntries int                         `json:"totalEntries"`
	TotalMinutes int                         `json:"totalMinutes"`
	EnergyCounts map[timeaudit.EnergyLevel]int `json:"energyCounts"`
	DollarCounts map[int]int                 `json:"dollarCounts"`
}

// Summarize rolls up entries whose activity date falls in the window of the
// given number of days ending at now, inclusive on both ends.
func Summarize(entries []timeaudit.Entry, now time.Time, days int) Summary {
	s := Summary{
		WindowDays: days,
		EnergyCounts: map[timeaudit.EnergyLevel]int{
			timeaudit.EnergyRed:    0,
			timeaudit.EnergyYellow: 0,
			timeaudit.EnergyGreen:  0,
		},
		DollarCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0},
	}

	start := now.AddDate(0, 0, -days)
	for _, e := range entries {
		if e.ActivityDate.Before(start) || e.ActivityDate.After(now) {
			continue
		}
		s.TotalEntries++
		s.TotalMinutes += DurationMinutes(e.StartTime, e.EndTime)
		s.EnergyCounts[e.EnergyLevel]++
		s.DollarCounts[e.DollarValue]++
	}
	return s
}

// WindowDays are the standard dashboard windows: weekly, biweekly, monthly.
var WindowDays = []int{7, 14, 30}

// WindowSummaries computes the standard window rollups keyed by day count.
func WindowSummaries(entries []timeaudit.Entry, now time.Time) map[int]Summary {
	result := make(map[int]Summary, len(WindowDays))
	for _, days := range WindowDays {
		result[days] = Summarize(entries, now, days)
	}
	return result
}

// ProgressPercent is round(current/target*100), defined as 0 when the target
// is 0. Negative values pass through the same formula.
func ProgressPercent(current, target float64) int {
	if target == 0 {
		return 0
	}
	return int(math.Round(current / target * 100))
}

// GroupScorecardsByName partitions scorecard readings into named series.
func GroupScorecardsByName(metrics []metric.Scorecard) map[string][]metric.Scorecard {
	result := make(map[string][]metric.Scorecard)
	for _, m := range metrics {
		result[m.MetricName] = append(result[m.MetricName], m)
	}
	return result
}

// LatestScorecardPerName returns, for each metric name, the reading with the
// maximum recorded date.
func LatestScorecardPerName(metrics []metric.Scorecard) map[string]metric.Scorecard {
	result := make(map[string]metric.Scorecard)
	for _, m := range metrics {
		latest, ok := result[m.MetricName]
		if !ok || m.RecordedDate.After(latest.RecordedDate) {
			result[m.MetricName] = m
		}
	}
	return result
}

// ChartPoint is one plotted reading of a metric series.
type ChartPoint struct {
	Label   string  `json:"label"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
}

// ScorecardSeries projects one named metric's readings to chart points,
// sorted ascending by recorded date. Readings without a target plot 0.
func ScorecardSeries(metrics []metric.Scorecard, name string) []ChartPoint {
	var series []metric.Scorecard
	for _, m := range metrics {
		if m.MetricName == name {
			series = append(series, m)
		}
	}
	sort.Slice(series, func(i, j int) bool { return series[i].RecordedDate.Before(series[j].RecordedDate) })

	points := make([]ChartPoint, 0, len(series))
	for _, m := range series {
		var target float64
		if m.TargetValue != nil {
			target = *m.TargetValue
		}
		points = append(points, ChartPoint{
			Label:   m.RecordedDate.Format("Jan 2"),
			Current: m.CurrentValue,
			Target:  target,
		})
	}
	return points
}

// NorthStarSeries projects north-star readings to chart points, sorted
// ascending by recorded date.
func NorthStarSeries(metrics []metric.NorthStar) []ChartPoint {
	series := append([]metric.NorthStar(nil), metrics...)
	sort.Slice(series, func(i, j int) bool { return series[i].RecordedDate.Before(series[j].RecordedDate) })

	points := make([]ChartPoint, 0, len(series))
	for _, m := range series {
		points = append(points, ChartPoint{
			Label:   m.RecordedDate.Format("Jan 2"),
			Current: m.CurrentValue,
			Target:  m.TargetValue,
		})
	}
	return points
}

// CompletionRate reports pomodoro totals and the completed percentage,
// rounded. An empty set rates 0.
func CompletionRate(sessions []pomodoro.Session) (total, completed, percent int) {
	total = len(sessions)
	for _, s := range sessions {
		if s.Completed {
			completed++
		}
	}
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return total, completed, percent
}

// Suggestions dedupes prior entry descriptions into a sorted set and filters
// by case-insensitive substring match against the in-progress input. The set
// is rebuilt from the full history on every call; per-user cardinality is
// low enough that no incremental index is kept.
func Suggestions(entries []timeaudit.Entry, query string) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		d := strings.TrimSpace(e.Description)
		if d != "" {
			seen[d] = struct{}{}
		}
	}

	q := strings.ToLower(query)
	result := make([]string, 0, len(seen))
	for d := range seen {
		if q == "" || strings.Contains(strings.ToLower(d), q) {
			result = append(result, d)
		}
	}
	sort.Strings(result)
	return result
}

// Package stats computes aggregate statistics over hourly observation rows.
// All grouping is by local calendar day: each UTC instant is converted into
// the request timezone first and the civil date is taken from the wall clock,
// so DST transition days may contain more or fewer than 24 hours.
package stats

import (
	"math"
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// UTCWindow converts the inclusive local date range [start 00:00:00,
// end 23:59:59.999999] into UTC instants. The window covers every hour whose
// local wall-clock date falls inside the range, including hours shifted
// across the UTC date boundary by the zone offset or DST.
func UTCWindow(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999000, loc)
	return s.UTC(), e.UTC()
}

// InclusiveDays counts the calendar days spanned by [start, end], both
// midnight-UTC dates. A day with zero observations still counts.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func localDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

func sortedDays(daily map[string]float64) []string {
	days := make([]string, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

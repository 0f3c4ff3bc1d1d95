package stats

import (
	"time"

	"meteostats/internal/models"
)

// DayValue is a per-day reading: the value and the local date (or local
// minute, for summary temperature extremes) it belongs to.
type DayValue struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

type PrecipitationStats struct {
	Total                 float64            `json:"total"`
	TotalByDay            map[string]float64 `json:"total_by_day"`
	DaysWithPrecipitation int                `json:"days_with_precipitation"`
	Max                   DayValue           `json:"max"`
	Average               float64            `json:"average"`
}

// Precipitation aggregates hourly precipitation into per-local-day sums.
// Unlike temperature, null readings coerce to 0 before summing, so every row
// lands in a day bucket. The average divides the unrounded total by the
// inclusive calendar-day count of [start, end]: days with no data still
// divide into the denominator. Returns nil when there are no rows at all.
func Precipitation(obs []models.HourlyObservation, loc *time.Location, start, end time.Time) *PrecipitationStats {
	if len(obs) == 0 {
		return nil
	}

	daily := make(map[string]float64)
	for _, o := range obs {
		v := 0.0
		if o.Precipitation.Valid {
			v = o.Precipitation.Float64
		}
		daily[localDay(o.ObservedAt, loc)] += v
	}

	days := sortedDays(daily)
	var total float64
	wet := 0
	maxDay := days[0]
	for _, d := range days {
		total += daily[d]
		if daily[d] > 0 {
			wet++
		}
		// strictly greater keeps the earliest date on ties
		if daily[d] > daily[maxDay] {
			maxDay = d
		}
	}

	byDay := make(map[string]float64, len(daily))
	for d, v := range daily {
		byDay[d] = round1(v)
	}

	average := 0.0
	if numDays := InclusiveDays(start, end); numDays > 0 {
		average = total / float64(numDays)
	}

	return &PrecipitationStats{
		Total:                 round1(total),
		TotalByDay:            byDay,
		DaysWithPrecipitation: wet,
		Max:                   DayValue{Value: round1(daily[maxDay]), Date: maxDay},
		Average:               round2(average),
	}
}

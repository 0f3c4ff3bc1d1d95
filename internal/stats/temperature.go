package stats

import (
	"time"

	"meteostats/internal/models"
)

// TimeValue is an extreme reading: the value and the local minute it occurred.
type TimeValue struct {
	Value    float64 `json:"value"`
	DateTime string  `json:"date_time"`
}

type TemperatureStats struct {
	Average             float64            `json:"average"`
	AverageByDay        map[string]float64 `json:"average_by_day"`
	Max                 TimeValue          `json:"max"`
	Min                 TimeValue          `json:"min"`
	HoursAboveThreshold int                `json:"hours_above_threshold"`
	HoursBelowThreshold int                `json:"hours_below_threshold"`
}

// Temperature aggregates hourly temperatures over the rows. Null readings are
// dropped entirely: they contribute to no mean, extreme, or threshold count.
// Extremes keep the first occurrence in row order on ties. Returns nil when
// no usable readings exist, so a mean over an empty set is never computed.
//
// Thresholds are strict: hours_above counts readings > high, hours_below
// counts readings < low.
func Temperature(obs []models.HourlyObservation, loc *time.Location, high, low float64) *TemperatureStats {
	var (
		sum            float64
		n              int
		maxIdx, minIdx = -1, -1
		above, below   int
	)
	daySum := make(map[string]float64)
	dayN := make(map[string]int)

	for i, o := range obs {
		if !o.Temperature.Valid {
			continue
		}
		v := o.Temperature.Float64
		sum += v
		n++

		day := localDay(o.ObservedAt, loc)
		daySum[day] += v
		dayN[day]++

		if maxIdx < 0 || v > obs[maxIdx].Temperature.Float64 {
			maxIdx = i
		}
		if minIdx < 0 || v < obs[minIdx].Temperature.Float64 {
			minIdx = i
		}
		if v > high {
			above++
		}
		if v < low {
			below++
		}
	}

	if n == 0 {
		return nil
	}

	byDay := make(map[string]float64, len(daySum))
	for day, s := range daySum {
		byDay[day] = round1(s / float64(dayN[day]))
	}

	return &TemperatureStats{
		Average:      round1(sum / float64(n)),
		AverageByDay: byDay,
		Max: TimeValue{
			Value:    round1(obs[maxIdx].Temperature.Float64),
			DateTime: isoMinutes(obs[maxIdx].ObservedAt, loc),
		},
		Min: TimeValue{
			Value:    round1(obs[minIdx].Temperature.Float64),
			DateTime: isoMinutes(obs[minIdx].ObservedAt, loc),
		},
		HoursAboveThreshold: above,
		HoursBelowThreshold: below,
	}
}

// isoMinutes renders the instant in the request zone at minute precision,
// ISO-8601 with offset, e.g. "2024-07-01T15:00:00+02:00".
func isoMinutes(t time.Time, loc *time.Location) string {
	return t.Truncate(time.Minute).In(loc).Format("2006-01-02T15:04:05Z07:00")
}

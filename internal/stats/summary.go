package stats

import (
	"time"

	"meteostats/internal/models"
)

// CitySummary combines temperature and precipitation aggregates for one city
// over a date range. Temperature fields are nil when no usable temperature
// readings exist; precipitation fields zero out instead, preserving the
// null-handling asymmetry of the per-metric endpoints.
type CitySummary struct {
	StartDate             string    `json:"start_date"`
	EndDate               string    `json:"end_date"`
	TemperatureAverage    *float64  `json:"temperature_average"`
	PrecipitationTotal    float64   `json:"precipitation_total"`
	DaysWithPrecipitation int       `json:"days_with_precipitation"`
	PrecipitationMax      *DayValue `json:"precipitation_max"`
	TemperatureMax        *DayValue `json:"temperature_max"`
	TemperatureMin        *DayValue `json:"temperature_min"`
}

// Summarize never returns nil: with no rows it echoes the range back with
// zeroed precipitation and null temperature fields.
func Summarize(obs []models.HourlyObservation, loc *time.Location, start, end time.Time) *CitySummary {
	out := &CitySummary{
		StartDate: start.Format(DateLayout),
		EndDate:   end.Format(DateLayout),
	}
	if len(obs) == 0 {
		return out
	}

	var (
		sum            float64
		n              int
		maxIdx, minIdx = -1, -1
	)
	daily := make(map[string]float64)

	for i, o := range obs {
		if o.Temperature.Valid {
			v := o.Temperature.Float64
			sum += v
			n++
			if maxIdx < 0 || v > obs[maxIdx].Temperature.Float64 {
				maxIdx = i
			}
			if minIdx < 0 || v < obs[minIdx].Temperature.Float64 {
				minIdx = i
			}
		}

		p := 0.0
		if o.Precipitation.Valid {
			p = o.Precipitation.Float64
		}
		daily[localDay(o.ObservedAt, loc)] += p
	}

	if n > 0 {
		avg := round1(sum / float64(n))
		out.TemperatureAverage = &avg
		out.TemperatureMax = &DayValue{
			Date:  localMinute(obs[maxIdx].ObservedAt, loc),
			Value: round1(obs[maxIdx].Temperature.Float64),
		}
		out.TemperatureMin = &DayValue{
			Date:  localMinute(obs[minIdx].ObservedAt, loc),
			Value: round1(obs[minIdx].Temperature.Float64),
		}
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
		if daily[d] > daily[maxDay] {
			maxDay = d
		}
	}
	out.PrecipitationTotal = round1(total)
	out.DaysWithPrecipitation = wet
	out.PrecipitationMax = &DayValue{Value: round1(daily[maxDay]), Date: maxDay}

	return out
}

// localMinute renders the instant in the request zone without offset or
// seconds, e.g. "2024-07-03T17:00".
func localMinute(t time.Time, loc *time.Location) string {
	return t.Truncate(time.Minute).In(loc).Format("2006-01-02T15:04")
}

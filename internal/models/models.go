package models

import (
	"database/sql"
	"time"
)

// City is a geocoded place we hold hourly observations for. The stored name
// is whatever the user typed at ingestion time, not the source's canonical
// spelling; the uniqueness key is (name, country).
type City struct {
	ID        int64
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// HourlyObservation is one archived hour for a city. Timestamps are UTC;
// local-time semantics are applied at query time. Temperature and
// precipitation are nullable because the source may omit either.
type HourlyObservation struct {
	ID            int64
	CityID        int64
	ObservedAt    time.Time
	Temperature   sql.NullFloat64
	Precipitation sql.NullFloat64
	CreatedAt     time.Time
}

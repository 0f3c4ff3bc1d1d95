// Package ingest orchestrates historical backfill: geocode a city name,
// upsert the city record, fetch the hourly archive series, and bulk-insert
// it with insert-or-ignore semantics.
package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"meteostats/internal/metrics"
	"meteostats/internal/models"
	"meteostats/internal/openmeteo"
	"meteostats/internal/store"
)

// Source is the slice of the weather API the loader needs.
type Source interface {
	Geocode(ctx context.Context, city string) (*openmeteo.GeocodeResult, error)
	FetchHourly(ctx context.Context, lat, lon float64, start, end string) ([]openmeteo.HourlyPoint, error)
}

type Loader struct {
	store  *store.Store
	source Source
}

func NewLoader(st *store.Store, src Source) *Loader {
	return &Loader{store: st, source: src}
}

// Result reports one ingestion run. Received is the row count from the
// source, Saved the count actually persisted; the difference is duplicates
// skipped by the uniqueness constraint.
type Result struct {
	City     *models.City
	Received int
	Saved    int
}

// Run backfills [start, end] (inclusive YYYY-MM-DD dates) for a city name.
// The city row is keyed by the user-typed name plus the resolved country, and
// its coordinates are refreshed on every run. Upstream failures propagate
// unretried; an unresolvable name is an error.
func (l *Loader) Run(ctx context.Context, cityName, start, end string) (*Result, error) {
	geo, err := l.source.Geocode(ctx, cityName)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", cityName, err)
	}
	if geo == nil {
		return nil, fmt.Errorf("City not found: %s", cityName)
	}

	city, err := l.store.UpsertCity(cityName, geo.Country, geo.Latitude, geo.Longitude)
	if err != nil {
		return nil, fmt.Errorf("upsert city %q: %w", cityName, err)
	}

	points, err := l.source.FetchHourly(ctx, geo.Latitude, geo.Longitude, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch hourly for %q: %w", cityName, err)
	}

	obs := make([]models.HourlyObservation, len(points))
	for i, p := range points {
		obs[i] = models.HourlyObservation{
			CityID:     city.ID,
			ObservedAt: p.Time,
		}
		if p.Temperature != nil {
			obs[i].Temperature = sql.NullFloat64{Float64: *p.Temperature, Valid: true}
		}
		if p.Precipitation != nil {
			obs[i].Precipitation = sql.NullFloat64{Float64: *p.Precipitation, Valid: true}
		}
	}

	saved, err := l.store.InsertHourlyBatch(city.ID, obs)
	if err != nil {
		return nil, fmt.Errorf("insert observations for %q: %w", cityName, err)
	}
	metrics.ObservationsIngested.WithLabelValues(city.Name).Add(float64(saved))

	return &Result{City: city, Received: len(points), Saved: saved}, nil
}

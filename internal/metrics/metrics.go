package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeocodeCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteostats_geocode_calls_total",
			Help: "Total Open-Meteo geocoding API calls",
		},
		[]string{"status"},
	)

	ArchiveCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteostats_archive_calls_total",
			Help: "Total Open-Meteo archive API calls",
		},
		[]string{"status"},
	)

	ObservationsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteostats_observations_ingested_total",
			Help: "Total hourly observations persisted, duplicates excluded",
		},
		[]string{"city"},
	)
)

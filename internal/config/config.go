// Package config holds the runtime configuration shared by the server and
// the ingestion command. Values come from flags, environment variables, or a
// .env file; there is no global state.
package config

import "time"

type Config struct {
	DB              string        `help:"Path to the SQLite database." default:"data/meteostats.db" env:"METEOSTATS_DB"`
	Port            string        `help:"HTTP server port." default:"8080" env:"METEOSTATS_PORT"`
	GeocodeURL      string        `help:"Open-Meteo geocoding endpoint." default:"https://geocoding-api.open-meteo.com/v1/search" env:"OPEN_METEO_GEOCODE_URL"`
	ArchiveURL      string        `help:"Open-Meteo archive endpoint." default:"https://archive-api.open-meteo.com/v1/archive" env:"OPEN_METEO_ARCHIVE_URL"`
	RequestTimeout  time.Duration `help:"Timeout for upstream API requests." default:"20s" env:"REQUEST_TIMEOUT"`
	DefaultTimezone string        `help:"IANA timezone applied when a request omits one." default:"Europe/Madrid" env:"DEFAULT_TZ"`
	ThresholdHigh   float64       `help:"Default high temperature threshold in °C." default:"30.0" env:"DEFAULT_TEMP_THRESHOLD_HIGH"`
	ThresholdLow    float64       `help:"Default low temperature threshold in °C." default:"0.0" env:"DEFAULT_TEMP_THRESHOLD_LOW"`
}

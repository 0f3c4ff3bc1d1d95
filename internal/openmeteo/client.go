// Package openmeteo talks to the Open-Meteo geocoding and historical archive
// APIs. Calls are one-shot: any transport error or non-200 status propagates
// to the caller, there is no retry.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"meteostats/internal/httputil"
	"meteostats/internal/metrics"
)

type Client struct {
	geocodeURL string
	archiveURL string
	timezone   string
	client     *http.Client
}

// NewClient builds a client against the given endpoints. timezone is the IANA
// zone the archive is queried in; its local timestamps are converted to UTC
// before being returned.
func NewClient(geocodeURL, archiveURL, timezone string, timeout time.Duration) *Client {
	return &Client{
		geocodeURL: geocodeURL,
		archiveURL: archiveURL,
		timezone:   timezone,
		client:     httputil.NewClient(timeout),
	}
}

type GeocodeResult struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode resolves a city name to its best match. Returns (nil, nil) when the
// search yields no results.
func (c *Client) Geocode(ctx context.Context, city string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")

	body, err := c.get(ctx, c.geocodeURL, params, metrics.GeocodeCalls)
	if err != nil {
		return nil, err
	}

	var data geocodeResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal geocode response: %w", err)
	}
	if len(data.Results) == 0 {
		return nil, nil
	}

	r := data.Results[0]
	name := r.Name
	if name == "" {
		name = city
	}
	return &GeocodeResult{
		Name:      name,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

// HourlyPoint is one hour of archive data. Time is UTC; either metric may be
// absent in the source.
type HourlyPoint struct {
	Time          time.Time
	Temperature   *float64
	Precipitation *float64
}

type archiveResponse struct {
	Hourly struct {
		Time          []string   `json:"time"`
		Temperature2M []*float64 `json:"temperature_2m"`
		Precipitation []*float64 `json:"precipitation"`
	} `json:"hourly"`
}

// FetchHourly fetches the hourly temperature and precipitation series for a
// coordinate over the inclusive [start, end] date range (YYYY-MM-DD).
func (c *Client) FetchHourly(ctx context.Context, lat, lon float64, start, end string) ([]HourlyPoint, error) {
	loc, err := time.LoadLocation(c.timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.timezone, err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("start_date", start)
	params.Set("end_date", end)
	params.Set("hourly", "temperature_2m,precipitation")
	params.Set("timezone", c.timezone)

	body, err := c.get(ctx, c.archiveURL, params, metrics.ArchiveCalls)
	if err != nil {
		return nil, err
	}

	var data archiveResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal archive response: %w", err)
	}

	points := make([]HourlyPoint, 0, len(data.Hourly.Time))
	for i, ts := range data.Hourly.Time {
		t, err := time.ParseInLocation("2006-01-02T15:04", ts, loc)
		if err != nil {
			return nil, fmt.Errorf("parse archive time %q: %w", ts, err)
		}
		p := HourlyPoint{Time: t.UTC()}
		if i < len(data.Hourly.Temperature2M) {
			p.Temperature = data.Hourly.Temperature2M[i]
		}
		if i < len(data.Hourly.Precipitation) {
			p.Precipitation = data.Hourly.Precipitation[i]
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, calls *prometheus.CounterVec) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		calls.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	calls.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d: %s", endpoint, resp.StatusCode, string(b))
	}

	return io.ReadAll(resp.Body)
}

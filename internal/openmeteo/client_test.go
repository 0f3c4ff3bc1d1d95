package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Madrid", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		w.Write([]byte(`{"results":[{"name":"Madrid","country":"Spain","latitude":40.4168,"longitude":-3.7038}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "Europe/Madrid", time.Second)
	geo, err := c.Geocode(context.Background(), "Madrid")
	require.NoError(t, err)
	require.NotNil(t, geo)

	assert.Equal(t, "Madrid", geo.Name)
	assert.Equal(t, "Spain", geo.Country)
	assert.InDelta(t, 40.4168, geo.Latitude, 1e-6)
	assert.InDelta(t, -3.7038, geo.Longitude, 1e-6)
}

func TestGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "Europe/Madrid", time.Second)
	geo, err := c.Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Nil(t, geo)
}

func TestGeocode_EmptyNameFallsBackToInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"country":"Spain","latitude":1,"longitude":2}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "Europe/Madrid", time.Second)
	geo, err := c.Geocode(context.Background(), "Madrid")
	require.NoError(t, err)
	require.NotNil(t, geo)
	assert.Equal(t, "Madrid", geo.Name)
}

func TestGeocode_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "Europe/Madrid", time.Second)
	_, err := c.Geocode(context.Background(), "Madrid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchHourly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2024-07-01", q.Get("start_date"))
		assert.Equal(t, "2024-07-01", q.Get("end_date"))
		assert.Equal(t, "temperature_2m,precipitation", q.Get("hourly"))
		assert.Equal(t, "Europe/Madrid", q.Get("timezone"))
		w.Write([]byte(`{"hourly":{
			"time":["2024-07-01T00:00","2024-07-01T01:00","2024-07-01T02:00"],
			"temperature_2m":[18.0,null,17.2],
			"precipitation":[0.0,0.3,null]
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "Europe/Madrid", time.Second)
	points, err := c.FetchHourly(context.Background(), 40.4, -3.7, "2024-07-01", "2024-07-01")
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Local midnight in Madrid (UTC+2 in July) is 22:00 UTC the previous day.
	assert.Equal(t, time.Date(2024, 6, 30, 22, 0, 0, 0, time.UTC), points[0].Time)
	assert.Equal(t, time.UTC, points[0].Time.Location())

	require.NotNil(t, points[0].Temperature)
	assert.Equal(t, 18.0, *points[0].Temperature)
	assert.Nil(t, points[1].Temperature)
	require.NotNil(t, points[1].Precipitation)
	assert.Equal(t, 0.3, *points[1].Precipitation)
	assert.Nil(t, points[2].Precipitation)
}

func TestFetchHourly_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL, "Europe/Madrid", time.Second)
	_, err := c.FetchHourly(context.Background(), 40.4, -3.7, "2024-07-01", "2024-07-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchHourly_BadTimezone(t *testing.T) {
	c := NewClient("http://unused", "http://unused", "Mars/Olympus", time.Second)
	_, err := c.FetchHourly(context.Background(), 0, 0, "2024-07-01", "2024-07-01")
	require.Error(t, err)
}

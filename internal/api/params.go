package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// statsQuery carries the parameters shared by the single-city endpoints.
// Dates are local calendar dates in the request timezone.
type statsQuery struct {
	City     string `validate:"required"`
	Start    string `validate:"required,datetime=2006-01-02"`
	End      string `validate:"required,datetime=2006-01-02"`
	Timezone string `validate:"required,timezone"`
}

func (s *Server) parseStatsQuery(q url.Values) (statsQuery, error) {
	sq := statsQuery{
		City:     q.Get("city"),
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Timezone: q.Get("timezone"),
	}
	if sq.Timezone == "" {
		sq.Timezone = s.cfg.DefaultTimezone
	}
	if err := validate.Struct(sq); err != nil {
		return sq, err
	}
	return sq, nil
}

// summaryQuery accepts a single city, a comma-separated list, or both;
// at least one must be present.
type summaryQuery struct {
	City     string `validate:"required_without=Cities"`
	Cities   string `validate:"required_without=City"`
	Start    string `validate:"required,datetime=2006-01-02"`
	End      string `validate:"required,datetime=2006-01-02"`
	Timezone string `validate:"required,timezone"`
}

func (s *Server) parseSummaryQuery(q url.Values) (summaryQuery, error) {
	sq := summaryQuery{
		City:     q.Get("city"),
		Cities:   q.Get("cities"),
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Timezone: q.Get("timezone"),
	}
	if sq.Timezone == "" {
		sq.Timezone = s.cfg.DefaultTimezone
	}
	if err := validate.Struct(sq); err != nil {
		return sq, err
	}
	return sq, nil
}

// names returns the requested city names in order: the single city first,
// then the list entries trimmed, empties dropped.
func (sq summaryQuery) names() []string {
	var names []string
	if sq.City != "" {
		names = append(names, sq.City)
	}
	for _, c := range strings.Split(sq.Cities, ",") {
		if c = strings.TrimSpace(c); c != "" {
			names = append(names, c)
		}
	}
	return names
}

func parseFloatParam(q url.Values, key string, def float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return v, nil
}

package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"meteostats/internal/models"
	"meteostats/internal/stats"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// fetchWindow loads the city's rows covering the local [start, end] date
// range converted into UTC instants for the given zone.
func (s *Server) fetchWindow(cityID int64, start, end time.Time, loc *time.Location) ([]models.HourlyObservation, error) {
	startUTC, endUTC := stats.UTCWindow(start, end, loc)
	return s.store.GetHourly(cityID, startUTC, endUTC)
}

func (s *Server) handleTemperature(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sq, err := s.parseStatsQuery(q)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	high, err := parseFloatParam(q, "threshold", s.cfg.ThresholdHigh)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	low, err := parseFloatParam(q, "threshold_low", s.cfg.ThresholdLow)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	loc, err := time.LoadLocation(sq.Timezone)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "unknown timezone: "+sq.Timezone)
		return
	}

	city, err := s.store.GetCityByName(sq.City)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if city == nil {
		writeDetail(w, http.StatusNotFound, "City not found: "+sq.City)
		return
	}

	start, _ := stats.ParseDate(sq.Start)
	end, _ := stats.ParseDate(sq.End)
	rows, err := s.fetchWindow(city.ID, start, end, loc)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	ts := stats.Temperature(rows, loc, high, low)
	if ts == nil {
		writeJSON(w, http.StatusOK, map[string]any{"temperature": struct{}{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"temperature": ts})
}

func (s *Server) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	sq, err := s.parseStatsQuery(r.URL.Query())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	loc, err := time.LoadLocation(sq.Timezone)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "unknown timezone: "+sq.Timezone)
		return
	}

	city, err := s.store.GetCityByNameFold(sq.City)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if city == nil {
		writeDetail(w, http.StatusNotFound, "City not found: "+sq.City)
		return
	}

	start, _ := stats.ParseDate(sq.Start)
	end, _ := stats.ParseDate(sq.End)
	rows, err := s.fetchWindow(city.ID, start, end, loc)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	ps := stats.Precipitation(rows, loc, start, end)
	if ps == nil {
		writeJSON(w, http.StatusOK, map[string]any{"precipitation": struct{}{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"precipitation": ps})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sq, err := s.parseSummaryQuery(r.URL.Query())
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	loc, err := time.LoadLocation(sq.Timezone)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "unknown timezone: "+sq.Timezone)
		return
	}

	start, _ := stats.ParseDate(sq.Start)
	end, _ := stats.ParseDate(sq.End)

	// One bad name yields a per-name marker, never a failed batch. Duplicate
	// names resolving to the same city overwrite the same key, last write wins.
	result := make(map[string]any)
	for _, name := range sq.names() {
		city, err := s.store.GetCityByNameFold(name)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, err.Error())
			return
		}
		if city == nil {
			result[name] = map[string]string{"info": "City not found: " + name}
			continue
		}

		rows, err := s.fetchWindow(city.ID, start, end, loc)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, err.Error())
			return
		}
		result[city.Name] = stats.Summarize(rows, loc, start, end)
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := s.store.MigrationVersion()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "error", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "schema_version": version})
}

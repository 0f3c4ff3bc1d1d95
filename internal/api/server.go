// Package api serves the JSON statistics endpoints. Handlers validate the
// query parameters, resolve the city, convert the local date range into a UTC
// window, and hand the fetched rows to the stats package.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meteostats/internal/config"
	"meteostats/internal/store"
)

type Server struct {
	store *store.Store
	cfg   config.Config
}

func NewServer(st *store.Store, cfg config.Config) *Server {
	return &Server{store: st, cfg: cfg}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/temperature/", s.handleTemperature)
	mux.HandleFunc("/api/precipitation/", s.handlePrecipitation)
	mux.HandleFunc("/api/summary/", s.handleSummary)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

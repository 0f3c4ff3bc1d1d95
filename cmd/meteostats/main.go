package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"meteostats/internal/api"
	"meteostats/internal/config"
	"meteostats/internal/ingest"
	"meteostats/internal/openmeteo"
	"meteostats/internal/stats"
	"meteostats/internal/store"
)

var cli struct {
	config.Config

	Serve       serveCmd       `cmd:"" help:"Run the HTTP API server."`
	LoadWeather loadWeatherCmd `cmd:"" name:"load-weather" help:"Backfill hourly weather for a city over a date range."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("meteostats"),
		kong.Description("Weather ingestion and aggregate statistics over hourly observations."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)
	if err := ctx.Run(&cli.Config); err != nil {
		log.Fatal(err)
	}
}

func openStore(cfg *config.Config) (*store.Store, *sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %q: %w", cfg.DB, err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, db, nil
}

type serveCmd struct{}

func (serveCmd) Run(cfg *config.Config) error {
	st, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("serving on :%s (db=%s)", cfg.Port, cfg.DB)
	return api.NewServer(st, *cfg).Run(ctx)
}

type loadWeatherCmd struct {
	City  string `required:"" help:"City name to resolve and backfill."`
	Start string `required:"" help:"Start date (YYYY-MM-DD, inclusive)."`
	End   string `required:"" help:"End date (YYYY-MM-DD, inclusive)."`
}

func (c loadWeatherCmd) Run(cfg *config.Config) error {
	if _, err := stats.ParseDate(c.Start); err != nil {
		return fmt.Errorf("invalid start date %q: %w", c.Start, err)
	}
	if _, err := stats.ParseDate(c.End); err != nil {
		return fmt.Errorf("invalid end date %q: %w", c.End, err)
	}

	st, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	client := openmeteo.NewClient(cfg.GeocodeURL, cfg.ArchiveURL, cfg.DefaultTimezone, cfg.RequestTimeout)
	loader := ingest.NewLoader(st, client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := loader.Run(ctx, c.City, c.Start, c.End)
	if err != nil {
		return err
	}

	label := res.City.Name
	if res.City.Country != "" {
		label = fmt.Sprintf("%s (%s)", res.City.Name, res.City.Country)
	}
	fmt.Printf("%s | %s..%s | hours received=%d saved=%d\n", label, c.Start, c.End, res.Received, res.Saved)
	return nil
}

package store

import (
	"database/sql"
	"fmt"
	"time"

	"meteostats/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertCity creates a city keyed by (name, country) or, when it already
// exists, refreshes its coordinates with the freshly geocoded values. The
// stored name stays the caller's spelling either way.
func (s *Store) UpsertCity(name, country string, lat, lon float64) (*models.City, error) {
	_, err := s.db.Exec(`
		INSERT INTO cities (name, country, latitude, longitude)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name, country) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude
	`, name, country, lat, lon)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`SELECT id, name, country, latitude, longitude FROM cities WHERE name = ? AND country = ?`, name, country)
	var c models.City
	if err := row.Scan(&c.ID, &c.Name, &c.Country, &c.Latitude, &c.Longitude); err != nil {
		return nil, fmt.Errorf("reload city %q: %w", name, err)
	}
	return &c, nil
}

// GetCityByName does an exact-match lookup. Returns (nil, nil) when absent.
func (s *Store) GetCityByName(name string) (*models.City, error) {
	return s.scanCity(s.db.QueryRow(`SELECT id, name, country, latitude, longitude FROM cities WHERE name = ? LIMIT 1`, name))
}

// GetCityByNameFold is the case-insensitive variant used by the precipitation
// and summary endpoints. Returns (nil, nil) when absent.
func (s *Store) GetCityByNameFold(name string) (*models.City, error) {
	return s.scanCity(s.db.QueryRow(`SELECT id, name, country, latitude, longitude FROM cities WHERE name = ? COLLATE NOCASE LIMIT 1`, name))
}

func (s *Store) scanCity(row *sql.Row) (*models.City, error) {
	var c models.City
	err := row.Scan(&c.ID, &c.Name, &c.Country, &c.Latitude, &c.Longitude)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InsertHourlyBatch writes a batch of observations in a single transaction.
// Rows colliding on (city_id, observed_at) are skipped, not updated; the
// returned count is the number of rows actually inserted.
func (s *Store) InsertHourlyBatch(cityID int64, obs []models.HourlyObservation) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO hourly_observations (city_id, observed_at, temperature, precipitation)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(city_id, observed_at) DO NOTHING
	`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	saved := 0
	for _, o := range obs {
		res, err := stmt.Exec(cityID, o.ObservedAt.UTC(), o.Temperature, o.Precipitation)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("insert observation at %s: %w", o.ObservedAt, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		saved += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return saved, nil
}

// GetHourly returns the city's observations in [start, end] inclusive,
// ordered by timestamp ascending.
func (s *Store) GetHourly(cityID int64, start, end time.Time) ([]models.HourlyObservation, error) {
	rows, err := s.db.Query(`
		SELECT id, city_id, observed_at, temperature, precipitation, created_at
		FROM hourly_observations
		WHERE city_id = ? AND observed_at >= ? AND observed_at <= ?
		ORDER BY observed_at ASC
	`, cityID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var obs []models.HourlyObservation
	for rows.Next() {
		var o models.HourlyObservation
		if err := rows.Scan(&o.ID, &o.CityID, &o.ObservedAt, &o.Temperature, &o.Precipitation, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.ObservedAt = o.ObservedAt.UTC()
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

// CountHourly reports how many observations a city has in total.
func (s *Store) CountHourly(cityID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM hourly_observations WHERE city_id = ?`, cityID).Scan(&n)
	return n, err
}

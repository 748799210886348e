package repository

import (
	"context"
	"fmt"

	"geocoder-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the repository interface for PostgreSQL with the
// TIGER geocoder extension installed
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// NormalizeAddress runs the TIGER normalizer on a free-text address and
// returns the encoded component composite
func (r *Repository) NormalizeAddress(ctx context.Context, address string) (string, error) {
	sql := `SELECT normalize_address($1)::text`

	var composite string
	if err := r.db.QueryRow(ctx, sql, address).Scan(&composite); err != nil {
		return "", fmt.Errorf("repository: failed to normalize address: %w", err)
	}

	return composite, nil
}

// GeocodeAddress geocodes a formatted address string, returning up to
// limit candidate rows ordered by the geocoder's confidence
func (r *Repository) GeocodeAddress(ctx context.Context, address string, limit int) ([]models.GeocoderRow, error) {
	sql := `
		SELECT
			g.rating,
			ST_Y(g.geomout) as latitude,
			ST_X(g.geomout) as longitude,
			(addy)::text
		FROM geocode($1, $2) AS g
	`

	rows, err := r.db.Query(ctx, sql, address, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute geocode query: %w", err)
	}
	defer rows.Close()

	return scanGeocoderRows(rows)
}

// GeocodeIntersection geocodes the corner of two roads. City and zip may
// be empty; state narrows the search and is required by the geocoder.
func (r *Repository) GeocodeIntersection(ctx context.Context, roadOne, roadTwo, state, city, zip string, limit int) ([]models.GeocoderRow, error) {
	sql := `
		SELECT
			g.rating,
			ST_Y(g.geomout) as latitude,
			ST_X(g.geomout) as longitude,
			(addy)::text
		FROM geocode_intersection($1, $2, $3, $4, $5, $6) AS g
	`

	rows, err := r.db.Query(ctx, sql, roadOne, roadTwo, state, city, zip, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute intersection query: %w", err)
	}
	defer rows.Close()

	return scanGeocoderRows(rows)
}

func scanGeocoderRows(rows pgx.Rows) ([]models.GeocoderRow, error) {
	var results []models.GeocoderRow
	for rows.Next() {
		var row models.GeocoderRow
		err := rows.Scan(
			&row.Rating,
			&row.Lat,
			&row.Lng,
			&row.Components,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan geocoder row: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return results, nil
}

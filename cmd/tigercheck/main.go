package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"geocoder-api/internal/models"

	_ "github.com/lib/pq"
)

// tigercheck probes a TIGER geocoder database and reports whether it can
// normalize and geocode a sample address. Run it after loading TIGER
// data to confirm the extension is wired up before pointing the API at
// the database.
func main() {
	dsn := flag.String("dsn", "", "PostgreSQL connection string for the TIGER database")
	address := flag.String("address", "123 Main St Milwaukee WI", "Sample address to probe with")
	flag.Parse()

	if *dsn == "" {
		fmt.Println("Error: --dsn flag is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	comps, err := checkNormalizer(db, *address)
	if err != nil {
		fmt.Printf("Normalizer check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Normalized %q:\n", *address)
	fmt.Printf("  house number:   %s\n", comps.HouseNumber)
	fmt.Printf("  predirection:   %s\n", comps.Predirection)
	fmt.Printf("  street name:    %s\n", comps.StreetName)
	fmt.Printf("  street type:    %s\n", comps.StreetType)
	fmt.Printf("  postdirection:  %s\n", comps.Postdirection)
	fmt.Printf("  unit:           %s\n", comps.Unit)
	fmt.Printf("  city:           %s\n", comps.City)
	fmt.Printf("  state:          %s\n", comps.State)
	fmt.Printf("  zip:            %s\n", comps.Zip)

	hits, err := checkGeocoder(db, *address)
	if err != nil {
		fmt.Printf("Geocoder check failed: %v\n", err)
		os.Exit(1)
	}

	if len(hits) == 0 {
		fmt.Println("Geocoder returned no rows; TIGER data may not be loaded for this area")
		os.Exit(1)
	}

	fmt.Printf("Geocoder returned %d rows:\n", len(hits))
	for _, hit := range hits {
		fmt.Printf("  rating %d at (%f, %f)\n", hit.Rating, hit.Lat, hit.Lng)
	}
}

func checkNormalizer(db *sql.DB, address string) (models.AddressComponents, error) {
	var composite string
	err := db.QueryRow(`SELECT normalize_address($1)::text`, address).Scan(&composite)
	if err != nil {
		return models.AddressComponents{}, fmt.Errorf("normalize_address query failed: %w", err)
	}

	comps, err := models.ParseComponents(composite)
	if err != nil {
		return models.AddressComponents{}, err
	}
	if comps.IsBlank() {
		return models.AddressComponents{}, fmt.Errorf("normalizer returned empty components for %q", address)
	}
	return comps, nil
}

func checkGeocoder(db *sql.DB, address string) ([]models.GeocoderRow, error) {
	rows, err := db.Query(`
		SELECT g.rating, ST_Y(g.geomout), ST_X(g.geomout), (addy)::text
		FROM geocode($1, 3) AS g
	`, address)
	if err != nil {
		return nil, fmt.Errorf("geocode query failed: %w", err)
	}
	defer rows.Close()

	var hits []models.GeocoderRow
	for rows.Next() {
		var hit models.GeocoderRow
		if err := rows.Scan(&hit.Rating, &hit.Lat, &hit.Lng, &hit.Components); err != nil {
			return nil, fmt.Errorf("failed to scan geocode row: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

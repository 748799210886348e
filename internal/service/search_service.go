package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geocoder-api/internal/models"
	"geocoder-api/internal/style"

	"github.com/rs/zerolog/log"
)

// SearchService decides from surface cues whether an input is an address
// or an intersection, and falls back between the two on failure
type SearchService struct {
	addresses     AddressGeocoder
	intersections IntersectionGeocoder
	tables        *style.Tables
}

// AddressGeocoder interface for dependency injection
type AddressGeocoder interface {
	Geocode(ctx context.Context, address string) ([]models.GeocodedAddress, error)
}

// IntersectionGeocoder interface for dependency injection
type IntersectionGeocoder interface {
	Geocode(ctx context.Context, raw string) ([]models.GeocodedIntersection, error)
}

// NewSearchService creates a new search service
func NewSearchService(addresses AddressGeocoder, intersections IntersectionGeocoder, tables *style.Tables) *SearchService {
	return &SearchService{
		addresses:     addresses,
		intersections: intersections,
		tables:        tables,
	}
}

// Search geocodes a free-text query as an intersection, an address, or
// both in turn. An "@" routes straight to intersection geocoding. A
// weaker marker (AND/AT/&//) does too, unless the first token starts
// with a digit and is not an ordinal street numeral; "1st" may open an
// intersection ("1st St and Main") but "123" never does. Intersection
// input and not-found errors demote the query to the address path; if
// that path also fails, the search fails with ErrNoResults.
func (s *SearchService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	// Quote characters corrupt the normalizer's composite output.
	query = strings.NewReplacer("'", "", `"`, "").Replace(query)
	upper := strings.ToUpper(query)

	var results []models.SearchResult

	if certainMarkerRe.MatchString(upper) {
		intersections, err := s.intersections.Geocode(ctx, query)
		if err != nil {
			return nil, err
		}
		results = wrapIntersections(intersections)
	} else if possibleMarkerRe.MatchString(upper) && s.eligibleForIntersection(query) {
		intersections, err := s.intersections.Geocode(ctx, query)
		switch {
		case err == nil:
			results = wrapIntersections(intersections)
		case errors.Is(err, ErrIntersectionInput) || errors.Is(err, ErrIntersectionNotFound):
			log.Debug().Err(err).Msg("intersection parse failed, falling back to address search")
		default:
			return nil, err
		}
	}

	if len(results) > 0 {
		return results, nil
	}

	addresses, err := s.addresses.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, ErrAddressInput) || errors.Is(err, ErrAddressNotFound) {
			return nil, fmt.Errorf("service: no matching addresses or intersections were found based on your search: %w", ErrNoResults)
		}
		return nil, err
	}

	results = make([]models.SearchResult, 0, len(addresses))
	for i := range addresses {
		results = append(results, models.SearchResult{Address: &addresses[i]})
	}
	return results, nil
}

// eligibleForIntersection applies the leading-token guard for weak
// intersection markers: a first token opening with a digit suppresses
// intersection parsing unless the token is itself an ordinal numeral.
func (s *SearchService) eligibleForIntersection(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}
	first := fields[0]
	if first[0] < '0' || first[0] > '9' {
		return true
	}
	return s.tables.OrdinalNumerals[strings.ToLower(first)]
}

func wrapIntersections(intersections []models.GeocodedIntersection) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(intersections))
	for i := range intersections {
		results = append(results, models.SearchResult{Intersection: &intersections[i]})
	}
	return results
}

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"geocoder-api/internal/models"
	"geocoder-api/internal/style"

	"github.com/rs/zerolog/log"
)

// An "@" always marks an intersection; the other separators only might,
// so they are second in line and the dispatcher applies extra guards.
var (
	certainMarkerRe  = regexp.MustCompile(`\s*@\s*`)
	possibleMarkerRe = regexp.MustCompile(`\s+AND\s+|\s+AT\s+|\s*&\s*|\s*/\s*`)
)

// syntheticHouseNumber gives each road string the house number the
// normalizer insists on. It is stripped from every derived value and
// never appears in output.
const syntheticHouseNumber = "1217"

// placeholderCityState completes the first road's synthetic address. Any
// real city and state would do; the normalizer just needs the structure,
// and the values do not affect the road-name result.
const placeholderCityState = "Milwaukee WI"

// IntersectionService contains the core business logic for splitting a
// two-street query and geocoding the corner
type IntersectionService struct {
	repo         IntersectionRepository
	addresses    AddressNormalizer
	tables       *style.Tables
	formatter    *style.Formatter
	defaultState string
	maxResults   int
}

// IntersectionRepository interface for dependency injection
type IntersectionRepository interface {
	GeocodeIntersection(ctx context.Context, roadOne, roadTwo, state, city, zip string, limit int) ([]models.GeocoderRow, error)
}

// AddressNormalizer interface for dependency injection
type AddressNormalizer interface {
	Normalize(ctx context.Context, address string) (models.AddressComponents, error)
}

// IntersectionConfig carries the per-deployment settings of the service.
type IntersectionConfig struct {
	DefaultState string
	MaxResults   int
}

// NewIntersectionService creates a new intersection service
func NewIntersectionService(repo IntersectionRepository, addresses AddressNormalizer, tables *style.Tables, cfg IntersectionConfig) *IntersectionService {
	if cfg.DefaultState == "" {
		cfg.DefaultState = "WI"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	return &IntersectionService{
		repo:         repo,
		addresses:    addresses,
		tables:       tables,
		formatter:    style.NewFormatter(tables),
		defaultState: cfg.DefaultState,
		maxResults:   cfg.MaxResults,
	}
}

// intersectionParts is a split query: two independently normalized road
// strings plus whatever city/state/ZIP context rode along with the
// second one.
type intersectionParts struct {
	FirstRoad   string
	SecondRoad  string
	SecondComps models.AddressComponents
	City        string
	State       string
	Zip         string
}

// splitAndNormalize cuts a raw intersection string at its marker and
// resolves each side to a normalized road string.
func (s *IntersectionService) splitAndNormalize(ctx context.Context, raw string) (intersectionParts, error) {
	upper := strings.ToUpper(raw)
	loc := certainMarkerRe.FindStringIndex(upper)
	if loc == nil {
		loc = possibleMarkerRe.FindStringIndex(upper)
	}
	if loc == nil {
		return intersectionParts{}, fmt.Errorf("service: missing second road to be parsed: %w", ErrIntersectionInput)
	}

	firstRaw := strings.TrimSpace(raw[:loc[0]])
	remainder := strings.TrimSpace(raw[loc[1]:])

	second, err := s.addresses.Normalize(ctx, syntheticHouseNumber+" "+remainder)
	if err != nil {
		if errors.Is(err, ErrAddressInput) {
			return intersectionParts{}, fmt.Errorf("service: invalid second road or city/state/ZIP value: %w", ErrIntersectionInput)
		}
		return intersectionParts{}, err
	}

	var parts intersectionParts
	// Everything hinges on the state; an unrecognized one falls back to
	// the deployment default.
	if _, ok := s.tables.Crosswalk[strings.ToUpper(second.State)]; ok {
		parts.State = second.State
	} else {
		parts.State = s.defaultState
	}
	parts.City = second.City
	parts.Zip = second.Zip
	parts.SecondComps = second
	parts.SecondRoad = second.Street()
	if parts.SecondRoad == "" {
		return intersectionParts{}, fmt.Errorf("service: invalid second road value: %w", ErrIntersectionInput)
	}

	first, err := s.addresses.Normalize(ctx, strings.Join([]string{syntheticHouseNumber, firstRaw, placeholderCityState}, " "))
	if err != nil {
		if errors.Is(err, ErrAddressInput) {
			return intersectionParts{}, fmt.Errorf("service: invalid first road value: %w", ErrIntersectionInput)
		}
		return intersectionParts{}, err
	}
	parts.FirstRoad = first.Street()
	if parts.FirstRoad == "" {
		return intersectionParts{}, fmt.Errorf("service: invalid first road value: %w", ErrIntersectionInput)
	}

	return parts, nil
}

// Geocode approximates the location of a two-street intersection,
// returning up to the configured number of deduplicated corners ordered
// by confidence.
func (s *IntersectionService) Geocode(ctx context.Context, raw string) ([]models.GeocodedIntersection, error) {
	parts, err := s.splitAndNormalize(ctx, raw)
	if err != nil {
		return nil, err
	}

	// Query steps, progressively looser. Each issues a forward and a
	// reverse query oversized for the dedup pass that follows.
	type step struct{ city, zip string }
	var steps []step
	if parts.City != "" && parts.Zip != "" {
		steps = append(steps, step{parts.City, parts.Zip})
	}
	if parts.City != "" {
		steps = append(steps, step{parts.City, ""})
	}
	if parts.Zip != "" {
		steps = append(steps, step{"", parts.Zip})
	}
	steps = append(steps, step{"", ""})

	limit := s.maxResults * 5
	var forward, reverse []models.GeocoderRow
	for i, st := range steps {
		forward, err = s.repo.GeocodeIntersection(ctx, parts.FirstRoad, parts.SecondRoad, parts.State, st.city, st.zip, limit)
		if err != nil {
			return nil, fmt.Errorf("service: failed to geocode intersection: %w", err)
		}
		reverse, err = s.repo.GeocodeIntersection(ctx, parts.SecondRoad, parts.FirstRoad, parts.State, st.city, st.zip, limit)
		if err != nil {
			return nil, fmt.Errorf("service: failed to geocode intersection: %w", err)
		}
		if len(forward) > 0 {
			break
		}
		if i < len(steps)-1 {
			log.Debug().
				Str("city", st.city).
				Str("zip", st.zip).
				Msg("no intersection results, loosening query")
		}
	}

	if len(forward) == 0 {
		return nil, fmt.Errorf("service: no intersection of those streets was found for any combination of state and city and/or ZIP code provided: %w", ErrIntersectionNotFound)
	}

	// Drop duplicate corners: same coordinates and same street text as a
	// result already kept. Same coordinates with different street text is
	// a distinct corner and survives.
	seen := make(map[string]map[string]bool)
	var kept []models.GeocodedAddress
	for _, row := range forward {
		comps, err := models.ParseComponents(row.Components)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		key := coordKey(row.Lat, row.Lng)
		street := comps.Street()
		if seen[key][street] {
			continue
		}
		if seen[key] == nil {
			seen[key] = make(map[string]bool)
		}
		seen[key][street] = true
		kept = append(kept, models.GeocodedAddress{
			Rating:     row.Rating,
			Lat:        row.Lat,
			Lng:        row.Lng,
			Components: comps,
		})
	}

	// Reverse results only supply street_two's text when their point
	// coincides with a kept forward result.
	reverseStreets := make(map[string]models.AddressComponents, len(reverse))
	for _, row := range reverse {
		comps, err := models.ParseComponents(row.Components)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		reverseStreets[coordKey(row.Lat, row.Lng)] = comps
	}

	results := make([]models.GeocodedIntersection, 0, len(kept))
	for _, addr := range kept {
		streetOne, err := s.formatter.StreetLine(addr.Components)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}

		secondComps, ok := reverseStreets[coordKey(addr.Lat, addr.Lng)]
		if !ok {
			secondComps = parts.SecondComps
		}
		streetTwo, err := s.formatter.StreetLine(secondComps)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}

		lines, err := s.formatter.Format(addr.Components, style.FormatOptions{})
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		addr.Lines = lines

		results = append(results, models.GeocodedIntersection{
			Rating:    addr.Rating,
			StreetOne: streetOne,
			StreetTwo: streetTwo,
			Address:   addr,
			Lines:     []string{streetOne + " at " + streetTwo, lines[len(lines)-1]},
		})
	}

	if len(results) > s.maxResults {
		results = results[:s.maxResults]
	}
	return results, nil
}

func coordKey(lat, lng float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lng)
}

package models

import (
	"fmt"
	"strings"
)

// GeocoderRow is one raw result row from the geocoder: a confidence
// rating (higher is more confident), a point, and the encoded address
// composite for that point.
type GeocoderRow struct {
	Rating     int
	Lat        float64
	Lng        float64
	Components string
}

// GeocodedAddress is a single address match. It is built once per
// geocoder row and not modified afterward.
type GeocodedAddress struct {
	Rating     int               `json:"rating"`
	Lat        float64           `json:"lat"`
	Lng        float64           `json:"lng"`
	Components AddressComponents `json:"components"`

	// Lines are the AP-style display lines, rendered when the result was
	// built.
	Lines []string `json:"lines"`
}

// OneLine renders the address on a single comma-joined line.
func (a GeocodedAddress) OneLine() string {
	return joinLines(a.Lines, ", ")
}

// MultiLine renders the address with one component line per row.
func (a GeocodedAddress) MultiLine() string {
	return joinLines(a.Lines, "\n")
}

// Coords returns the point as (lat, lng).
func (a GeocodedAddress) Coords() (float64, float64) {
	return a.Lat, a.Lng
}

// WKT renders the point as well-known text.
func (a GeocodedAddress) WKT() string {
	return fmt.Sprintf("POINT(%v %v)", a.Lng, a.Lat)
}

// GeocodedIntersection is a single street-corner match. StreetOne is the
// road named first in the query; StreetTwo comes from the reverse query
// when one matched the same point, else from the parsed second road.
type GeocodedIntersection struct {
	Rating    int             `json:"rating"`
	StreetOne string          `json:"street_one"`
	StreetTwo string          `json:"street_two"`
	Address   GeocodedAddress `json:"address"`

	Lines []string `json:"lines"`
}

// OneLine renders the intersection on a single comma-joined line.
func (i GeocodedIntersection) OneLine() string {
	return joinLines(i.Lines, ", ")
}

// MultiLine renders the intersection with one component line per row.
func (i GeocodedIntersection) MultiLine() string {
	return joinLines(i.Lines, "\n")
}

// Coords returns the corner's point as (lat, lng).
func (i GeocodedIntersection) Coords() (float64, float64) {
	return i.Address.Lat, i.Address.Lng
}

// WKT renders the corner's point as well-known text.
func (i GeocodedIntersection) WKT() string {
	return i.Address.WKT()
}

// SearchResult is one search hit: exactly one of Address or Intersection
// is set.
type SearchResult struct {
	Address      *GeocodedAddress      `json:"address,omitempty"`
	Intersection *GeocodedIntersection `json:"intersection,omitempty"`
}

// OneLine renders whichever result kind is present.
func (r SearchResult) OneLine() string {
	if r.Intersection != nil {
		return r.Intersection.OneLine()
	}
	if r.Address != nil {
		return r.Address.OneLine()
	}
	return ""
}

// Rating returns the geocoder's confidence for the hit.
func (r SearchResult) Rating() int {
	if r.Intersection != nil {
		return r.Intersection.Rating
	}
	if r.Address != nil {
		return r.Address.Rating
	}
	return 0
}

// Coords returns the hit's point as (lat, lng).
func (r SearchResult) Coords() (float64, float64) {
	if r.Intersection != nil {
		return r.Intersection.Coords()
	}
	if r.Address != nil {
		return r.Address.Coords()
	}
	return 0, 0
}

func joinLines(lines []string, sep string) string {
	kept := make([]string, 0, len(lines))
	for _, ln := range lines {
		if ln != "" {
			kept = append(kept, ln)
		}
	}
	return strings.Join(kept, sep)
}

// StreetStyles is a per-city table of street-name replacements, keyed by
// lower-cased city and then lower-cased street name.
type StreetStyles map[string]map[string]string

// Lookup returns the replacement for (city, street) if the table has one.
func (s StreetStyles) Lookup(city, street string) (string, bool) {
	if s == nil {
		return "", false
	}
	streets, ok := s[strings.ToLower(city)]
	if !ok {
		return "", false
	}
	replacement, ok := streets[strings.ToLower(street)]
	return replacement, ok
}

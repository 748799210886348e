package service

import (
	"context"
	"fmt"
	"strings"

	"geocoder-api/internal/models"
	"geocoder-api/internal/style"

	"github.com/rs/zerolog/log"
)

// maxStateRewrites bounds the state-recovery retry in normalize. The
// normalizer's behavior on a rewritten address it cannot resolve is
// unspecified, so without the cap a bad abbreviation would recurse
// forever.
const maxStateRewrites = 1

// AddressService contains the core business logic for address
// normalization and geocoding, including the corrections applied to the
// normalizer's output before anything else consumes it
type AddressService struct {
	repo            AddressRepository
	tables          *style.Tables
	formatter       *style.Formatter
	defaultState    string
	maxResults      int
	normalizeStyles models.StreetStyles
	formatStyles    models.StreetStyles
}

// AddressRepository interface for dependency injection
type AddressRepository interface {
	NormalizeAddress(ctx context.Context, address string) (string, error)
	GeocodeAddress(ctx context.Context, address string, limit int) ([]models.GeocoderRow, error)
}

// AddressConfig carries the per-deployment settings of the service.
type AddressConfig struct {
	// DefaultState is used when no state can be resolved from the input.
	DefaultState string
	// MaxResults caps the rows returned per geocode call.
	MaxResults int
	// NormalizeStyles replaces street names per city before geocoding.
	NormalizeStyles models.StreetStyles
	// FormatStyles replaces street names per city at display time only.
	FormatStyles models.StreetStyles
}

// NewAddressService creates a new address service
func NewAddressService(repo AddressRepository, tables *style.Tables, cfg AddressConfig) *AddressService {
	if cfg.DefaultState == "" {
		cfg.DefaultState = "WI"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	return &AddressService{
		repo:            repo,
		tables:          tables,
		formatter:       style.NewFormatter(tables),
		defaultState:    cfg.DefaultState,
		maxResults:      cfg.MaxResults,
		normalizeStyles: cfg.NormalizeStyles,
		formatStyles:    cfg.FormatStyles,
	}
}

// Formatter exposes the AP-style formatter built over the service's
// tables, so collaborators render results consistently.
func (s *AddressService) Formatter() *style.Formatter {
	return s.formatter
}

// Normalize parses a free-text address through the external normalizer
// and repairs the systematic mistakes in its output: misplaced apartment
// numbers, state abbreviations swallowed into the city or street name,
// non-standard highway designators and misassigned post-directionals.
// Returns ErrAddressInput when the normalizer yields nothing usable.
func (s *AddressService) Normalize(ctx context.Context, address string) (models.AddressComponents, error) {
	return s.normalize(ctx, address, 0)
}

func (s *AddressService) normalize(ctx context.Context, address string, depth int) (models.AddressComponents, error) {
	address = s.rewriteUnitMarker(address)

	// Punctuation confuses the normalizer and quotes corrupt its encoded
	// composite output, so both go before submission.
	cleaned := strings.NewReplacer(",", "", ".", "", "'", "", `"`, "").Replace(address)

	composite, err := s.repo.NormalizeAddress(ctx, cleaned)
	if err != nil {
		return models.AddressComponents{}, fmt.Errorf("service: failed to normalize address: %w", err)
	}

	comps, err := models.ParseComponents(composite)
	if err != nil {
		return models.AddressComponents{}, fmt.Errorf("service: %w", err)
	}
	if comps.IsBlank() {
		return models.AddressComponents{}, fmt.Errorf("service: normalizer returned nothing for %q: %w", address, ErrAddressInput)
	}

	if comps.Unit != "" {
		s.reclaimUnitNumber(&comps, cleaned)
		if comps.StreetName == "" {
			comps.StreetName = recoverStreetName(cleaned, comps.HouseNumber, comps.Unit)
		}
	}

	s.recoverStateFromCity(&comps)

	if comps.City == "" && comps.State == "" {
		comps, err = s.recoverStateFromStreet(ctx, comps, depth)
		if err != nil {
			return models.AddressComponents{}, err
		}
	}

	if comps.StreetType == "" {
		s.resolveHighway(&comps)
	}

	if comps.State == "" {
		comps.State = s.defaultState
	}

	if numeral, ok := s.tables.TextualOrdinals[strings.ToLower(comps.StreetName)]; ok {
		comps.StreetName = numeral
	}

	if replacement, ok := s.normalizeStyles.Lookup(comps.City, comps.StreetName); ok {
		comps.StreetName = replacement
	}

	return comps, nil
}

// Geocode approximates the physical location of an address, returning up
// to the configured number of candidate matches ordered by confidence.
func (s *AddressService) Geocode(ctx context.Context, address string) ([]models.GeocodedAddress, error) {
	comps, err := s.Normalize(ctx, address)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GeocodeAddress(ctx, s.formatForGeocoder(comps), s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("service: failed to geocode address: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("service: %w", ErrAddressNotFound)
	}

	rawFirst := firstToken(address)
	results := make([]models.GeocodedAddress, 0, len(rows))
	for _, row := range rows {
		rc, err := models.ParseComponents(row.Components)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		// The geocoder drops secondary units; carry ours into each row.
		if comps.Unit != "" {
			rc.Unit = comps.Unit
		}
		lines, err := s.formatter.Format(rc, style.FormatOptions{
			RawHouseNumber: rawFirst,
			CustomStyles:   s.formatStyles,
		})
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		results = append(results, models.GeocodedAddress{
			Rating:     row.Rating,
			Lat:        row.Lat,
			Lng:        row.Lng,
			Components: rc,
			Lines:      lines,
		})
	}

	if len(results) > s.maxResults {
		results = results[:s.maxResults]
	}
	return results, nil
}

// rewriteUnitMarker rewrites a "#" secondary-unit marker before the
// address goes to the normalizer, which does not understand it. "#4"
// becomes "Apt. 4"; "#rear" and friends become their spelled-out unit
// word; anything else still gets the generic "Apt. " rewrite.
func (s *AddressService) rewriteUnitMarker(address string) string {
	i := strings.Index(address, "#")
	if i < 0 {
		return address
	}

	token := address[i+1:]
	if j := strings.IndexByte(token, ' '); j >= 0 {
		token = token[:j]
	}
	token = strings.TrimRight(token, ",")

	if !isDigits(token) {
		if canonical, ok := s.tables.UnitsWithoutNumbers[strings.ToLower(token)]; ok {
			before := ""
			if i > 0 {
				before = address[:i-1]
			}
			after := ""
			if k := i + 1 + len(token) + 1; k < len(address) {
				after = address[k:]
			}
			return strings.TrimSpace(strings.Join([]string{before, canonical, after}, " "))
		}
	}
	return strings.ReplaceAll(address, "#", "Apt. ")
}

// reclaimUnitNumber takes back an apartment number the normalizer
// misattributed to the city field, and restores the unit's true suffix
// by diffing the cleaned input against the recognized city.
func (s *AddressService) reclaimUnitNumber(comps *models.AddressComponents, cleaned string) {
	switch {
	case comps.City != "" && comps.State != "":
		cityFields := strings.Fields(comps.City)
		if len(cityFields) > 0 && isDigits(cityFields[0]) {
			comps.City = strings.Join(cityFields[1:], " ")
		}
		if comps.City == "" {
			return
		}
		upper := strings.ToUpper(cleaned)
		idx := strings.Index(upper, strings.ToUpper(comps.City))
		if idx <= 0 {
			return
		}
		before := strings.Fields(upper[:idx])
		if len(before) == 0 {
			return
		}
		unitNumber := before[len(before)-1]
		if !strings.HasSuffix(" "+strings.ToUpper(comps.Unit), " "+unitNumber) {
			comps.Unit = comps.Unit + " " + unitNumber
		}
	case comps.Zip != "":
		// Same misattribution, but with a ZIP and no state the stray
		// token is the city field's first word.
		cityFields := strings.Fields(comps.City)
		if len(cityFields) == 0 {
			return
		}
		comps.Unit = comps.Unit + " " + cityFields[0]
		comps.City = strings.Join(cityFields[1:], " ")
	}
}

// recoverStateFromCity splits a state abbreviation off the end of the
// city value when the normalizer swallowed it ("Chicago IL" with no
// state becomes city "Chicago", state "IL").
func (s *AddressService) recoverStateFromCity(comps *models.AddressComponents) {
	if comps.State != "" || comps.City == "" {
		return
	}
	city := strings.ToLower(strings.TrimSpace(comps.City))
	for _, abbrev := range s.tables.StateAbbrevKeys {
		if strings.HasSuffix(city, " "+abbrev) {
			comps.City = style.TitleCase(strings.TrimSuffix(city, " "+abbrev))
			comps.State = s.tables.StateAbbrevs[abbrev]
			return
		}
	}
}

// recoverStateFromStreet handles the case where the street name ends in a
// recognized state abbreviation and both city and state came back empty:
// the full address is rebuilt with the canonical state code and run
// through normalization once more. The depth cap keeps an unresolvable
// rewritten address from recursing forever.
func (s *AddressService) recoverStateFromStreet(ctx context.Context, comps models.AddressComponents, depth int) (models.AddressComponents, error) {
	street := strings.ToLower(strings.TrimSpace(comps.StreetName))
	for _, abbrev := range s.tables.StateAbbrevKeys {
		if !strings.HasSuffix(street, " "+abbrev) {
			continue
		}
		if depth >= maxStateRewrites {
			return models.AddressComponents{}, fmt.Errorf("service: state rewrite did not converge: %w", ErrAddressInput)
		}

		stateCode := s.tables.StateAbbrevs[abbrev]
		full := strings.ToLower(s.formatForGeocoder(comps))
		if j := strings.LastIndex(full, " "+abbrev); j >= 0 {
			full = full[:j]
		}
		rewritten := full + " " + stateCode

		log.Debug().
			Str("abbrev", abbrev).
			Str("rewritten", rewritten).
			Msg("retrying normalization with recovered state")

		recovered, err := s.normalize(ctx, rewritten, depth+1)
		if err != nil {
			return models.AddressComponents{}, err
		}
		recovered.StreetName = style.TitleCase(recovered.StreetName)
		recovered.City = style.TitleCase(recovered.City)
		return recovered, nil
	}
	return comps, nil
}

// formatForGeocoder joins corrected components into the query string the
// geocoder expects. Highways put the type before the route; the unit is
// never sent.
func (s *AddressService) formatForGeocoder(c models.AddressComponents) string {
	var first []string
	if _, isHighway := s.tables.HighwaysToStyle[strings.ToLower(c.StreetType)]; isHighway && c.StreetName != "" {
		for _, p := range []string{c.HouseNumber, c.Predirection} {
			if p != "" {
				first = append(first, p)
			}
		}
		first = append(first, c.StreetType, c.StreetName)
		if c.Postdirection != "" {
			first = append(first, c.Postdirection)
		}
	} else {
		for _, p := range []string{c.HouseNumber, c.Predirection, c.StreetName, c.StreetType, c.Postdirection} {
			if p != "" {
				first = append(first, p)
			}
		}
	}

	var last []string
	for _, p := range []string{c.City, c.State, c.Zip} {
		if p != "" {
			last = append(last, p)
		}
	}

	return strings.TrimSpace(strings.Join(first, " ") + " " + strings.Join(last, " "))
}

// recoverStreetName rebuilds a street name the normalizer failed to
// recognize by taking the text between the house number and the unit in
// the cleaned input.
func recoverStreetName(cleaned, houseNumber, unit string) string {
	after := cleaned
	if houseNumber != "" {
		if i := strings.Index(cleaned, houseNumber); i >= 0 {
			after = cleaned[i+len(houseNumber):]
		}
	}
	upper := strings.ToUpper(after)
	if i := strings.Index(upper, strings.ToUpper(unit)); i >= 0 {
		after = after[:i]
	} else if fields := strings.Fields(unit); len(fields) > 0 {
		if i := strings.Index(upper, strings.ToUpper(fields[0])); i >= 0 {
			after = after[:i]
		}
	}
	return strings.TrimSpace(after)
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package style

import (
	"fmt"
	"strings"

	"geocoder-api/internal/models"
)

// Formatter renders corrected address components as Associated Press
// style display lines.
type Formatter struct {
	tables *Tables
}

// NewFormatter creates a formatter over the given lookup tables.
func NewFormatter(tables *Tables) *Formatter {
	return &Formatter{tables: tables}
}

// FormatOptions adjusts a single Format call.
type FormatOptions struct {
	// RawHouseNumber is the first token of the caller's original input.
	// When it is not purely numeric (a township-grid number such as
	// "N109W1711") it is used verbatim, upper-cased, in place of the
	// normalized house number.
	RawHouseNumber string

	// CustomStyles overrides street names per city at display time.
	CustomStyles models.StreetStyles
}

// Format renders an address as two or three display lines: the street
// line, the secondary-unit line when a unit is present and recognizable,
// and the city/state/ZIP line. The same input always yields the same
// output.
//
// An unmapped predirection is an error: predirection values come from
// the normalizer, never from user input, so a miss means a table bug.
func (f *Formatter) Format(c models.AddressComponents, opts FormatOptions) ([]string, error) {
	stateAP, stateFull := f.stateStyle(c.State)

	var first []string
	if c.HouseNumber != "" {
		if opts.RawHouseNumber != "" && !isDigits(opts.RawHouseNumber) {
			first = append(first, strings.ToUpper(opts.RawHouseNumber))
		} else {
			first = append(first, c.HouseNumber)
		}
	}

	if c.Predirection != "" {
		ap, ok := f.tables.Predirections[strings.ToLower(c.Predirection)]
		if !ok {
			return nil, fmt.Errorf("style: unmapped predirection %q", c.Predirection)
		}
		first = append(first, strings.ToUpper(ap))
	}

	typeKey := strings.ToLower(c.StreetType)
	_, isHighway := f.tables.HighwaysToStyle[typeKey]

	if c.StreetName != "" && !isHighway {
		name := TitleCase(c.StreetName)
		if replacement, ok := opts.CustomStyles.Lookup(c.City, c.StreetName); ok {
			name = replacement
		}
		first = append(first, name)
	}

	if c.StreetType != "" {
		if word, ok := f.tables.StreetSuffixes[typeKey]; ok {
			if ap, ok := f.tables.SuffixesToAP[word]; ok {
				first = append(first, ap)
			}
		} else if isHighway {
			first = append(first, f.highwayLine(typeKey, c.StreetName, stateFull))
		}
	}

	if c.Postdirection != "" {
		first = append(first, c.Postdirection)
	}

	lines := []string{strings.Join(first, " ")}

	if unitLine, ok := f.unitLine(c.Unit); ok {
		lines = append(lines, unitLine)
	}

	var last []string
	if c.City != "" {
		last = append(last, TitleCase(c.City)+",")
	}
	if stateAP != "" {
		last = append(last, stateAP)
	}
	if c.Zip != "" {
		last = append(last, c.Zip)
	}
	lines = append(lines, strings.Join(last, " "))

	return lines, nil
}

// StreetLine renders just the street portion of an address (directionals,
// name and type) in AP style.
func (f *Formatter) StreetLine(c models.AddressComponents) (string, error) {
	c.HouseNumber = ""
	c.Unit = ""
	c.City = ""
	c.State = ""
	c.Zip = ""
	lines, err := f.Format(c, FormatOptions{})
	if err != nil {
		return "", err
	}
	return lines[0], nil
}

// highwayLine renders a highway in one of two forms: state-name-prefixed
// ("Wisconsin Highway 41") for the types in HighwayStateAppend, or the
// plain type-plus-route form ("County Highway K", "Interstate 94").
func (f *Formatter) highwayLine(typeKey, route, stateFull string) string {
	parts := []string{}
	if f.tables.HighwayStateAppend[typeKey] && stateFull != "" {
		parts = append(parts, stateFull)
	}
	parts = append(parts, f.tables.HighwaysToStyle[typeKey])
	if route != "" {
		parts = append(parts, strings.ToUpper(route))
	}
	return strings.Join(parts, " ")
}

// unitLine renders the secondary-unit line. Units whose designator is not
// a known numbered kind carry no renderable semantics and are omitted.
func (f *Formatter) unitLine(unit string) (string, bool) {
	raw := strings.TrimSpace(unit)
	if raw == "" {
		return "", false
	}

	fields := strings.Fields(raw)
	kind := strings.ReplaceAll(strings.ToLower(fields[0]), ".", "")
	name, ok := f.tables.UnitsWithNumbers[kind]
	if !ok {
		return "", false
	}

	// The normalizer sometimes echoes the designator as its own number
	// ("Apt Apt"); there is no real number to show in that case.
	if len(fields) == 2 && strings.EqualFold(fields[0], fields[1]) {
		return name + " unit", true
	}

	remainder := strings.ToUpper(raw[len(fields[0]):])
	// Strip the three-zero padding artifact the normalizer adds.
	if len(remainder) >= 4 && remainder[1:4] == "000" {
		remainder = " " + remainder[4:]
	}
	return name + remainder, true
}

func (f *Formatter) stateStyle(state string) (ap, full string) {
	if state == "" {
		return "", ""
	}
	if st, ok := f.tables.Crosswalk[strings.ToUpper(state)]; ok {
		return st.AP, st.Name
	}
	return strings.ToUpper(state), strings.ToUpper(state)
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

package models

import (
	"fmt"
	"strings"
)

// componentCount is the arity of the normalizer's composite value: nine
// address fields plus the trailing source marker.
const componentCount = 10

// AddressComponents is the decomposed form of one U.S. postal address as
// reported by the TIGER normalizer, after correction. Every field is a
// string and an absent component is the empty string, never a null.
type AddressComponents struct {
	HouseNumber   string `json:"house_number"`
	Predirection  string `json:"predirection"`
	StreetName    string `json:"street_name"`
	StreetType    string `json:"street_type"`
	Postdirection string `json:"postdirection"`
	Unit          string `json:"unit"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`

	// SourceFlag carries the normalizer's trailing marker verbatim. It is
	// never interpreted.
	SourceFlag string `json:"-"`
}

// ParseComponents decodes the composite value the normalizer and geocoder
// emit for an address: comma-joined sub-values wrapped in parentheses,
// with double-quoted sub-values wherever a value embeds a comma or space.
func ParseComponents(raw string) (AddressComponents, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	fields := splitComposite(trimmed)
	if len(fields) != componentCount {
		return AddressComponents{}, fmt.Errorf("malformed address composite %q: got %d fields, want %d", raw, len(fields), componentCount)
	}

	return AddressComponents{
		HouseNumber:   fields[0],
		Predirection:  fields[1],
		StreetName:    fields[2],
		StreetType:    fields[3],
		Postdirection: fields[4],
		Unit:          fields[5],
		City:          fields[6],
		State:         fields[7],
		Zip:           fields[8],
		SourceFlag:    fields[9],
	}, nil
}

// splitComposite splits on commas outside double quotes and unwraps each
// sub-value. A doubled quote inside a quoted sub-value is an escaped quote.
func splitComposite(s string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			if inQuotes && i+1 < len(s) && s[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, b.String())

	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, "''", "'")
	}
	return fields
}

// IsBlank reports whether every address field is empty. The source flag
// does not count; a composite holding nothing but the flag is still blank.
func (c AddressComponents) IsBlank() bool {
	return c.HouseNumber == "" && c.Predirection == "" && c.StreetName == "" &&
		c.StreetType == "" && c.Postdirection == "" && c.Unit == "" &&
		c.City == "" && c.State == "" && c.Zip == ""
}

// Street joins the street-identifying fields (directionals, name, type)
// into a single display string, skipping empty values.
func (c AddressComponents) Street() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Predirection, c.StreetName, c.StreetType, c.Postdirection} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

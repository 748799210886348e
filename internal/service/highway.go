package service

import (
	"strings"

	"geocoder-api/internal/models"
	"geocoder-api/internal/style"
)

// resolveHighway recognizes non-standard highway naming the normalizer
// leaves in the street name ("Hwy41", "CTH K") when no street type was
// assigned. The matched prefix becomes the highway type code, the route
// number or letter stays as the street name, and any trailing text is
// first treated as a post-direction. Because the normalizer also swallows
// a trailing city into that slot, the captured text is re-examined: a
// leading directional token splits into post-direction plus city, and
// text with no directional at all is reclassified as the city outright.
func (s *AddressService) resolveHighway(comps *models.AddressComponents) {
	street := strings.ToLower(strings.TrimSpace(comps.StreetName))

	matched := false
	for _, prefix := range s.tables.HighwayPrefixes {
		rest, ok := strings.CutPrefix(street, prefix)
		if !ok {
			continue
		}
		rest = strings.TrimPrefix(rest, " ")
		route, trailing := splitRoute(rest)
		if route == "" {
			continue
		}

		matched = true
		comps.StreetType = s.tables.HighwaysToGeocoder[prefix]
		comps.StreetName = strings.ToUpper(route)
		if trailing = strings.TrimSpace(trailing); trailing != "" {
			comps.Postdirection = strings.ToUpper(trailing)
		}
		break
	}

	if !matched || comps.Postdirection == "" || comps.City != "" {
		return
	}

	direction, rest := splitDirection(comps.Postdirection, s.tables.DirectionTokens)
	switch {
	case direction != "" && rest != "":
		comps.City = style.TitleCase(rest)
		comps.Postdirection = direction
	case direction == "":
		comps.City = style.TitleCase(comps.Postdirection)
		comps.Postdirection = ""
	}
}

// splitRoute cuts the leading route identifier off a highway remainder:
// a run of digits, or failing that a single letter/digit word ("41",
// "41w" splits as "41"+"w", "K" stays whole).
func splitRoute(s string) (route, trailing string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		for i < len(s) && isWordByte(s[i]) {
			i++
		}
	}
	return s[:i], s[i:]
}

// splitDirection cuts a leading directional token off a captured
// post-direction value. Tokens are tried longest first so "NE" wins over
// "N", and a token only counts when it stands alone or is followed by a
// space, keeping city names like "Waukesha" from matching "W".
func splitDirection(s string, tokens []string) (direction, rest string) {
	upper := strings.ToUpper(s)
	for _, token := range tokens {
		if upper == token {
			return token, ""
		}
		if strings.HasPrefix(upper, token+" ") {
			return token, strings.TrimSpace(s[len(token):])
		}
	}
	return "", s
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

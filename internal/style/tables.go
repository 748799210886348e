package style

import (
	"sort"
	"strings"
)

// State holds the Associated Press rendering of a single U.S. state.
type State struct {
	AP   string
	Name string
}

// Tables is the read-only lookup data the corrector and formatter share.
// Build it once at startup with Default and pass it by reference; nothing
// mutates it afterward, so it is safe for concurrent use.
type Tables struct {
	// Predirections maps normalizer directional values to their AP form.
	Predirections map[string]string
	// DirectionTokens are directional prefixes ordered longest first.
	DirectionTokens []string
	// HighwaysToGeocoder maps non-standard highway spellings the TIGER
	// normalizer misses to the type code the geocoder understands.
	HighwaysToGeocoder map[string]string
	// HighwayPrefixes are the HighwaysToGeocoder keys ordered longest first.
	HighwayPrefixes []string
	// HighwaysToStyle maps highway type codes to their AP rendering.
	HighwaysToStyle map[string]string
	// HighwayStateAppend marks highway type codes rendered with the full
	// state name in front ("Wisconsin Highway 41").
	HighwayStateAppend map[string]bool
	// StreetSuffixes maps suffix abbreviations to their canonical word.
	StreetSuffixes map[string]string
	// SuffixesToAP maps canonical suffix words to their AP abbreviation.
	SuffixesToAP map[string]string
	// Crosswalk maps USPS state codes to their AP abbreviation and full name.
	Crosswalk map[string]State
	// StateAbbrevs maps known state abbreviations, standard and otherwise,
	// to the USPS code.
	StateAbbrevs map[string]string
	// StateAbbrevKeys are the StateAbbrevs keys ordered longest first, so
	// suffix matching is deterministic ("wisc" wins over "wi").
	StateAbbrevKeys []string
	// UnitsWithNumbers maps secondary-unit designators that carry a number
	// to their spelled-out form.
	UnitsWithNumbers map[string]string
	// UnitsWithoutNumbers maps number-free unit designators ("#rear") to
	// their spelled-out form.
	UnitsWithoutNumbers map[string]string
	// TextualOrdinals maps spelled-out ordinal street names to numerals.
	TextualOrdinals map[string]string
	// OrdinalNumerals is the set of numeric ordinals ("1st", "2nd", ...).
	OrdinalNumerals map[string]bool
}

// Default builds the standard lookup tables.
func Default() *Tables {
	t := &Tables{
		Predirections: map[string]string{
			"n": "N", "north": "N",
			"s": "S", "south": "S",
			"e": "E", "east": "E",
			"w": "W", "west": "W",
			"ne": "NE", "northeast": "NE",
			"nw": "NW", "northwest": "NW",
			"se": "SE", "southeast": "SE",
			"sw": "SW", "southwest": "SW",
		},
		DirectionTokens: []string{"NE", "NW", "SE", "SW", "N", "S", "E", "W"},
		HighwaysToGeocoder: map[string]string{
			"hwy":            "Hwy",
			"highway":        "Hwy",
			"sth":            "STH",
			"state hwy":      "STH",
			"state highway":  "STH",
			"cth":            "CTH",
			"county hwy":     "CTH",
			"county highway": "CTH",
			"ush":            "USH",
			"us hwy":         "USH",
			"us highway":     "USH",
			"interstate":     "I",
			"i-":             "I",
		},
		HighwaysToStyle: map[string]string{
			"hwy": "Highway",
			"sth": "Highway",
			"cth": "County Highway",
			"ush": "U.S. Highway",
			"i":   "Interstate",
		},
		HighwayStateAppend: map[string]bool{
			"hwy": true,
			"sth": true,
		},
		StreetSuffixes: map[string]string{
			"st": "street", "street": "street",
			"ave": "avenue", "av": "avenue", "avenue": "avenue",
			"blvd": "boulevard", "boulevard": "boulevard",
			"dr": "drive", "drive": "drive",
			"rd": "road", "road": "road",
			"ct": "court", "court": "court",
			"ln": "lane", "lane": "lane",
			"pl": "place", "place": "place",
			"cir": "circle", "circle": "circle",
			"ter": "terrace", "terrace": "terrace",
			"pkwy": "parkway", "parkway": "parkway",
			"sq": "square", "square": "square",
			"trl": "trail", "trail": "trail",
			"way": "way",
			"plz": "plaza", "plaza": "plaza",
			"xing": "crossing", "crossing": "crossing",
		},
		SuffixesToAP: map[string]string{
			"street":    "St",
			"avenue":    "Ave",
			"boulevard": "Blvd",
			"drive":     "Drive",
			"road":      "Road",
			"court":     "Court",
			"lane":      "Lane",
			"place":     "Place",
			"circle":    "Circle",
			"terrace":   "Terrace",
			"parkway":   "Parkway",
			"square":    "Square",
			"trail":     "Trail",
			"way":       "Way",
			"plaza":     "Plaza",
			"crossing":  "Crossing",
		},
		Crosswalk: map[string]State{
			"AL": {"Ala.", "Alabama"},
			"AK": {"Alaska", "Alaska"},
			"AZ": {"Ariz.", "Arizona"},
			"AR": {"Ark.", "Arkansas"},
			"CA": {"Calif.", "California"},
			"CO": {"Colo.", "Colorado"},
			"CT": {"Conn.", "Connecticut"},
			"DE": {"Del.", "Delaware"},
			"DC": {"D.C.", "District of Columbia"},
			"FL": {"Fla.", "Florida"},
			"GA": {"Ga.", "Georgia"},
			"HI": {"Hawaii", "Hawaii"},
			"ID": {"Idaho", "Idaho"},
			"IL": {"Ill.", "Illinois"},
			"IN": {"Ind.", "Indiana"},
			"IA": {"Iowa", "Iowa"},
			"KS": {"Kan.", "Kansas"},
			"KY": {"Ky.", "Kentucky"},
			"LA": {"La.", "Louisiana"},
			"ME": {"Maine", "Maine"},
			"MD": {"Md.", "Maryland"},
			"MA": {"Mass.", "Massachusetts"},
			"MI": {"Mich.", "Michigan"},
			"MN": {"Minn.", "Minnesota"},
			"MS": {"Miss.", "Mississippi"},
			"MO": {"Mo.", "Missouri"},
			"MT": {"Mont.", "Montana"},
			"NE": {"Neb.", "Nebraska"},
			"NV": {"Nev.", "Nevada"},
			"NH": {"N.H.", "New Hampshire"},
			"NJ": {"N.J.", "New Jersey"},
			"NM": {"N.M.", "New Mexico"},
			"NY": {"N.Y.", "New York"},
			"NC": {"N.C.", "North Carolina"},
			"ND": {"N.D.", "North Dakota"},
			"OH": {"Ohio", "Ohio"},
			"OK": {"Okla.", "Oklahoma"},
			"OR": {"Ore.", "Oregon"},
			"PA": {"Pa.", "Pennsylvania"},
			"RI": {"R.I.", "Rhode Island"},
			"SC": {"S.C.", "South Carolina"},
			"SD": {"S.D.", "South Dakota"},
			"TN": {"Tenn.", "Tennessee"},
			"TX": {"Texas", "Texas"},
			"UT": {"Utah", "Utah"},
			"VT": {"Vt.", "Vermont"},
			"VA": {"Va.", "Virginia"},
			"WA": {"Wash.", "Washington"},
			"WV": {"W.Va.", "West Virginia"},
			"WI": {"Wis.", "Wisconsin"},
			"WY": {"Wyo.", "Wyoming"},
		},
		StateAbbrevs: map[string]string{
			"ala": "AL", "ariz": "AZ", "ark": "AR",
			"cal": "CA", "calif": "CA", "colo": "CO", "conn": "CT",
			"del": "DE", "fla": "FL",
			"ill": "IL", "ind": "IN",
			"kan": "KS", "kans": "KS", "ken": "KY",
			"mass": "MA", "mich": "MI", "minn": "MN", "miss": "MS", "mont": "MT",
			"neb": "NE", "nebr": "NE", "nev": "NV",
			"okla": "OK", "ore": "OR", "oreg": "OR",
			"penn": "PA", "penna": "PA",
			"tenn": "TN", "tex": "TX",
			"wash": "WA", "wis": "WI", "wisc": "WI", "wyo": "WY",
		},
		UnitsWithNumbers: map[string]string{
			"apt": "Apartment", "apartment": "Apartment",
			"ste": "Suite", "suite": "Suite",
			"unit": "Unit",
			"rm":   "Room", "room": "Room",
			"fl": "Floor", "floor": "Floor",
			"dept": "Department",
			"bldg": "Building",
			"lot":  "Lot",
			"trlr": "Trailer",
			"hngr": "Hangar",
			"slip": "Slip",
			"spc":  "Space",
			"stop": "Stop",
			"box":  "Box",
		},
		UnitsWithoutNumbers: map[string]string{
			"bsmt": "Basement", "basement": "Basement",
			"frnt": "Front", "front": "Front",
			"lbby": "Lobby", "lobby": "Lobby",
			"lowr": "Lower", "lower": "Lower",
			"uppr": "Upper", "upper": "Upper",
			"rear": "Rear",
			"side": "Side",
			"ofc":  "Office", "office": "Office",
			"ph":   "Penthouse", "penthouse": "Penthouse",
		},
		TextualOrdinals: map[string]string{
			"first":    "1st",
			"second":   "2nd",
			"third":    "3rd",
			"fourth":   "4th",
			"fifth":    "5th",
			"sixth":    "6th",
			"seventh":  "7th",
			"eighth":   "8th",
			"ninth":    "9th",
			"tenth":    "10th",
			"eleventh": "11th",
			"twelfth":  "12th",
		},
	}

	// Every USPS code is also a recognized abbreviation for itself.
	for code := range t.Crosswalk {
		t.StateAbbrevs[strings.ToLower(code)] = code
	}

	t.OrdinalNumerals = make(map[string]bool, len(t.TextualOrdinals))
	for _, numeral := range t.TextualOrdinals {
		t.OrdinalNumerals[numeral] = true
	}

	t.StateAbbrevKeys = sortedKeysLongestFirst(t.StateAbbrevs)
	t.HighwayPrefixes = sortedKeysLongestFirst(t.HighwaysToGeocoder)

	return t
}

func sortedKeysLongestFirst(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

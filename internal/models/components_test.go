package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComponents(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    AddressComponents
		expectError bool
	}{
		{
			name: "plain address",
			raw:  "(123,N,MAIN,ST,,,MILWAUKEE,WI,53202,t)",
			expected: AddressComponents{
				HouseNumber:  "123",
				Predirection: "N",
				StreetName:   "MAIN",
				StreetType:   "ST",
				City:         "MILWAUKEE",
				State:        "WI",
				Zip:          "53202",
				SourceFlag:   "t",
			},
		},
		{
			name: "quoted sub-values with embedded comma and space",
			raw:  `(123,,"VAN BUREN",ST,,"APT 4","CHICAGO, IL",,60601,t)`,
			expected: AddressComponents{
				HouseNumber: "123",
				StreetName:  "VAN BUREN",
				StreetType:  "ST",
				Unit:        "APT 4",
				City:        "CHICAGO, IL",
				Zip:         "60601",
				SourceFlag:  "t",
			},
		},
		{
			name: "escaped quote and doubled apostrophe",
			raw:  `(9,,"O''HARE ""EAST""",AVE,,,,,,f)`,
			expected: AddressComponents{
				HouseNumber: "9",
				StreetName:  `O'HARE "EAST"`,
				StreetType:  "AVE",
				SourceFlag:  "f",
			},
		},
		{
			name: "all blank but flag",
			raw:  "(,,,,,,,,,t)",
			expected: AddressComponents{
				SourceFlag: "t",
			},
		},
		{
			name:        "wrong arity",
			raw:         "(123,MAIN,ST)",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comps, err := ParseComponents(tt.raw)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, comps)
		})
	}
}

func TestAddressComponents_IsBlank(t *testing.T) {
	assert.True(t, AddressComponents{SourceFlag: "t"}.IsBlank())
	assert.False(t, AddressComponents{Zip: "53202"}.IsBlank())
}

func TestAddressComponents_Street(t *testing.T) {
	comps := AddressComponents{
		Predirection: "N",
		StreetName:   "MAIN",
		StreetType:   "ST",
	}
	assert.Equal(t, "N MAIN ST", comps.Street())

	comps.Postdirection = "NE"
	assert.Equal(t, "N MAIN ST NE", comps.Street())

	assert.Equal(t, "", AddressComponents{HouseNumber: "123"}.Street())
}

func TestStreetStyles_Lookup(t *testing.T) {
	styles := StreetStyles{
		"milwaukee": {"kinnickinnic": "KK"},
	}

	replacement, ok := styles.Lookup("Milwaukee", "KINNICKINNIC")
	assert.True(t, ok)
	assert.Equal(t, "KK", replacement)

	_, ok = styles.Lookup("Madison", "KINNICKINNIC")
	assert.False(t, ok)

	var none StreetStyles
	_, ok = none.Lookup("Milwaukee", "Kinnickinnic")
	assert.False(t, ok)
}

func TestGeocodedAddress_Render(t *testing.T) {
	addr := GeocodedAddress{
		Rating: 3,
		Lat:    43.0389,
		Lng:    -87.9065,
		Lines:  []string{"123 Main St", "", "Milwaukee, Wis. 53202"},
	}

	assert.Equal(t, "123 Main St, Milwaukee, Wis. 53202", addr.OneLine())
	assert.Equal(t, "123 Main St\nMilwaukee, Wis. 53202", addr.MultiLine())
	assert.Equal(t, "POINT(-87.9065 43.0389)", addr.WKT())

	lat, lng := addr.Coords()
	assert.Equal(t, 43.0389, lat)
	assert.Equal(t, -87.9065, lng)
}

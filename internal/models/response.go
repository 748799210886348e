package models

// The types below describe the geocoding-API-style JSON shape served by
// the HTTP adapter. They mirror the Google geocoding response closely
// enough that existing consumers of that format can read ours.

// GeoResponse is a complete response body.
type GeoResponse struct {
	Results []GeoResult `json:"results"`
	Status  string      `json:"status"`
}

// GeoResult is a single geocoded match within a GeoResponse.
type GeoResult struct {
	AddressComponents []GeoComponent `json:"address_components"`
	FormattedAddress  string         `json:"formatted_address"`
	Geometry          GeoGeometry    `json:"geometry"`
	Types             []string       `json:"types"`
}

// GeoComponent is one semantic piece of a matched address.
type GeoComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// GeoGeometry carries a match's point and derived viewport.
type GeoGeometry struct {
	Location     LatLng   `json:"location"`
	LocationType string   `json:"location_type"`
	Viewport     Viewport `json:"viewport"`
}

// LatLng is a point in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport is a bounding box around a point.
type Viewport struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

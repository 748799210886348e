package handler

import (
	"context"
	"errors"
	"net/http"

	"geocoder-api/internal/models"
	"geocoder-api/internal/service"

	"github.com/gin-gonic/gin"
)

// Status values for the geocoding-API-style response body.
const (
	statusOK            = "OK"
	statusZeroResults   = "ZERO_RESULTS"
	statusRequestDenied = "REQUEST_DENIED"
	statusUnknownError  = "UNKNOWN_ERROR"
)

// GeocodeHandler serves address geocoding in a Google-compatible shape
type GeocodeHandler struct {
	service GeocodeService
}

// Service interface for dependency injection
type GeocodeService interface {
	Geocode(context.Context, string) ([]models.GeocodedAddress, error)
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(svc GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{service: svc}
}

// Geocode handles GET /geocode requests. The response mimics the Google
// geocoding API: a results list plus a status string, with errors carried
// in the status rather than the HTTP code wherever Google does the same.
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	if _, ok := c.GetQuery("sensor"); !ok {
		c.JSON(http.StatusOK, models.GeoResponse{Results: []models.GeoResult{}, Status: statusRequestDenied})
		return
	}

	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusOK, models.GeoResponse{Results: []models.GeoResult{}, Status: statusZeroResults})
		return
	}

	geocoded, err := h.service.Geocode(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, service.ErrAddressInput) || errors.Is(err, service.ErrAddressNotFound) {
			c.JSON(http.StatusOK, models.GeoResponse{Results: []models.GeoResult{}, Status: statusZeroResults})
			return
		}
		c.JSON(http.StatusInternalServerError, models.GeoResponse{Results: []models.GeoResult{}, Status: statusUnknownError})
		return
	}

	results := make([]models.GeoResult, 0, len(geocoded))
	for _, match := range geocoded {
		results = append(results, buildGeoResult(match))
	}

	c.JSON(http.StatusOK, models.GeoResponse{Results: results, Status: statusOK})
}

// buildGeoResult converts one geocoded address into the response shape,
// with a viewport derived a thousandth of a degree around the point.
func buildGeoResult(match models.GeocodedAddress) models.GeoResult {
	result := models.GeoResult{
		FormattedAddress: match.OneLine(),
		Geometry: models.GeoGeometry{
			Location:     models.LatLng{Lat: match.Lat, Lng: match.Lng},
			LocationType: "RANGE_INTERPOLATED",
			Viewport: models.Viewport{
				Northeast: models.LatLng{Lat: match.Lat + 0.001, Lng: match.Lng + 0.001},
				Southwest: models.LatLng{Lat: match.Lat - 0.001, Lng: match.Lng - 0.001},
			},
		},
		Types: []string{"street_address"},
	}

	comps := match.Components
	appendComponent := func(value string, types ...string) {
		if value == "" {
			return
		}
		result.AddressComponents = append(result.AddressComponents, models.GeoComponent{
			LongName:  value,
			ShortName: value,
			Types:     types,
		})
	}

	appendComponent(comps.HouseNumber, "street_number")
	if comps.StreetName != "" {
		appendComponent(comps.Street(), "route")
	}
	appendComponent(comps.Unit, "subpremise")
	appendComponent(comps.City, "locality", "political")
	appendComponent(comps.State, "administrative_area_level_1", "political")
	appendComponent(comps.Zip, "postal_code")

	result.AddressComponents = append(result.AddressComponents, models.GeoComponent{
		LongName:  "United States",
		ShortName: "US",
		Types:     []string{"country", "political"},
	})

	return result
}

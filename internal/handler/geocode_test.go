package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"geocoder-api/internal/models"
	"geocoder-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGeocodeService is a mock implementation of the GeocodeService interface
type MockGeocodeService struct {
	mock.Mock
}

func (m *MockGeocodeService) Geocode(ctx context.Context, address string) ([]models.GeocodedAddress, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GeocodedAddress), args.Error(1)
}

func TestGeocodeHandler_Geocode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	match := models.GeocodedAddress{
		Rating: 1,
		Lat:    43.0389,
		Lng:    -87.9065,
		Components: models.AddressComponents{
			HouseNumber: "123", StreetName: "MAIN", StreetType: "ST",
			City: "MILWAUKEE", State: "WI", Zip: "53202",
		},
		Lines: []string{"123 Main St", "Milwaukee, Wis. 53202"},
	}

	tests := []struct {
		name           string
		rawQuery       string
		mockAddress    string
		mockResults    []models.GeocodedAddress
		mockError      error
		expectedStatus string
	}{
		{
			name:           "missing sensor parameter is denied",
			rawQuery:       "address=123+Main+St",
			expectedStatus: statusRequestDenied,
		},
		{
			name:           "missing address yields zero results",
			rawQuery:       "sensor=false",
			expectedStatus: statusZeroResults,
		},
		{
			name:           "successful geocode",
			rawQuery:       "sensor=false&address=123+Main+St+Milwaukee+WI",
			mockAddress:    "123 Main St Milwaukee WI",
			mockResults:    []models.GeocodedAddress{match},
			expectedStatus: statusOK,
		},
		{
			name:           "unparseable address yields zero results",
			rawQuery:       "sensor=false&address=gibberish",
			mockAddress:    "gibberish",
			mockError:      fmt.Errorf("service: %w", service.ErrAddressInput),
			expectedStatus: statusZeroResults,
		},
		{
			name:           "no match yields zero results",
			rawQuery:       "sensor=false&address=123+Nowhere+Ln",
			mockAddress:    "123 Nowhere Ln",
			mockError:      fmt.Errorf("service: %w", service.ErrAddressNotFound),
			expectedStatus: statusZeroResults,
		},
		{
			name:           "unexpected failure",
			rawQuery:       "sensor=false&address=123+Main+St",
			mockAddress:    "123 Main St",
			mockError:      assert.AnError,
			expectedStatus: statusUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockGeocodeService)
			handler := NewGeocodeHandler(mockSvc)

			if tt.mockAddress != "" {
				mockSvc.On("Geocode", mock.Anything, tt.mockAddress).Return(tt.mockResults, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/geocode?"+tt.rawQuery, nil)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.Geocode(c)

			expectedCode := http.StatusOK
			if tt.expectedStatus == statusUnknownError {
				expectedCode = http.StatusInternalServerError
			}
			assert.Equal(t, expectedCode, w.Code)

			var body models.GeoResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedStatus, body.Status)

			if tt.expectedStatus == statusOK {
				require.Len(t, body.Results, 1)
			} else {
				assert.Empty(t, body.Results)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGeocodeHandler_Geocode_ResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockGeocodeService)
	handler := NewGeocodeHandler(mockSvc)

	mockSvc.On("Geocode", mock.Anything, "123 Main St Apt 4 Milwaukee WI").
		Return([]models.GeocodedAddress{
			{
				Rating: 1,
				Lat:    43.0389,
				Lng:    -87.9065,
				Components: models.AddressComponents{
					HouseNumber: "123", StreetName: "MAIN", StreetType: "ST",
					Unit: "Apt 4", City: "MILWAUKEE", State: "WI", Zip: "53202",
				},
				Lines: []string{"123 Main St", "Apartment 4", "Milwaukee, Wis. 53202"},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/geocode?sensor=false&address=123+Main+St+Apt+4+Milwaukee+WI", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Geocode(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body models.GeoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)

	result := body.Results[0]
	assert.Equal(t, "123 Main St, Apartment 4, Milwaukee, Wis. 53202", result.FormattedAddress)
	assert.Equal(t, []string{"street_address"}, result.Types)
	assert.Equal(t, "RANGE_INTERPOLATED", result.Geometry.LocationType)
	assert.Equal(t, models.LatLng{Lat: 43.0389, Lng: -87.9065}, result.Geometry.Location)
	assert.InDelta(t, 43.0399, result.Geometry.Viewport.Northeast.Lat, 1e-9)
	assert.InDelta(t, -87.9055, result.Geometry.Viewport.Northeast.Lng, 1e-9)
	assert.InDelta(t, 43.0379, result.Geometry.Viewport.Southwest.Lat, 1e-9)
	assert.InDelta(t, -87.9075, result.Geometry.Viewport.Southwest.Lng, 1e-9)

	byType := make(map[string]models.GeoComponent)
	for _, comp := range result.AddressComponents {
		byType[comp.Types[0]] = comp
	}
	assert.Equal(t, "123", byType["street_number"].LongName)
	assert.Equal(t, "MAIN ST", byType["route"].LongName)
	assert.Equal(t, "Apt 4", byType["subpremise"].LongName)
	assert.Equal(t, "MILWAUKEE", byType["locality"].LongName)
	assert.Equal(t, "WI", byType["administrative_area_level_1"].LongName)
	assert.Equal(t, "53202", byType["postal_code"].LongName)
	assert.Equal(t, "US", byType["country"].ShortName)
	mockSvc.AssertExpectations(t)
}

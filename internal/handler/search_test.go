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

// MockSearchService is a mock implementation of the SearchService interface
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchResult), args.Error(1)
}

func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)

	addressResult := models.SearchResult{
		Address: &models.GeocodedAddress{
			Rating: 1,
			Lat:    43.0389,
			Lng:    -87.9065,
			Lines:  []string{"123 Main St", "Milwaukee, Wis. 53202"},
		},
	}
	intersectionResult := models.SearchResult{
		Intersection: &models.GeocodedIntersection{
			Rating:    2,
			StreetOne: "Main St",
			StreetTwo: "Water St",
			Address:   models.GeocodedAddress{Lat: 43.0321, Lng: -87.9123},
			Lines:     []string{"Main St at Water St", "Milwaukee, Wis. 53202"},
		},
	}

	tests := []struct {
		name           string
		query          string
		mockResults    []models.SearchResult
		mockError      error
		expectedStatus int
		expectedItems  []SearchResultItem
		expectedError  string
	}{
		{
			name:           "missing query parameter",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing required query parameter 'q'",
		},
		{
			name:           "address result",
			query:          "123 Main St Milwaukee WI",
			mockResults:    []models.SearchResult{addressResult},
			expectedStatus: http.StatusOK,
			expectedItems: []SearchResultItem{
				{
					Type:             "address",
					FormattedAddress: "123 Main St, Milwaukee, Wis. 53202",
					Lines:            []string{"123 Main St", "Milwaukee, Wis. 53202"},
					Rating:           1,
					Lat:              43.0389,
					Lng:              -87.9065,
				},
			},
		},
		{
			name:           "intersection result",
			query:          "Main St @ Water St",
			mockResults:    []models.SearchResult{intersectionResult},
			expectedStatus: http.StatusOK,
			expectedItems: []SearchResultItem{
				{
					Type:             "intersection",
					FormattedAddress: "Main St at Water St, Milwaukee, Wis. 53202",
					Lines:            []string{"Main St at Water St", "Milwaukee, Wis. 53202"},
					Rating:           2,
					Lat:              43.0321,
					Lng:              -87.9123,
				},
			},
		},
		{
			name:           "no results",
			query:          "nowhere",
			mockError:      fmt.Errorf("service: %w", service.ErrNoResults),
			expectedStatus: http.StatusNotFound,
			expectedError:  "no matching addresses or intersections were found",
		},
		{
			name:           "service error",
			query:          "123 Main St",
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSearchService)
			handler := NewSearchHandler(mockSvc)

			if tt.query != "" {
				mockSvc.On("Search", mock.Anything, tt.query).Return(tt.mockResults, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/search", nil)
			if tt.query != "" {
				q := req.URL.Query()
				q.Add("q", tt.query)
				req.URL.RawQuery = q.Encode()
			}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.Search(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				var items []SearchResultItem
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
				assert.Equal(t, tt.expectedItems, items)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

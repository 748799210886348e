package handler

import (
	"context"
	"errors"
	"net/http"

	"geocoder-api/internal/models"
	"geocoder-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles combined address/intersection search requests
type SearchHandler struct {
	service SearchService
}

// Service interface for dependency injection
type SearchService interface {
	Search(context.Context, string) ([]models.SearchResult, error)
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// SearchResultItem is one hit in a search response.
type SearchResultItem struct {
	Type             string   `json:"type"`
	FormattedAddress string   `json:"formatted_address"`
	Lines            []string `json:"lines"`
	Rating           int      `json:"rating"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
}

// Search handles GET /search requests
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no matching addresses or intersections were found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	items := make([]SearchResultItem, 0, len(results))
	for _, result := range results {
		lat, lng := result.Coords()
		item := SearchResultItem{
			FormattedAddress: result.OneLine(),
			Rating:           result.Rating(),
			Lat:              lat,
			Lng:              lng,
		}
		if result.Intersection != nil {
			item.Type = "intersection"
			item.Lines = result.Intersection.Lines
		} else if result.Address != nil {
			item.Type = "address"
			item.Lines = result.Address.Lines
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, items)
}

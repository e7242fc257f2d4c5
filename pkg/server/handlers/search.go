package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/server/dto"
)

// SearchHandler handles relevance search requests
type SearchHandler struct {
	searcher *search.Searcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searcher *search.Searcher) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), req.Query, req.RawFilters(), req.EffectiveLimit())
	if err != nil {
		if search.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
		if search.IsStoreError(err) {
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{
				Error:   "store_unavailable",
				Message: err.Error(),
				Code:    http.StatusBadGateway,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "search_failed",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Results:      result.Results,
		TotalMatches: result.TotalMatches,
		Returned:     result.Returned,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nodelens/nodelens/pkg/driver"
	"github.com/nodelens/nodelens/pkg/server/dto"
)

// RecordsHandler handles record CRUD requests
type RecordsHandler struct {
	store driver.RecordStore
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(store driver.RecordStore) *RecordsHandler {
	return &RecordsHandler{
		store: store,
	}
}

// GetRecord handles GET /api/v1/records/:uuid
func (h *RecordsHandler) GetRecord(c *gin.Context) {
	uuid := c.Param("uuid")
	if uuid == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "uuid parameter is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	record, err := h.store.GetRecord(c.Request.Context(), uuid)
	if err != nil {
		if errors.Is(err, driver.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "record_not_found",
				Message: "no record with the given uuid",
				Code:    http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "store_unavailable",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
		return
	}

	c.JSON(http.StatusOK, dto.FromRecord(record))
}

// UpsertRecord handles PUT /api/v1/records
func (h *RecordsHandler) UpsertRecord(c *gin.Context) {
	var req dto.UpsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	uuid, err := h.store.UpsertRecord(c.Request.Context(), req.ToRecord())
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "upsert_failed",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusOK, dto.UpsertRecordResponse{Uuid: uuid})
}

// DeleteRecord handles DELETE /api/v1/records/:uuid
func (h *RecordsHandler) DeleteRecord(c *gin.Context) {
	uuid := c.Param("uuid")

	if err := h.store.DeleteRecord(c.Request.Context(), uuid); err != nil {
		if errors.Is(err, driver.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "record_not_found",
				Message: "no record with the given uuid",
				Code:    http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "store_unavailable",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
		return
	}

	c.JSON(http.StatusOK, dto.Result{Success: true})
}

// ListLabels handles GET /api/v1/labels
func (h *RecordsHandler) ListLabels(c *gin.Context) {
	labels, err := h.store.ListLabels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "store_unavailable",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
		return
	}

	c.JSON(http.StatusOK, dto.LabelsResponse{Labels: labels})
}

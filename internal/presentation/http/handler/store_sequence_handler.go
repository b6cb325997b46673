package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/request"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/response"
)

// StoreSequenceHandler handles the featured stores ordering
type StoreSequenceHandler struct {
	sequenceService *service.StoreSequenceService
}

// NewStoreSequenceHandler creates a new store sequence handler
func NewStoreSequenceHandler(sequenceService *service.StoreSequenceService) *StoreSequenceHandler {
	return &StoreSequenceHandler{sequenceService: sequenceService}
}

// List handles getting the whole ordering
func (h *StoreSequenceHandler) List(c *gin.Context) {
	req := listRequest(c)
	if req.Query.SortBy == "" {
		req.Query.SortBy = "sequence_no"
	}
	result, err := h.sequenceService.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Store sequence retrieved successfully", result)
}

// Add handles featuring a store
func (h *StoreSequenceHandler) Add(c *gin.Context) {
	create(c, "Sequence entry", h.sequenceService.Add)
}

// Remove handles dropping a store from the ordering
func (h *StoreSequenceHandler) Remove(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.sequenceService.Remove(c.Request.Context(), id)
	respondMutation(c, http.StatusOK, "Sequence entry deleted successfully", res, err, nil)
}

// Move handles a drag and drop. A failed save is not an error: the response
// carries the order the loyalty API still holds with rolled_back set.
func (h *StoreSequenceHandler) Move(c *gin.Context) {
	var req request.MoveSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	result, err := h.sequenceService.Move(c.Request.Context(), *req.From, *req.To)
	h.respondReorder(c, result, err)
}

// SetOrder handles saving a complete ordering
func (h *StoreSequenceHandler) SetOrder(c *gin.Context) {
	var req request.SetSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	result, err := h.sequenceService.SetOrder(c.Request.Context(), req.IDs)
	h.respondReorder(c, result, err)
}

func (h *StoreSequenceHandler) respondReorder(c *gin.Context, result *service.ReorderResult, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if result.RolledBack {
		response.OK(c, result.Message, result)
		return
	}
	response.OK(c, "Store sequence updated successfully", result)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/response"
)

// CatalogHandler serves the list, detail and soft-delete routes every resource shares
type CatalogHandler[T any] struct {
	catalog *service.Catalog[T]
	label   string
}

// NewCatalogHandler creates a new catalog handler. label is the singular
// resource name used in messages, e.g. "Store".
func NewCatalogHandler[T any](catalog *service.Catalog[T], label string) *CatalogHandler[T] {
	return &CatalogHandler[T]{catalog: catalog, label: label}
}

// List handles listing records
func (h *CatalogHandler[T]) List(c *gin.Context) {
	result, err := h.catalog.List(c.Request.Context(), listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, h.label+" list retrieved successfully", result)
}

// Get handles getting a single record
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	record, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, h.label+" retrieved successfully", record)
}

// Deactivate handles soft-deleting a record
func (h *CatalogHandler[T]) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := h.catalog.Deactivate(c.Request.Context(), id)
	respondMutation(c, http.StatusOK, h.label+" deactivated successfully", res, err, nil)
}

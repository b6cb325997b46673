package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

// StoreHandler handles partner store HTTP requests
type StoreHandler struct {
	*CatalogHandler[entity.Store]
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{
		CatalogHandler: NewCatalogHandler(storeService.Catalog, "Store"),
		storeService:   storeService,
	}
}

// Create handles creating a store
func (h *StoreHandler) Create(c *gin.Context) {
	create(c, "Store", h.storeService.CreateStore)
}

// Update handles updating a store
func (h *StoreHandler) Update(c *gin.Context) {
	update(c, "Store", h.storeService.UpdateStore)
}

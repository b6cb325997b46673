package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/settlement"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SettlementHandler handles settlement HTTP requests
type SettlementHandler struct {
	*CatalogHandler[entity.Settlement]
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		CatalogHandler:    NewCatalogHandler(settlementService.Catalog, "Settlement"),
		settlementService: settlementService,
	}
}

// Create handles creating a settlement
func (h *SettlementHandler) Create(c *gin.Context) {
	create(c, "Settlement", h.settlementService.CreateSettlement)
}

// Update handles updating a settlement
func (h *SettlementHandler) Update(c *gin.Context) {
	update(c, "Settlement", h.settlementService.UpdateSettlement)
}

// Calculate handles the live calculator preview. Nothing is sent upstream.
func (h *SettlementHandler) Calculate(c *gin.Context) {
	var form settlement.Form
	raw, ok := bindInput(c, &form)
	if !ok {
		return
	}
	preview, err := h.settlementService.Calculate(form)
	if err != nil {
		respondMutation(c, http.StatusOK, "", nil, err, raw)
		return
	}
	response.OK(c, "Settlement calculated", preview)
}

// Export handles downloading the filtered settlements as a spreadsheet
func (h *SettlementHandler) Export(c *gin.Context) {
	data, err := h.settlementService.Export(c.Request.Context(), listRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("settlements-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

// FAQHandler handles FAQ HTTP requests
type FAQHandler struct {
	*CatalogHandler[entity.FAQ]
	faqService *service.FAQService
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(faqService *service.FAQService) *FAQHandler {
	return &FAQHandler{CatalogHandler: NewCatalogHandler(faqService.Catalog, "FAQ"), faqService: faqService}
}

func (h *FAQHandler) Create(c *gin.Context) {
	create(c, "FAQ", h.faqService.CreateFAQ)
}

func (h *FAQHandler) Update(c *gin.Context) {
	update(c, "FAQ", h.faqService.UpdateFAQ)
}

// TermHandler handles terms and conditions HTTP requests
type TermHandler struct {
	*CatalogHandler[entity.Term]
	termService *service.TermService
}

// NewTermHandler creates a new terms handler
func NewTermHandler(termService *service.TermService) *TermHandler {
	return &TermHandler{CatalogHandler: NewCatalogHandler(termService.Catalog, "Term"), termService: termService}
}

func (h *TermHandler) Create(c *gin.Context) {
	create(c, "Term", h.termService.CreateTerm)
}

func (h *TermHandler) Update(c *gin.Context) {
	update(c, "Term", h.termService.UpdateTerm)
}

// VideoHandler handles video HTTP requests
type VideoHandler struct {
	*CatalogHandler[entity.Video]
	videoService *service.VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{CatalogHandler: NewCatalogHandler(videoService.Catalog, "Video"), videoService: videoService}
}

func (h *VideoHandler) Create(c *gin.Context) {
	create(c, "Video", h.videoService.CreateVideo)
}

func (h *VideoHandler) Update(c *gin.Context) {
	update(c, "Video", h.videoService.UpdateVideo)
}

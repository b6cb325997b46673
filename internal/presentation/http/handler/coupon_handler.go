package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

// CouponHandler handles coupon HTTP requests
type CouponHandler struct {
	*CatalogHandler[entity.Coupon]
	couponService *service.CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{
		CatalogHandler: NewCatalogHandler(couponService.Catalog, "Coupon"),
		couponService:  couponService,
	}
}

// Create handles creating a coupon
func (h *CouponHandler) Create(c *gin.Context) {
	create(c, "Coupon", h.couponService.CreateCoupon)
}

// Update handles updating a coupon
func (h *CouponHandler) Update(c *gin.Context) {
	update(c, "Coupon", h.couponService.UpdateCoupon)
}

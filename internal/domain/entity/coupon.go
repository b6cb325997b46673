package entity

import (
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Coupon represents a discount coupon offered by a store
type Coupon struct {
	ID             ID              `json:"id"`
	Code           string          `json:"code"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	StoreID        ID              `json:"store_id"`
	StoreName      string          `json:"store_name"`
	Type           enum.CouponType `json:"type"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	MaxDiscount    decimal.Decimal `json:"max_discount"`
	UsageLimit     int             `json:"usage_limit"`
	UsedCount      int             `json:"used_count"`
	ValidFrom      Timestamp       `json:"valid_from"`
	ValidUntil     Timestamp       `json:"valid_until"`
	IsActive       enum.Flag       `json:"is_active"`
	CreatedAt      Timestamp       `json:"created_at"`
}

func (c Coupon) GetID() ID {
	return c.ID
}

// Status derives the coupon status shown in the coupon table
func (c Coupon) Status(now time.Time) enum.CouponStatus {
	if !c.ValidUntil.IsZero() && now.After(c.ValidUntil.Time) {
		return enum.CouponStatusExpired
	}
	if !c.IsActive {
		return enum.CouponStatusInactive
	}
	return enum.CouponStatusActive
}

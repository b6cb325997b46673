package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/pkg/listing"
	"github.com/shopspring/decimal"
)

const couponsPerPage = 10

// CouponService manages store coupons
type CouponService struct {
	*Catalog[entity.Coupon]
	now func() time.Time
}

// NewCouponService creates a new coupon service
func NewCouponService(repo repository.LoyaltyRepository[entity.Coupon], deps CatalogDeps) *CouponService {
	s := &CouponService{now: time.Now}
	s.Catalog = NewCatalog(repo, CatalogOptions[entity.Coupon]{
		Name:      "coupons",
		Spec:      s.spec(),
		Summarize: s.summarize,
	}, deps)
	return s
}

func (s *CouponService) spec() listing.Spec[entity.Coupon] {
	return listing.Spec[entity.Coupon]{
		PerPage: couponsPerPage,
		SearchFields: func(c entity.Coupon) []string {
			return []string{c.Code, c.Title, c.StoreName}
		},
		Filters: map[string]listing.FilterFunc[entity.Coupon]{
			"type":     listing.Equals(func(c entity.Coupon) string { return string(c.Type) }),
			"status":   listing.Equals(func(c entity.Coupon) string { return string(c.Status(s.now())) }),
			"store_id": listing.Equals(func(c entity.Coupon) string { return c.StoreID.String() }),
		},
		Sorts: map[string]func(a, b entity.Coupon) int{
			"code":        listing.ByString(func(c entity.Coupon) string { return c.Code }),
			"used_count":  listing.ByNumber(func(c entity.Coupon) int { return c.UsedCount }),
			"valid_until": listing.ByTime(func(c entity.Coupon) time.Time { return c.ValidUntil.Time }),
			"value":       func(a, b entity.Coupon) int { return a.Value.Cmp(b.Value) },
		},
	}
}

func (s *CouponService) summarize(coupons []entity.Coupon) map[string]any {
	now := s.now()
	counts := map[enum.CouponStatus]int{}
	redemptions := 0
	for _, c := range coupons {
		counts[c.Status(now)]++
		redemptions += c.UsedCount
	}
	return map[string]any{
		"total_coupons":     len(coupons),
		"active_coupons":    counts[enum.CouponStatusActive],
		"expired_coupons":   counts[enum.CouponStatusExpired],
		"total_redemptions": redemptions,
	}
}

// CouponInput is the coupon form
type CouponInput struct {
	Code           string           `json:"code" validate:"required,nospace,max=64"`
	Title          string           `json:"title" validate:"required,max=255"`
	Description    string           `json:"description"`
	StoreID        entity.ID        `json:"store_id,omitempty"`
	Type           enum.CouponType  `json:"type" validate:"oneof=percentage flat"`
	Value          decimal.Decimal  `json:"value" validate:"gt=0"`
	MinOrderAmount decimal.Decimal  `json:"min_order_amount" validate:"min=0"`
	MaxDiscount    decimal.Decimal  `json:"max_discount" validate:"min=0"`
	UsageLimit     int              `json:"usage_limit" validate:"min=0"`
	ValidFrom      entity.Timestamp `json:"valid_from"`
	ValidUntil     entity.Timestamp `json:"valid_until"`
	IsActive       enum.Flag        `json:"is_active"`
}

func (in *CouponInput) normalize() {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Title = strings.TrimSpace(in.Title)
}

// Validate checks the form
func (in *CouponInput) Validate() error {
	return validateForm(in)
}

// CreateCoupon validates and sends a new coupon
func (s *CouponService) CreateCoupon(ctx context.Context, in *CouponInput) (*repository.MutationResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in)
}

// UpdateCoupon validates and sends the edited coupon
func (s *CouponService) UpdateCoupon(ctx context.Context, id entity.ID, in *CouponInput) (*repository.MutationResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}

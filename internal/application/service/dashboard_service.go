package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	users       *UserService
	stores      *StoreService
	coupons     *CouponService
	settlements *SettlementService
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	users *UserService,
	stores *StoreService,
	coupons *CouponService,
	settlements *SettlementService,
) *DashboardService {
	return &DashboardService{
		users:       users,
		stores:      stores,
		coupons:     coupons,
		settlements: settlements,
		now:         time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalUsers          int                    `json:"total_users"`
	ActiveUsers         int                    `json:"active_users"`
	VIPUsers            int                    `json:"vip_users"`
	TotalStores         int                    `json:"total_stores"`
	PendingStores       int                    `json:"pending_stores"`
	ActiveCoupons       int                    `json:"active_coupons"`
	TotalSettlements    int                    `json:"total_settlements"`
	TotalPending        string                 `json:"total_pending"`
	TotalExtraPaid      string                 `json:"total_extra_paid"`
	MonthlySettled      string                 `json:"monthly_settled"`
	DailySettlementData []DailySettlementPoint `json:"daily_settlement_data"`
}

// DailySettlementPoint represents one day of settlement activity
type DailySettlementPoint struct {
	Date    string `json:"date"`
	Bill    string `json:"bill"`
	Settled string `json:"settled"`
}

// GetDashboardStats returns dashboard statistics. The resources are fetched
// concurrently; any failure fails the whole overview.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var (
		users       []entity.User
		stores      []entity.Store
		coupons     []entity.Coupon
		settlements []entity.Settlement
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.users.Snapshot(ctx, nil)
		if err == nil {
			users = snap.Items
		}
		return err
	})
	g.Go(func() error {
		snap, err := s.stores.Snapshot(ctx, nil)
		if err == nil {
			stores = snap.Items
		}
		return err
	})
	g.Go(func() error {
		snap, err := s.coupons.Snapshot(ctx, nil)
		if err == nil {
			coupons = snap.Items
		}
		return err
	})
	g.Go(func() error {
		snap, err := s.settlements.Snapshot(ctx, nil)
		if err == nil {
			settlements = snap.Items
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	stats := &DashboardStats{
		TotalUsers:       len(users),
		TotalStores:      len(stores),
		TotalSettlements: len(settlements),
	}
	for _, u := range users {
		if u.IsActive {
			stats.ActiveUsers++
		}
		if u.IsVIP {
			stats.VIPUsers++
		}
	}
	for _, st := range stores {
		if st.Status == enum.StoreStatusPending {
			stats.PendingStores++
		}
	}
	for _, c := range coupons {
		if c.Status(now) == enum.CouponStatusActive {
			stats.ActiveCoupons++
		}
	}

	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var pending, extra, monthly decimal.Decimal
	for _, row := range settlements {
		pending = pending.Add(row.PendingAmount)
		extra = extra.Add(row.ExtraPaidAmount)
		if !row.SettlementDate.Before(startOfMonth) {
			monthly = monthly.Add(row.SettledAmount)
		}
	}
	stats.TotalPending = pending.StringFixed(2)
	stats.TotalExtraPaid = extra.StringFixed(2)
	stats.MonthlySettled = monthly.StringFixed(2)

	// Last 7 days
	stats.DailySettlementData = make([]DailySettlementPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		day := date.Format("2006-01-02")

		var bill, settled decimal.Decimal
		for _, row := range settlements {
			if !row.SettlementDate.IsZero() && row.SettlementDate.In(now.Location()).Format("2006-01-02") == day {
				bill = bill.Add(row.BillAmount)
				settled = settled.Add(row.SettledAmount)
			}
		}

		stats.DailySettlementData = append(stats.DailySettlementData, DailySettlementPoint{
			Date:    date.Format("Jan 02"),
			Bill:    bill.StringFixed(2),
			Settled: settled.StringFixed(2),
		})
	}

	return stats, nil
}

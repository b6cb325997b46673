package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/domain/settlement"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/export"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/sangkips/loyalty-admin/pkg/listing"
	"github.com/shopspring/decimal"
)

const settlementsPerPage = 15

// SettlementService manages store payouts
type SettlementService struct {
	*Catalog[entity.Settlement]
}

// NewSettlementService creates a new settlement service
func NewSettlementService(repo repository.LoyaltyRepository[entity.Settlement], deps CatalogDeps) *SettlementService {
	return &SettlementService{Catalog: NewCatalog(repo, CatalogOptions[entity.Settlement]{
		Name:      "settlements",
		Spec:      settlementSpec(),
		Summarize: summarizeSettlements,
	}, deps)}
}

func byDecimal(field func(entity.Settlement) decimal.Decimal) func(a, b entity.Settlement) int {
	return func(a, b entity.Settlement) int { return field(a).Cmp(field(b)) }
}

func settlementSpec() listing.Spec[entity.Settlement] {
	return listing.Spec[entity.Settlement]{
		PerPage: settlementsPerPage,
		SearchFields: func(s entity.Settlement) []string {
			return []string{s.StoreName, s.Reference, s.Notes}
		},
		Filters: map[string]listing.FilterFunc[entity.Settlement]{
			"status":   listing.Equals(func(s entity.Settlement) string { return string(s.Status) }),
			"store_id": listing.Equals(func(s entity.Settlement) string { return s.StoreID.String() }),
		},
		Sorts: map[string]func(a, b entity.Settlement) int{
			"settlement_date":       listing.ByTime(func(s entity.Settlement) time.Time { return s.SettlementDate.Time }),
			"store_name":            listing.ByString(func(s entity.Settlement) string { return s.StoreName }),
			"bill_amount":           byDecimal(func(s entity.Settlement) decimal.Decimal { return s.BillAmount }),
			"pending_amount":        byDecimal(func(s entity.Settlement) decimal.Decimal { return s.PendingAmount }),
			"net_settlement_amount": byDecimal(func(s entity.Settlement) decimal.Decimal { return s.NetSettlementAmount }),
		},
	}
}

func summarizeSettlements(rows []entity.Settlement) map[string]any {
	var bill, commission, pending, extra, net decimal.Decimal
	byStatus := map[string]int{}
	for _, s := range rows {
		bill = bill.Add(s.BillAmount)
		commission = commission.Add(s.CommissionAmount)
		pending = pending.Add(s.PendingAmount)
		extra = extra.Add(s.ExtraPaidAmount)
		net = net.Add(s.NetSettlementAmount)
		byStatus[string(s.Status)]++
	}
	return map[string]any{
		"total_settlements":  len(rows),
		"total_bill":         bill.StringFixed(2),
		"total_commission":   commission.StringFixed(2),
		"total_pending":      pending.StringFixed(2),
		"total_extra_paid":   extra.StringFixed(2),
		"total_net":          net.StringFixed(2),
		"settlements_status": byStatus,
	}
}

// Preview is the outcome of the settlement calculator
type Preview struct {
	settlement.Result
	Status enum.SettlementStatus `json:"status"`
	Label  string                `json:"status_label"`
}

// Calculate runs the calculator on the form as typed
func (s *SettlementService) Calculate(form settlement.Form) (*Preview, error) {
	in := form.Input()
	if err := settlement.Validate(in); err != nil {
		return nil, err
	}
	return preview(in), nil
}

func preview(in settlement.Input) *Preview {
	res := settlement.Calculate(in)
	status := res.Status(in.SettledAmount)
	return &Preview{Result: res, Status: status, Label: status.Label()}
}

// SettlementInput is the settlement form
type SettlementInput struct {
	settlement.Form
	StoreID        entity.ID        `json:"store_id"`
	Reference      string           `json:"reference"`
	SettlementDate entity.Timestamp `json:"settlement_date"`
	Notes          string           `json:"notes"`
}

// Validate checks the form
func (in *SettlementInput) Validate() error {
	var v apperror.Validation
	v.Check(!in.StoreID.IsZero(), "store_id", "is required")
	if err := settlement.Validate(in.Input()); err != nil {
		v.Merge(err)
	}
	return v.Err()
}

// settlementPayload is what is sent upstream: the typed amounts plus the derived ones
type settlementPayload struct {
	StoreID              entity.ID             `json:"store_id"`
	Reference            string                `json:"reference,omitempty"`
	SettlementDate       entity.Timestamp      `json:"settlement_date"`
	Notes                string                `json:"notes,omitempty"`
	BillAmount           decimal.Decimal       `json:"bill_amount"`
	CommissionPercentage decimal.Decimal       `json:"commission_percentage"`
	CommissionAmount     decimal.Decimal       `json:"commission_amount"`
	SettlementAmount     decimal.Decimal       `json:"settlement_amount"`
	TaxAmount            decimal.Decimal       `json:"tax_amount"`
	ProcessingFee        decimal.Decimal       `json:"processing_fee"`
	SettledAmount        decimal.Decimal       `json:"settled_amount"`
	PendingAmount        decimal.Decimal       `json:"pending_amount"`
	ExtraPaidAmount      decimal.Decimal       `json:"extra_paid_amount"`
	NetSettlementAmount  decimal.Decimal       `json:"net_settlement_amount"`
	Status               enum.SettlementStatus `json:"status"`
}

// payload recomputes every derived amount so nothing stale from the form is sent
func (in *SettlementInput) payload() settlementPayload {
	amounts := in.Input()
	p := preview(amounts)
	return settlementPayload{
		StoreID:              in.StoreID,
		Reference:            strings.TrimSpace(in.Reference),
		SettlementDate:       in.SettlementDate,
		Notes:                strings.TrimSpace(in.Notes),
		BillAmount:           amounts.BillAmount,
		CommissionPercentage: amounts.CommissionPercentage,
		CommissionAmount:     p.CommissionAmount,
		SettlementAmount:     p.SettlementAmount,
		TaxAmount:            amounts.TaxAmount,
		ProcessingFee:        amounts.ProcessingFee,
		SettledAmount:        amounts.SettledAmount,
		PendingAmount:        p.PendingAmount,
		ExtraPaidAmount:      p.ExtraPaidAmount,
		NetSettlementAmount:  p.NetSettlementAmount,
		Status:               p.Status,
	}
}

// CreateSettlement validates, recomputes and sends a new settlement
func (s *SettlementService) CreateSettlement(ctx context.Context, in *SettlementInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Create(ctx, in.payload())
}

// UpdateSettlement validates, recomputes and sends the edited settlement
func (s *SettlementService) UpdateSettlement(ctx context.Context, id entity.ID, in *SettlementInput) (*repository.MutationResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in.payload())
}

// Export renders every settlement matching the query, in the listing's order, as XLSX
func (s *SettlementService) Export(ctx context.Context, req ListRequest) ([]byte, error) {
	snap, err := s.Snapshot(ctx, req.Params)
	if err != nil {
		return nil, err
	}
	rows := listing.Filter(snap.Items, req.Query, s.spec)
	listing.Sort(rows, req.Query, s.spec)
	return export.SettlementsXLSX(rows)
}

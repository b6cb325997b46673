package entity

import (
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Settlement represents a payout record reconciling a store's bill against
// commission, tax and the amount actually disbursed
type Settlement struct {
	ID                   ID                    `json:"id"`
	StoreID              ID                    `json:"store_id"`
	StoreName            string                `json:"store_name"`
	Reference            string                `json:"reference"`
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
	SettlementDate       Timestamp             `json:"settlement_date"`
	Notes                string                `json:"notes"`
	CreatedAt            Timestamp             `json:"created_at"`
}

func (s Settlement) GetID() ID {
	return s.ID
}

// Package settlement reconciles a store's bill against commission, tax, fees and
// the amount already paid out.
//
//	commission = bill × commission% / 100
//	settlement = bill − commission
//	base net   = settlement − tax − processing fee
//	settled ≤ base net: pending = base net − settled, extra = 0
//	settled > base net: pending = 0, extra = settled − base net
//	net        = base net + extra
//
// Every derived amount is rounded half-up to two decimal places.
package settlement

import (
	"strings"

	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/shopspring/decimal"
)

const places = 2

var hundred = decimal.NewFromInt(100)

// bounds of an accepted form amount
const (
	maxIntegerDigits = 15
	maxScale         = 8
)

// Classification tells whether a settlement is short, over or exactly paid
type Classification string

const (
	Balanced  Classification = "balanced"
	Shortfall Classification = "shortfall"
	Overpaid  Classification = "overpaid"
)

// Input holds the amounts an operator enters on the settlement form
type Input struct {
	BillAmount           decimal.Decimal `json:"bill_amount"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	TaxAmount            decimal.Decimal `json:"tax_amount"`
	ProcessingFee        decimal.Decimal `json:"processing_fee"`
	SettledAmount        decimal.Decimal `json:"settled_amount"`
}

// Result holds the derived amounts
type Result struct {
	CommissionAmount    decimal.Decimal `json:"commission_amount"`
	SettlementAmount    decimal.Decimal `json:"settlement_amount"`
	PendingAmount       decimal.Decimal `json:"pending_amount"`
	ExtraPaidAmount     decimal.Decimal `json:"extra_paid_amount"`
	NetSettlementAmount decimal.Decimal `json:"net_settlement_amount"`
	Classification      Classification  `json:"classification"`
}

// Calculate derives the settlement amounts. It has no side effects and never clamps:
// callers reject negative input with Validate first.
func Calculate(in Input) Result {
	commission := in.BillAmount.Mul(in.CommissionPercentage).Div(hundred)
	settlement := in.BillAmount.Sub(commission)
	baseNet := settlement.Sub(in.TaxAmount).Sub(in.ProcessingFee)

	pending := decimal.Zero
	extra := decimal.Zero
	if in.SettledAmount.LessThanOrEqual(baseNet) {
		pending = baseNet.Sub(in.SettledAmount)
	} else {
		extra = in.SettledAmount.Sub(baseNet)
	}

	res := Result{
		CommissionAmount:    commission.Round(places),
		SettlementAmount:    settlement.Round(places),
		PendingAmount:       pending.Round(places),
		ExtraPaidAmount:     extra.Round(places),
		NetSettlementAmount: baseNet.Add(extra).Round(places),
	}
	res.Classification = classify(res)
	return res
}

func classify(r Result) Classification {
	switch {
	case r.PendingAmount.IsPositive():
		return Shortfall
	case r.ExtraPaidAmount.IsPositive():
		return Overpaid
	}
	return Balanced
}

// Status maps the result onto the payout status stored with the settlement
func (r Result) Status(settled decimal.Decimal) enum.SettlementStatus {
	switch r.Classification {
	case Overpaid:
		return enum.SettlementStatusOverpaid
	case Balanced:
		return enum.SettlementStatusSettled
	}
	if settled.IsPositive() {
		return enum.SettlementStatusPartial
	}
	return enum.SettlementStatusPending
}

// ParseAmount reads a form value. Missing or non-numeric values read as zero.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInput reads the five form values
func ParseInput(bill, commissionPercentage, tax, fee, settled string) Input {
	return Input{
		BillAmount:           ParseAmount(bill),
		CommissionPercentage: ParseAmount(commissionPercentage),
		TaxAmount:            ParseAmount(tax),
		ProcessingFee:        ParseAmount(fee),
		SettledAmount:        ParseAmount(settled),
	}
}

// Validate rejects input the form must not submit
func Validate(in Input) error {
	var v apperror.Validation
	fields := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"bill_amount", in.BillAmount},
		{"commission_percentage", in.CommissionPercentage},
		{"tax_amount", in.TaxAmount},
		{"processing_fee", in.ProcessingFee},
		{"settled_amount", in.SettledAmount},
	}
	inRange := true
	for _, f := range fields {
		v.Check(!f.amount.IsNegative(), f.name, "must not be negative")
		if !checkRange(&v, f.name, f.amount) {
			inRange = false
		}
	}
	// comparing an out-of-range value rescales it
	if inRange {
		v.Check(in.CommissionPercentage.LessThanOrEqual(hundred), "commission_percentage", "must not exceed 100")
	}
	return v.Err()
}

// checkRange looks only at the exponent and digit count so huge exponents
// are rejected without expanding them
func checkRange(v *apperror.Validation, field string, d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}
	switch {
	case d.Exponent() < -maxScale:
		v.Add(field, "must have at most 8 decimal places")
		return false
	case int64(d.NumDigits())+int64(d.Exponent()) > maxIntegerDigits:
		v.Add(field, "must be less than 1000000000000000")
		return false
	}
	return true
}

package settlement

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got.StringFixed(2), want)
	}
}

func TestCalculate_Shortfall(t *testing.T) {
	res := Calculate(ParseInput("1000", "10", "0", "0", "800"))

	assertAmount(t, "commission_amount", res.CommissionAmount, "100.00")
	assertAmount(t, "settlement_amount", res.SettlementAmount, "900.00")
	assertAmount(t, "pending_amount", res.PendingAmount, "100.00")
	assertAmount(t, "extra_paid_amount", res.ExtraPaidAmount, "0.00")
	assertAmount(t, "net_settlement_amount", res.NetSettlementAmount, "900.00")
	if res.Classification != Shortfall {
		t.Errorf("Classification = %s, want shortfall", res.Classification)
	}
}

func TestCalculate_Overpaid(t *testing.T) {
	res := Calculate(ParseInput("1000", "10", "0", "0", "950"))

	assertAmount(t, "pending_amount", res.PendingAmount, "0.00")
	assertAmount(t, "extra_paid_amount", res.ExtraPaidAmount, "50.00")
	assertAmount(t, "net_settlement_amount", res.NetSettlementAmount, "950.00")
	if res.Classification != Overpaid {
		t.Errorf("Classification = %s, want overpaid", res.Classification)
	}
}

func TestCalculate_EdgeCases(t *testing.T) {
	tests := []struct {
		name                                 string
		in                                   Input
		commission, settlement, pending, net string
		extra                                string
	}{
		{"zero commission", ParseInput("500", "0", "0", "0", "0"), "0", "500", "500", "500", "0"},
		{"full commission", ParseInput("500", "100", "0", "0", "0"), "500", "0", "0", "0", "0"},
		{"everything zero", ParseInput("0", "0", "0", "0", "0"), "0", "0", "0", "0", "0"},
		{"settled equals base net", ParseInput("1000", "10", "20", "5", "875"), "100", "900", "0", "875", "0"},
		{"tax and fee", ParseInput("1234.56", "12.5", "15.25", "3.10", "1000"), "154.32", "1080.24", "61.89", "1061.89", "0"},
		{"fees exceed settlement", ParseInput("100", "50", "40", "20", "0"), "50", "50", "0", "0", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Calculate(tt.in)
			assertAmount(t, "commission_amount", res.CommissionAmount, tt.commission)
			assertAmount(t, "settlement_amount", res.SettlementAmount, tt.settlement)
			assertAmount(t, "pending_amount", res.PendingAmount, tt.pending)
			assertAmount(t, "extra_paid_amount", res.ExtraPaidAmount, tt.extra)
			assertAmount(t, "net_settlement_amount", res.NetSettlementAmount, tt.net)
		})
	}
}

func TestCalculate_SettledEqualsBaseNetIsBalanced(t *testing.T) {
	res := Calculate(ParseInput("1000", "10", "20", "5", "875"))
	if res.Classification != Balanced {
		t.Errorf("Classification = %s, want balanced", res.Classification)
	}
	if got := res.Status(d("875")); got != enum.SettlementStatusSettled {
		t.Errorf("Status = %s, want settled", got)
	}
}

func TestCalculate_Invariants(t *testing.T) {
	bills := []string{"0", "0.01", "99.99", "1000", "25000.50"}
	percents := []string{"0", "2.5", "10", "33.33", "100"}
	taxes := []string{"0", "1.75", "120"}
	fees := []string{"0", "0.30", "15"}
	settleds := []string{"0", "10", "899.99", "900", "1500.75", "30000"}

	tolerance := d("0.01")
	for _, b := range bills {
		for _, p := range percents {
			for _, tx := range taxes {
				for _, f := range fees {
					for _, s := range settleds {
						name := fmt.Sprintf("%s/%s/%s/%s/%s", b, p, tx, f, s)
						in := ParseInput(b, p, tx, f, s)
						res := Calculate(in)

						if !res.PendingAmount.IsZero() && !res.ExtraPaidAmount.IsZero() {
							t.Fatalf("%s: pending %s and extra %s both non-zero", name, res.PendingAmount, res.ExtraPaidAmount)
						}
						if res.PendingAmount.IsNegative() || res.ExtraPaidAmount.IsNegative() {
							t.Fatalf("%s: negative pending or extra", name)
						}

						want := res.SettlementAmount.Sub(in.TaxAmount).Sub(in.ProcessingFee).Add(res.ExtraPaidAmount)
						if res.NetSettlementAmount.Sub(want).Abs().GreaterThan(tolerance) {
							t.Fatalf("%s: net %s, want %s", name, res.NetSettlementAmount, want)
						}

						baseNet := res.NetSettlementAmount.Sub(res.ExtraPaidAmount)
						lhs := baseNet.Sub(in.SettledAmount)
						rhs := res.PendingAmount.Sub(res.ExtraPaidAmount)
						if lhs.Sub(rhs).Abs().GreaterThan(tolerance) {
							t.Fatalf("%s: base net-settled %s != pending-extra %s", name, lhs, rhs)
						}

						// net - settled is what is still owed: pending, or nothing once overpaid
						owed := res.NetSettlementAmount.Sub(in.SettledAmount)
						if owed.Sub(res.PendingAmount).Abs().GreaterThan(tolerance) {
							t.Fatalf("%s: net-settled %s, want pending %s", name, owed, res.PendingAmount)
						}
					}
				}
			}
		}
	}
}

func TestCalculate_HalfUpRounding(t *testing.T) {
	// 10.05 * 50% = 5.025 -> 5.03
	res := Calculate(ParseInput("10.05", "50", "0", "0", "0"))
	assertAmount(t, "commission_amount", res.CommissionAmount, "5.03")
	assertAmount(t, "settlement_amount", res.SettlementAmount, "5.03")
}

func TestParseAmount_NonNumericIsZero(t *testing.T) {
	for _, raw := range []string{"", "  ", "abc", "NaN", "1,000"} {
		if got := ParseAmount(raw); !got.IsZero() {
			t.Errorf("ParseAmount(%q) = %s, want 0", raw, got)
		}
	}
	if got := ParseAmount(" 12.50 "); !got.Equal(d("12.5")) {
		t.Errorf("ParseAmount = %s, want 12.5", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(ParseInput("1000", "100", "0", "0", "0")); err != nil {
		t.Errorf("Validate valid input: %v", err)
	}

	err := Validate(ParseInput("-1", "101", "-2", "0", "-3"))
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v, want *apperror.AppError", err)
	}
	fields := map[string]bool{}
	for _, fe := range appErr.Errors {
		fields[fe.Field] = true
	}
	for _, f := range []string{"bill_amount", "commission_percentage", "tax_amount", "settled_amount"} {
		if !fields[f] {
			t.Errorf("missing field error for %s", f)
		}
	}
	if fields["processing_fee"] {
		t.Error("unexpected field error for processing_fee")
	}
}

func TestValidate_AmountRange(t *testing.T) {
	tests := []struct {
		name  string
		bill  string
		field string
	}{
		{"huge exponent", "1e5000000", "bill_amount"},
		{"sixteen integer digits", "1234567890123456", "bill_amount"},
		{"tiny exponent", "1e-5000000", "bill_amount"},
		{"nine decimal places", "10.123456789", "bill_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			err := Validate(ParseInput(tt.bill, "1e5000000", "0", "0", "0"))
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Errorf("Validate took %s", elapsed)
			}
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("err = %v, want a validation error", err)
			}
			got := map[string]bool{}
			for _, fe := range appErr.Errors {
				got[fe.Field] = true
			}
			if !got[tt.field] || !got["commission_percentage"] {
				t.Errorf("field errors = %+v, want %s and commission_percentage", appErr.Errors, tt.field)
			}
		})
	}

	if err := Validate(ParseInput("999999999999999.99", "12.5", "0.00000001", "0", "1000")); err != nil {
		t.Errorf("Validate largest amounts: %v", err)
	}
}

func TestResult_Status(t *testing.T) {
	tests := []struct {
		settled string
		want    enum.SettlementStatus
	}{
		{"0", enum.SettlementStatusPending},
		{"500", enum.SettlementStatusPartial},
		{"900", enum.SettlementStatusSettled},
		{"950", enum.SettlementStatusOverpaid},
	}
	for _, tt := range tests {
		res := Calculate(ParseInput("1000", "10", "0", "0", tt.settled))
		if got := res.Status(d(tt.settled)); got != tt.want {
			t.Errorf("settled %s: Status = %s, want %s", tt.settled, got, tt.want)
		}
	}
}

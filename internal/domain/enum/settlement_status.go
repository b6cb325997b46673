package enum

// SettlementStatus represents how far a settlement has been paid out
type SettlementStatus string

const (
	SettlementStatusPending  SettlementStatus = "pending"
	SettlementStatusPartial  SettlementStatus = "partial"
	SettlementStatusSettled  SettlementStatus = "settled"
	SettlementStatusOverpaid SettlementStatus = "overpaid"
)

func (s SettlementStatus) String() string {
	return string(s)
}

// Label is the human readable status shown in tables and exports
func (s SettlementStatus) Label() string {
	switch s {
	case SettlementStatusPending:
		return "Pending"
	case SettlementStatusPartial:
		return "Partially settled"
	case SettlementStatusSettled:
		return "Settled"
	case SettlementStatusOverpaid:
		return "Overpaid"
	}
	return string(s)
}

package settlement

import (
	"bytes"
	"encoding/json"
)

// Amount is a form value as the operator typed it. It decodes from a JSON number
// or string and keeps the text, so a rejected form can be echoed back unchanged.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(data)
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if isNumber(string(a)) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

func isNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// Form holds the five amounts of the settlement form
type Form struct {
	BillAmount           Amount `json:"bill_amount" form:"bill_amount"`
	CommissionPercentage Amount `json:"commission_percentage" form:"commission_percentage"`
	TaxAmount            Amount `json:"tax_amount" form:"tax_amount"`
	ProcessingFee        Amount `json:"processing_fee" form:"processing_fee"`
	SettledAmount        Amount `json:"settled_amount" form:"settled_amount"`
}

// Input parses the form. Missing or non-numeric values read as zero.
func (f Form) Input() Input {
	return ParseInput(string(f.BillAmount), string(f.CommissionPercentage), string(f.TaxAmount), string(f.ProcessingFee), string(f.SettledAmount))
}

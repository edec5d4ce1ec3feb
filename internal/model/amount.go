package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value (unit price, stock value, budget).
//
// Decoding is tolerant: JSON numbers, plain numeric strings and BRL formatted
// strings ("R$ 500.000,00") are accepted; anything else decodes to zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a float literal.
func NewAmount(v float64) Amount {
	return Amount{decimal.NewFromFloat(v)}
}

// AmountFrom wraps a decimal.
func AmountFrom(d decimal.Decimal) Amount {
	return Amount{d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		raw = normalizeMoney(s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		d = decimal.Zero
	}
	a.Decimal = d
	return nil
}

// normalizeMoney strips currency symbols and converts the pt-BR separators
// ("1.234,56") into a plain decimal literal ("1234.56").
func normalizeMoney(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

package model

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value as sent by the backend. Only JSON numbers decode
// into a valid Amount; strings, null, booleans and objects leave it invalid.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount returns a valid Amount holding f.
func NewAmount(f float64) Amount {
	return Amount{Value: decimal.NewFromFloat(f), Valid: true}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil // non-numeric payloads are displayed as zero, not rejected
	}
	a.Value = d
	a.Valid = true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}

// Float64 returns the amount as a float, 0 when invalid.
func (a Amount) Float64() float64 {
	if !a.Valid {
		return 0
	}
	return a.Value.InexactFloat64()
}

package render

import (
	"encoding/json"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"LegacyGuardians/internal/model"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a value as dollars with two decimals and en-US
// grouping. Anything that is not a finite number renders as "$0.00".
func FormatCurrency(v any) string {
	f, ok := number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return "$0.00"
	}
	return "$" + moneyPrinter.Sprintf("%.2f", f)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case model.Amount:
		return n.Float64(), n.Valid
	case *model.Amount:
		if n == nil {
			return 0, false
		}
		return n.Float64(), n.Valid
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

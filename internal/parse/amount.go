package parse

import (
	"math"
	"strconv"
	"strings"
)

// parseAmount coerces a raw cell value into a transfer amount. Non-numeric,
// non-finite, zero, and negative values are all soft errors — a transfer of
// zero or negative value cannot participate in any of the patterns this
// pipeline looks for.
func parseAmount(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	if amount <= 0 {
		return 0, false
	}
	return amount, true
}

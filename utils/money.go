package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToCents converts a display price to integer cents.
// NaN, infinities and negative values are normalized to 0.
func ToCents(price float64) int64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0
	}
	return int64(math.Round(price * 100))
}

// FromCents converts integer cents back to a display price
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// NormalizePrice coerces an upstream price field into a non-negative number.
// Accepts numbers, numeric strings (with optional "$" and thousands commas) and json.Number.
// Returns ok=false when the value was missing or malformed; the price is then 0.
func NormalizePrice(raw any) (float64, bool) {
	var price float64
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		price = v
	case float32:
		price = float64(v)
	case int:
		price = float64(v)
	case int64:
		price = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		price = f
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		price = f
	default:
		return 0, false
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, false
	}
	return price, true
}

// FormatUSD formats an amount in cents as a string like "$1,234.56".
// Uses comma as thousands separator.
func FormatUSD(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	// Pre-allocate: digits + separators + $ + decimals
	b.Grow(len(whole) + len(whole)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}

	b.WriteByte('.')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))

	return b.String()
}

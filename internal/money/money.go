package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Prefix is the currency marker the storefront shows before every price.
const Prefix = "S/"

var ErrInvalidAmount = errors.New("money: invalid amount")

// Round2 rounds a sum to whole cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Format renders an amount the way product cards and the cart table show it:
// "S/ 1250.50".
func Format(v float64) string {
	return fmt.Sprintf("%s %.2f", Prefix, Round2(v))
}

// Parse reads a localized price text ("S/ 1,250.50"). The currency prefix
// and thousands separators are stripped first, so plain numbers are accepted
// too. strconv admits "NaN" and "Inf" as valid floats, those are rejected
// here explicitly.
func Parse(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, Prefix)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

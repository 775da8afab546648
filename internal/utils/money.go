package utils

import (
	"fmt"
	"math"
)

// ToMinorUnits converts a decimal amount to the gateway's integer minor unit.
// Rounding to nearest avoids float representation drift (540.00 -> 54000).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts a gateway integer amount back to a decimal.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

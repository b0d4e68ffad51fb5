package donations

import "github.com/shopspring/decimal"

var minorUnitsPerMajor = decimal.NewFromInt(100)

// MajorToMinor converts rupees to paise, rounding half away from zero.
// Truncation here loses a paisa on amounts like 10.555; rounding is required.
func MajorToMinor(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitsPerMajor).Round(0).IntPart()
}

// MinorToMajor converts paise back to rupees.
func MinorToMajor(paise int64) decimal.Decimal {
	return decimal.NewFromInt(paise).DivRound(minorUnitsPerMajor, 2)
}

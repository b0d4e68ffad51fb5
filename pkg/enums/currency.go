package enums

import "fmt"

// Currency is the ISO currency code accepted for donations.
type Currency string

const (
	CurrencyINR Currency = "INR"
)

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the value is a supported currency.
func (c Currency) IsValid() bool {
	return c == CurrencyINR
}

// ParseCurrency converts raw input into a Currency.
func ParseCurrency(value string) (Currency, error) {
	if Currency(value) == CurrencyINR {
		return CurrencyINR, nil
	}
	return "", fmt.Errorf("unsupported currency %q", value)
}

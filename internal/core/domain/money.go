package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits persisted for every amount.
const MoneyScale = 2

// MinAmount returns the smaller of a and b.
func MinAmount(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxAmount returns the larger of a and b.
func MaxAmount(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RoundMoney rounds d to MoneyScale using banker's rounding.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyScale)
}

// FormatAmount renders d with exactly MoneyScale fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}

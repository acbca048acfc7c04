package sales

import "github.com/shopspring/decimal"

// Commission returns amount*rate rounded half away from zero to cents.
func Commission(amount float64, rate decimal.Decimal) float64 {
	return decimal.NewFromFloat(amount).Mul(rate).Round(2).InexactFloat64()
}

package domain

import "github.com/shopspring/decimal"

// LineTotal returns price × quantity rounded to cents.
func LineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// MoneyLine is a unit price and the quantity bought at it.
type MoneyLine struct {
	Price    float64
	Quantity int
}

// SumLines returns Σ price × quantity computed exactly, rounded once to cents.
func SumLines(lines ...MoneyLine) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum.Round(2).InexactFloat64()
}

// SumMoney adds amounts exactly and rounds the result to cents.
func SumMoney(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.Round(2).InexactFloat64()
}

// ApplyRate returns amount × rate rounded to cents.
func ApplyRate(amount, rate float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		InexactFloat64()
}

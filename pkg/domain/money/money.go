package money

import (
	"github.com/shopspring/decimal"
)

// Amounts travel as float64; arithmetic goes through decimal and is rounded
// to cents so repeated postings do not drift.
const places = 2

// LoanMarkup is the factor applied to a loan principal to get the amount owed.
var LoanMarkup = decimal.RequireFromString("1.20")

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// Cents rounds v to a whole number of cents, half away from zero.
// Postings round their amount once with Cents so both legs of a movement and
// its ledger entries carry the same value.
func Cents(v float64) float64 {
	return d(v).Round(places).InexactFloat64()
}

// Add returns a+b rounded to cents.
func Add(a, b float64) float64 {
	return d(a).Add(d(b)).Round(places).InexactFloat64()
}

// Sub returns a-b rounded to cents.
func Sub(a, b float64) float64 {
	return d(a).Sub(d(b)).Round(places).InexactFloat64()
}

// Covers reports whether balance is enough to pay amount.
func Covers(balance, amount float64) bool {
	return d(balance).GreaterThanOrEqual(d(amount))
}

// WithMarkup returns amount*factor rounded to cents.
func WithMarkup(amount float64, factor decimal.Decimal) float64 {
	return d(amount).Mul(factor).Round(places).InexactFloat64()
}

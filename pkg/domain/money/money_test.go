package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	assert.Equal(t, 800.0, Sub(1000, 200))
	assert.Equal(t, 700.0, Add(500, 200))
	assert.Equal(t, 0.3, Add(0.1, 0.2))
	assert.Equal(t, 0.0, Sub(0.3, 0.3))
}

func TestCovers(t *testing.T) {
	assert.True(t, Covers(100, 100))
	assert.True(t, Covers(100.01, 100))
	assert.False(t, Covers(99.99, 100))
}

func TestWithMarkup(t *testing.T) {
	assert.Equal(t, 12000.0, WithMarkup(10000, LoanMarkup))
	assert.Equal(t, 6000.01, WithMarkup(5000.01, LoanMarkup))
}

func TestCents(t *testing.T) {
	assert.Equal(t, 0.01, Cents(0.005))
	assert.Equal(t, 0.0, Cents(0.004))
	assert.Equal(t, 0.02, Cents(0.015))
	assert.Equal(t, 999.7, Cents(999.7))
	assert.Equal(t, 5000.01, Cents(5000.0149))
}

func TestCents_LegsBalance(t *testing.T) {
	for _, amount := range []float64{0.005, 0.004, 0.015, 12.345, 0.1} {
		posted := Cents(amount)
		from, to := Sub(1000, posted), Add(500, posted)
		assert.Equal(t, 1500.0, Add(from, to), "amount %v", amount)
		assert.Equal(t, posted, Sub(1000, from), "amount %v", amount)
		assert.Equal(t, posted, Sub(to, 500), "amount %v", amount)
	}
}

package loan

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/money"
)

// MinAmount is the smallest principal the bank lends.
const MinAmount = 5000.0

// Product is a loan catalog entry.
type Product struct {
	ID        int64   `validate:"gte=0"`
	Name      string  `validate:"required"`
	MaxAmount float64 `validate:"gt=0"`
	Payments  []int   `validate:"required,min=1,dive,gt=0"`
}

// AllowsTerm reports whether payments is one of the product's terms.
func (p *Product) AllowsTerm(payments int) bool {
	return slices.Contains(p.Payments, payments)
}

// ClientLoan records a granted loan. Amount is what the client owes, not the principal.
type ClientLoan struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	ProductID int64
	Amount    float64
	Payments  int
	CreatedAt time.Time
}

// Grant builds the ClientLoan for a principal, applying the markup.
func Grant(clientID uuid.UUID, product *Product, principal float64, payments int, now time.Time) *ClientLoan {
	return &ClientLoan{
		ID:        uuid.New(),
		ClientID:  clientID,
		ProductID: product.ID,
		Amount:    money.WithMarkup(principal, money.LoanMarkup),
		Payments:  payments,
		CreatedAt: now,
	}
}

// Application is a loan request as submitted. Pointer fields may be absent.
type Application struct {
	ProductID     *int64
	Name          string
	Amount        *float64
	Payments      *int
	AccountNumber string
}

// DefaultCatalog is the product list seeded on an empty store.
func DefaultCatalog() []Product {
	return []Product{
		{Name: "Mortgage", MaxAmount: 500000, Payments: []int{12, 24, 36, 48, 60}},
		{Name: "Personal", MaxAmount: 100000, Payments: []int{6, 12, 24}},
		{Name: "Automotive", MaxAmount: 300000, Payments: []int{6, 12, 24, 36}},
	}
}

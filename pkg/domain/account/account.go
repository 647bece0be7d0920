package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/money"
)

const (
	// NumberPrefix is the branch prefix every account number starts with.
	NumberPrefix = "014/53"
	// MaxPerClient is the number of accounts a single client may hold.
	MaxPerClient = 3
	// MaxInSystem is the number of accounts the bank may hold overall.
	MaxInSystem = 9999
)

var (
	// ErrInsufficientFunds is returned when a debit would make the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAmountMustBePositive is returned when a posting amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")
)

// Account is a client's monetary balance holder.
//
// Invariants:
//   - Number is unique and never changes.
//   - Balance never goes below zero through Debit.
type Account struct {
	ID        uuid.UUID
	Number    string
	Balance   float64
	ClientID  uuid.UUID
	CreatedAt time.Time
}

// NextNumber returns the number for a new account given how many exist system-wide.
func NextNumber(existing int64) string {
	return fmt.Sprintf("%s%02d", NumberPrefix, existing+1)
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id        uuid.UUID
	number    string
	balance   float64
	clientID  uuid.UUID
	createdAt time.Time
}

// New creates a new Builder with a fresh ID and the current time.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the account number. This is a mandatory field.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithClientID sets the owner. This is a mandatory field.
func (b *Builder) WithClientID(clientID uuid.UUID) *Builder {
	b.clientID = clientID
	return b
}

// WithBalance sets the balance. Only for hydration and test setup.
func (b *Builder) WithBalance(balance float64) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the mandatory fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.number == "" {
		return nil, errors.New("account number is required")
	}
	if b.clientID == uuid.Nil {
		return nil, errors.New("account owner is required")
	}
	if b.balance < 0 {
		return nil, ErrInsufficientFunds
	}
	return &Account{
		ID:        b.id,
		Number:    b.number,
		Balance:   b.balance,
		ClientID:  b.clientID,
		CreatedAt: b.createdAt,
	}, nil
}

// OwnedBy reports whether the account belongs to the given client.
func (a *Account) OwnedBy(clientID uuid.UUID) bool {
	return a.ClientID == clientID
}

// Debit withdraws amount, rounded to cents, and returns the ledger entry
// describing it. The entry carries the rounded amount.
func (a *Account) Debit(
	kind TransactionType,
	amount float64,
	description string,
	at time.Time,
) (*Transaction, error) {
	amount = money.Cents(amount)
	if amount <= 0 {
		return nil, ErrAmountMustBePositive
	}
	if !money.Covers(a.Balance, amount) {
		return nil, ErrInsufficientFunds
	}
	a.Balance = money.Sub(a.Balance, amount)
	return newTransaction(a, kind, DirectionDebit, amount, description, at), nil
}

// Credit deposits amount, rounded to cents, and returns the ledger entry
// describing it. The entry carries the rounded amount.
func (a *Account) Credit(
	kind TransactionType,
	amount float64,
	description string,
	at time.Time,
) (*Transaction, error) {
	amount = money.Cents(amount)
	if amount <= 0 {
		return nil, ErrAmountMustBePositive
	}
	a.Balance = money.Add(a.Balance, amount)
	return newTransaction(a, kind, DirectionCredit, amount, description, at), nil
}

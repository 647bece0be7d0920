package account

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType tells which operation produced a ledger entry.
type TransactionType string

const (
	TypeTransfer         TransactionType = "TRANSFER"
	TypeLoanDisbursement TransactionType = "LOAN_DISBURSEMENT"
)

// Direction is the sign of a ledger entry.
type Direction string

const (
	DirectionDebit  Direction = "DEBIT"
	DirectionCredit Direction = "CREDIT"
)

// Transaction is an immutable ledger entry against one account.
// Amount is always positive; Direction carries the sign.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Type        TransactionType
	Direction   Direction
	Amount      float64
	Balance     float64 // Account balance snapshot after the entry
	Description string
	CreatedAt   time.Time
}

func newTransaction(
	a *Account,
	kind TransactionType,
	dir Direction,
	amount float64,
	description string,
	at time.Time,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		AccountID:   a.ID,
		Type:        kind,
		Direction:   dir,
		Amount:      amount,
		Balance:     a.Balance,
		Description: description,
		CreatedAt:   at,
	}
}

// NewTransactionFromData creates a Transaction from raw data (used for DB hydration or test fixtures).
func NewTransactionFromData(
	id, accountID uuid.UUID,
	kind TransactionType,
	dir Direction,
	amount, balance float64,
	description string,
	created time.Time,
) *Transaction {
	return &Transaction{
		ID:          id,
		AccountID:   accountID,
		Type:        kind,
		Direction:   dir,
		Amount:      amount,
		Balance:     balance,
		Description: description,
		CreatedAt:   created,
	}
}

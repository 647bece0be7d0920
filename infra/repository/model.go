package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/card"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/domain/loan"
)

// Client represents a client record in the database.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"not null;size:100"`
	LastName  string    `gorm:"not null;size:100"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time
}

// Account represents an account record in the database.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number    string    `gorm:"uniqueIndex;not null;size:16"`
	Balance   float64   `gorm:"type:numeric(20,2);not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// Card represents an issued card in the database.
type Card struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Holder   string    `gorm:"size:201"`
	Number   string    `gorm:"not null;size:19"`
	CVV      int       `gorm:"column:cvv;not null"`
	Type     string    `gorm:"type:varchar(6);not null"`
	Color    string    `gorm:"type:varchar(8);not null"`
	FromDate time.Time `gorm:"index"`
	ThruDate time.Time
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
}

// LoanProduct represents a loan catalog entry in the database.
type LoanProduct struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"uniqueIndex;not null;size:50"`
	MaxAmount float64 `gorm:"type:numeric(20,2);not null"`
	Payments  []int   `gorm:"serializer:json;not null"`
}

// ClientLoan represents a granted loan in the database.
type ClientLoan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID int64     `gorm:"index;not null"`
	Amount    float64   `gorm:"type:numeric(20,2);not null"`
	Payments  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// Transaction represents a persisted ledger entry.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Direction   string    `gorm:"type:varchar(6);not null"`
	Amount      float64   `gorm:"type:numeric(20,2);not null"`
	Balance     float64   `gorm:"type:numeric(20,2);not null"`
	Description string
	CreatedAt   time.Time `gorm:"index"`
}

// Models lists every table, in migration order.
func Models() []any {
	return []any{&Client{}, &Account{}, &Card{}, &LoanProduct{}, &ClientLoan{}, &Transaction{}}
}

func clientToModel(c *client.Client) *Client {
	return &Client{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Password:  c.Password,
		CreatedAt: c.CreatedAt,
	}
}

func clientFromModel(m *Client) *client.Client {
	return client.NewFromData(m.ID, m.FirstName, m.LastName, m.Email, m.Password, m.CreatedAt)
}

func accountToModel(a *account.Account) *Account {
	return &Account{
		ID:        a.ID,
		Number:    a.Number,
		Balance:   a.Balance,
		ClientID:  a.ClientID,
		CreatedAt: a.CreatedAt,
	}
}

func accountFromModel(m *Account) *account.Account {
	return &account.Account{
		ID:        m.ID,
		Number:    m.Number,
		Balance:   m.Balance,
		ClientID:  m.ClientID,
		CreatedAt: m.CreatedAt,
	}
}

func cardToModel(c *card.Card) *Card {
	return &Card{
		ID:       c.ID,
		Holder:   c.Holder,
		Number:   c.Number,
		CVV:      c.CVV,
		Type:     string(c.Type),
		Color:    string(c.Color),
		FromDate: c.FromDate,
		ThruDate: c.ThruDate,
		ClientID: c.ClientID,
	}
}

func cardFromModel(m *Card) *card.Card {
	return &card.Card{
		ID:       m.ID,
		Holder:   m.Holder,
		Number:   m.Number,
		CVV:      m.CVV,
		Type:     card.Type(m.Type),
		Color:    card.Color(m.Color),
		FromDate: m.FromDate,
		ThruDate: m.ThruDate,
		ClientID: m.ClientID,
	}
}

func productFromModel(m *LoanProduct) *loan.Product {
	return &loan.Product{ID: m.ID, Name: m.Name, MaxAmount: m.MaxAmount, Payments: m.Payments}
}

func clientLoanFromModel(m *ClientLoan) *loan.ClientLoan {
	return &loan.ClientLoan{
		ID:        m.ID,
		ClientID:  m.ClientID,
		ProductID: m.ProductID,
		Amount:    m.Amount,
		Payments:  m.Payments,
		CreatedAt: m.CreatedAt,
	}
}

func transactionToModel(tx *account.Transaction) *Transaction {
	return &Transaction{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Type:        string(tx.Type),
		Direction:   string(tx.Direction),
		Amount:      tx.Amount,
		Balance:     tx.Balance,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

func transactionFromModel(m *Transaction) *account.Transaction {
	return account.NewTransactionFromData(
		m.ID,
		m.AccountID,
		account.TransactionType(m.Type),
		account.Direction(m.Direction),
		m.Amount,
		m.Balance,
		m.Description,
		m.CreatedAt,
	)
}

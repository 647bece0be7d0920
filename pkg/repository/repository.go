package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/card"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/domain/loan"
)

// Lookups return domain.ErrNotFound when nothing matches.
// List methods return entities in creation order.

// ClientRepository defines the interface for client data access operations.
type ClientRepository interface {
	// Create persists c and returns the stored client.
	Create(ctx context.Context, c *client.Client) (*client.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*client.Client, error)
	GetByEmail(ctx context.Context, email string) (*client.Client, error)
}

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) error
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	// GetByNumberForUpdate reads the account and holds it until the unit of work ends.
	GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*account.Account, error)
	Count(ctx context.Context) (int64, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance float64) error
}

// CardRepository defines the interface for card data access operations.
type CardRepository interface {
	Create(ctx context.Context, c *card.Card) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*card.Card, error)
}

// LoanRepository defines the interface for loan catalog and granted loan access.
type LoanRepository interface {
	GetProduct(ctx context.Context, id int64) (*loan.Product, error)
	ListProducts(ctx context.Context) ([]*loan.Product, error)
	CreateProduct(ctx context.Context, p *loan.Product) error
	CreateClientLoan(ctx context.Context, l *loan.ClientLoan) error
	ListClientLoans(ctx context.Context, clientID uuid.UUID) ([]*loan.ClientLoan, error)
}

// TransactionRepository defines the interface for ledger entry access. Entries are append-only.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error)
}

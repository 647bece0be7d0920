package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Every repository obtained from the UnitOfWork handed to fn shares the same
// session, so the writes made inside fn either all persist or none do.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error (or panics), the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	ClientRepository() (ClientRepository, error)
	AccountRepository() (AccountRepository, error)
	CardRepository() (CardRepository, error)
	LoanRepository() (LoanRepository, error)
	TransactionRepository() (TransactionRepository, error)
}

// Package fixtures builds seeded in-memory banks for tests.
package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	infralock "github.com/homebanking/corebank/infra/lock"
	"github.com/homebanking/corebank/infra/repository/memory"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/card"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/domain/loan"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/stretchr/testify/require"
)

// Bank is an in-memory store with the collaborators services need.
type Bank struct {
	Store    *memory.Store
	UoW      *memory.UoW
	Resolver *identity.StoreResolver
	Locker   *infralock.KeyedMutex
}

// NewBank creates an empty Bank.
func NewBank() *Bank {
	store := memory.New()
	uow := memory.NewUoW(store)
	return &Bank{
		Store:    store,
		UoW:      uow,
		Resolver: identity.NewStoreResolver(uow),
		Locker:   infralock.NewKeyedMutex(),
	}
}

func (b *Bank) do(t testing.TB, fn func(uow repository.UnitOfWork) error) {
	t.Helper()
	require.NoError(t, b.UoW.Do(context.Background(), fn))
}

// Client stores a client and returns the identity that resolves to it.
func (b *Bank) Client(t testing.TB, firstName, lastName, email string) (*client.Client, identity.Identity) {
	t.Helper()
	c := client.New(firstName, lastName, email, "hash")
	b.do(t, func(uow repository.UnitOfWork) error {
		repo, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		_, err = repo.Create(context.Background(), c)
		return err
	})
	return c, identity.Identity{Email: email}
}

// Account stores an account for owner.
func (b *Bank) Account(t testing.TB, owner uuid.UUID, number string, balance float64) *account.Account {
	t.Helper()
	a, err := account.New().WithClientID(owner).WithNumber(number).WithBalance(balance).Build()
	require.NoError(t, err)
	b.do(t, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return repo.Create(context.Background(), a)
	})
	return a
}

// Accounts stores n accounts owned by throwaway clients, numbered after the existing ones.
func (b *Bank) Accounts(t testing.TB, n int) {
	t.Helper()
	b.do(t, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ctx := context.Background()
		for i := 0; i < n; i++ {
			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			a, err := account.New().
				WithClientID(uuid.New()).
				WithNumber(account.NextNumber(count)).
				Build()
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
}

// Card stores a card of the given type for owner.
func (b *Bank) Card(t testing.TB, owner uuid.UUID, kind card.Type, color card.Color) *card.Card {
	t.Helper()
	c, err := card.Issue(owner, "Test Holder", kind, color, time.Now().UTC())
	require.NoError(t, err)
	b.do(t, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		return repo.Create(context.Background(), c)
	})
	return c
}

// Product stores a loan product.
func (b *Bank) Product(t testing.TB, p loan.Product) *loan.Product {
	t.Helper()
	b.do(t, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		return repo.CreateProduct(context.Background(), &p)
	})
	return &p
}

// Balance returns the committed balance of an account.
func (b *Bank) Balance(t testing.TB, number string) float64 {
	t.Helper()
	var balance float64
	b.do(t, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := repo.GetByNumber(context.Background(), number)
		if err != nil {
			return err
		}
		balance = a.Balance
		return nil
	})
	return balance
}

// Ledger returns the committed entries of an account.
func (b *Bank) Ledger(t testing.TB, number string) []*account.Transaction {
	t.Helper()
	var entries []*account.Transaction
	b.do(t, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(context.Background(), number)
		if err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entries, err = txs.ListByAccount(context.Background(), a.ID)
		return err
	})
	return entries
}

// ClientLoans returns the committed loans of a client.
func (b *Bank) ClientLoans(t testing.TB, owner uuid.UUID) []*loan.ClientLoan {
	t.Helper()
	var loans []*loan.ClientLoan
	b.do(t, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		loans, err = repo.ListClientLoans(context.Background(), owner)
		return err
	})
	return loans
}

// Package memory is an in-process implementation of the repository contracts.
//
// A Store runs one unit of work at a time. Each unit works on a staged copy of
// the data which replaces the committed data only when the unit succeeds.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/card"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/domain/loan"
	"github.com/homebanking/corebank/pkg/repository"
)

type state struct {
	clients      []client.Client
	accounts     []account.Account
	cards        []card.Card
	products     []loan.Product
	loans        []loan.ClientLoan
	transactions []account.Transaction
}

func (s *state) clone() *state {
	products := make([]loan.Product, len(s.products))
	for i, p := range s.products {
		p.Payments = slices.Clone(p.Payments)
		products[i] = p
	}
	return &state{
		clients:      slices.Clone(s.clients),
		accounts:     slices.Clone(s.accounts),
		cards:        slices.Clone(s.cards),
		products:     products,
		loans:        slices.Clone(s.loans),
		transactions: slices.Clone(s.transactions),
	}
}

// Store holds committed data and hands out units of work over it.
type Store struct {
	mu        sync.Mutex
	committed *state
	writes    atomic.Int64

	faultMu sync.Mutex
	faults  map[string]error
}

// New creates an empty Store.
func New() *Store {
	return &Store{committed: &state{}, faults: map[string]error{}}
}

// Writes returns how many write calls repositories have received, committed or not.
func (s *Store) Writes() int64 {
	return s.writes.Load()
}

// FailOn makes the named write operation (for example "transaction.create")
// return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) write(op string) error {
	s.writes.Add(1)
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.faults[op]
}

// UoW is a repository.UnitOfWork over a Store.
type UoW struct {
	store *Store
	st    *state
}

// NewUoW creates a UnitOfWork backed by store.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn against a staged copy of the store and commits it if fn succeeds.
// A Do issued from inside fn joins the running unit.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) (err error) {
	if u.st != nil {
		return fn(u)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	// A panic in fn unwinds past the swap below, so the staged copy is dropped.
	txn := &UoW{store: u.store, st: u.store.committed.clone()}
	if err = fn(txn); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	u.store.committed = txn.st
	return nil
}

func (u *UoW) session() (*state, error) {
	if u.st == nil {
		return nil, fmt.Errorf("repository used outside of a unit of work")
	}
	return u.st, nil
}

func (u *UoW) ClientRepository() (repository.ClientRepository, error) {
	st, err := u.session()
	if err != nil {
		return nil, err
	}
	return &clientRepository{store: u.store, st: st}, nil
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	st, err := u.session()
	if err != nil {
		return nil, err
	}
	return &accountRepository{store: u.store, st: st}, nil
}

func (u *UoW) CardRepository() (repository.CardRepository, error) {
	st, err := u.session()
	if err != nil {
		return nil, err
	}
	return &cardRepository{store: u.store, st: st}, nil
}

func (u *UoW) LoanRepository() (repository.LoanRepository, error) {
	st, err := u.session()
	if err != nil {
		return nil, err
	}
	return &loanRepository{store: u.store, st: st}, nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	st, err := u.session()
	if err != nil {
		return nil, err
	}
	return &transactionRepository{store: u.store, st: st}, nil
}

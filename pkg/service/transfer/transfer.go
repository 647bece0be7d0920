// Package transfer moves money between two accounts.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/money"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/lock"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/homebanking/corebank/pkg/service"
)

const (
	msgMissingFields       = "Please fill in all the fields of the form"
	msgSameAccount         = "Operation invalid between account origin and account destiny - Validations 1"
	msgInvalidAmount       = "Invalid amount, please try again"
	msgDestinationNotFound = "the destination account cannot be found, please try again"
	msgOriginNotValid      = "Operation invalid between account origin and account destiny - the accounts are equals"
	msgInsufficientFunds   = "Invalid amount, insufficient funds"
	msgAccountNotFound     = "Account not found"
	msgTransferred         = "Successful transfer "
)

// Service provides business logic for transfers between accounts.
type Service struct {
	uow      repository.UnitOfWork
	resolver identity.Resolver
	locker   lock.Locker
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	resolver identity.Resolver,
	locker lock.Locker,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		resolver: resolver,
		locker:   locker,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Transfer moves amount from origin, which the caller must own, to destination.
// Both balances and both ledger entries are written in one unit of work or not at all.
func (s *Service) Transfer(
	ctx context.Context,
	id identity.Identity,
	amount float64,
	description, origin, destination string,
) (receipt *domain.Receipt, err error) {
	logger := s.logger.With(
		"email", id.Email,
		"origin", origin,
		"destination", destination,
		"amount", amount,
	)
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}
	// Both legs and both ledger entries post this one cent-exact amount.
	amount = money.Cents(amount)
	switch {
	case origin == "" || destination == "":
		err = domain.Reject(domain.ErrInvalidRequest, msgMissingFields)
	case origin == destination:
		err = domain.Reject(domain.ErrInvalidRequest, msgSameAccount)
	case amount <= 0:
		err = domain.Reject(domain.ErrInvalidRequest, msgInvalidAmount)
	}
	if err != nil {
		service.LogFailure(logger, "Transfer", err)
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.Account(origin), lock.Account(destination))
	if err != nil {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		from, to, err := readForUpdate(ctx, accounts, origin, destination)
		if err != nil {
			return err
		}
		if to == nil {
			return domain.Reject(domain.ErrInvalidRequest, msgDestinationNotFound)
		}
		if from == nil || !from.OwnedBy(c.ID) {
			return domain.Reject(domain.ErrInvalidRequest, msgOriginNotValid)
		}
		if !money.Covers(from.Balance, amount) {
			return domain.Reject(domain.ErrInvalidRequest, msgInsufficientFunds)
		}

		at := s.now()
		debit, err := from.Debit(account.TypeTransfer, amount, description, at)
		if err != nil {
			return err
		}
		credit, err := to.Credit(account.TypeTransfer, amount, description, at)
		if err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, from.ID, from.Balance); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, to.ID, to.Balance); err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := txs.Create(ctx, debit); err != nil {
			return err
		}
		return txs.Create(ctx, credit)
	})
	if err != nil {
		service.LogFailure(logger, "Transfer", err)
		return nil, err
	}
	logger.Info("Transfer completed")
	return &domain.Receipt{Message: msgTransferred, Status: http.StatusOK}, nil
}

// readForUpdate locks both rows in number order. A missing account comes back nil.
func readForUpdate(
	ctx context.Context,
	repo repository.AccountRepository,
	origin, destination string,
) (from, to *account.Account, err error) {
	numbers := []string{origin, destination}
	if destination < origin {
		numbers[0], numbers[1] = destination, origin
	}
	found := make(map[string]*account.Account, 2)
	for _, n := range numbers {
		a, err := repo.GetByNumberForUpdate(ctx, n)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		found[n] = a
	}
	return found[origin], found[destination], nil
}

// ListTransactions returns the ledger of one of the caller's accounts, oldest first.
func (s *Service) ListTransactions(
	ctx context.Context,
	id identity.Identity,
	number string,
) (entries []*account.Transaction, err error) {
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, number)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reject(domain.ErrNotFound, msgAccountNotFound)
		}
		if err != nil {
			return err
		}
		if !a.OwnedBy(c.ID) {
			return domain.Reject(domain.ErrNotFound, msgAccountNotFound)
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entries, err = txs.ListByAccount(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

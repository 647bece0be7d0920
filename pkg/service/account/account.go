// Package account opens accounts for clients and answers account queries.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/lock"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/homebanking/corebank/pkg/service"
)

const (
	msgNotConfirmed    = "Param for create is not received ?"
	msgClientLimit     = "You have a maximum accounts permitted"
	msgSystemCapacity  = "maximum of all accounts published "
	msgAccountNotFound = "Account not found"
)

// Service provides business logic for opening and reading accounts.
type Service struct {
	uow      repository.UnitOfWork
	resolver identity.Resolver
	locker   lock.Locker
	logger   *slog.Logger
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
	}
}

// CreateAccount opens a zero-balance account for the caller and returns every
// account the caller owns, oldest first.
func (s *Service) CreateAccount(
	ctx context.Context,
	id identity.Identity,
	confirm bool,
) (accounts []*account.Account, err error) {
	logger := s.logger.With("email", id.Email)
	if !confirm {
		return nil, domain.Reject(domain.ErrInvalidRequest, msgNotConfirmed)
	}
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.AccountSequence)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	defer unlock()

	var created *account.Account
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		owned, err := repo.ListByClient(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(owned) >= account.MaxPerClient {
			return domain.Reject(domain.ErrLimitExceeded, msgClientLimit)
		}
		if created, err = s.open(ctx, repo, c); err != nil {
			return err
		}
		accounts, err = repo.ListByClient(ctx, c.ID)
		return err
	})
	if err != nil {
		service.LogFailure(logger, "Account creation", err)
		return nil, err
	}
	logger.Info("Account created", "number", created.Number)
	return accounts, nil
}

// RegisterNewAccount opens the first account of a freshly registered client.
// The per-client limit does not apply; the system capacity does.
func (s *Service) RegisterNewAccount(
	ctx context.Context,
	c *client.Client,
) (created *account.Account, err error) {
	unlock, err := s.locker.Lock(ctx, lock.AccountSequence)
	if err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		created, err = s.open(ctx, repo, c)
		return err
	})
	if err != nil {
		service.LogFailure(s.logger.With("email", c.Email), "Account provisioning", err)
		return nil, err
	}
	s.logger.Info("Account provisioned", "email", c.Email, "number", created.Number)
	return created, nil
}

// open enforces the system capacity and stores the next numbered account.
func (s *Service) open(
	ctx context.Context,
	repo repository.AccountRepository,
	c *client.Client,
) (*account.Account, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= account.MaxInSystem {
		return nil, domain.Reject(domain.ErrCapacityExceeded, msgSystemCapacity)
	}
	a, err := account.New().
		WithClientID(c.ID).
		WithNumber(account.NextNumber(count)).
		Build()
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAccounts returns the caller's accounts, oldest first.
func (s *Service) ListAccounts(
	ctx context.Context,
	id identity.Identity,
) (accounts []*account.Account, err error) {
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accounts, err = repo.ListByClient(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount returns one of the caller's accounts by number.
func (s *Service) GetAccount(
	ctx context.Context,
	id identity.Identity,
	number string,
) (a *account.Account, err error) {
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.GetByNumber(ctx, number)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) || (err == nil && !a.OwnedBy(c.ID)) {
		return nil, domain.Reject(domain.ErrNotFound, msgAccountNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

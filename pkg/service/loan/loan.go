// Package loan grants loans from the product catalog and disburses them into
// the client's account.
package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/loan"
	"github.com/homebanking/corebank/pkg/domain/money"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/lock"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/homebanking/corebank/pkg/service"
)

const (
	msgAccountIncorrect = "The account entered is incorrect"
	msgAccountNotOwned  = "The account entered is not valid to the client authentication"
	msgMissingFields    = "Please fill in all the fields of the form"
	msgMinimumAmount    = "the minimum amount is $5.000"
	msgProductNotFound  = "The requested loan does not exist"
	msgProductMismatch  = "The values entered do not match the type of loan requested"
	msgAmountMismatch   = "The value amount entered do not match the type of loan requested"
	msgGranted          = "Loan Completed"
)

// Service provides business logic for loan origination.
type Service struct {
	uow      repository.UnitOfWork
	resolver identity.Resolver
	locker   lock.Locker
	validate *validator.Validate
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
		validate: validator.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Apply grants the loan described by app and credits its principal to the
// destination account. The client loan, the new balance and the ledger entry
// are written together.
//
// Amount is dereferenced before the product is looked up: a nil Amount panics
// once the account and form checks have passed.
func (s *Service) Apply(
	ctx context.Context,
	id identity.Identity,
	app loan.Application,
) (receipt *domain.Receipt, err error) {
	logger := s.logger.With("email", id.Email, "account", app.AccountNumber)
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.Account(app.AccountNumber))
	if err != nil {
		return nil, fmt.Errorf("apply for loan: %w", err)
	}
	defer unlock()

	var granted *loan.ClientLoan
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		dest, err := accounts.GetByNumberForUpdate(ctx, app.AccountNumber)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reject(domain.ErrInvalidRequest, msgAccountIncorrect)
		}
		if err != nil {
			return err
		}
		if !dest.OwnedBy(c.ID) {
			return domain.Reject(domain.ErrInvalidRequest, msgAccountNotOwned)
		}
		if app.ProductID == nil || app.Name == "" || app.Payments == nil || app.AccountNumber == "" {
			return domain.Reject(domain.ErrInvalidRequest, msgMissingFields)
		}
		principal := money.Cents(*app.Amount)
		if principal < loan.MinAmount {
			return domain.Reject(domain.ErrInvalidRequest, msgMinimumAmount)
		}

		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		product, err := loans.GetProduct(ctx, *app.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Reject(domain.ErrNotFound, msgProductNotFound)
		}
		if err != nil {
			return err
		}
		if product.Name != app.Name || !product.AllowsTerm(*app.Payments) {
			return domain.Reject(domain.ErrInvalidRequest, msgProductMismatch)
		}
		if principal > product.MaxAmount {
			return domain.Reject(domain.ErrInvalidRequest, msgAmountMismatch)
		}

		now := s.now()
		granted = loan.Grant(c.ID, product, principal, *app.Payments, now)
		entry, err := dest.Credit(account.TypeLoanDisbursement, principal, product.Name+" loan approved", now)
		if err != nil {
			return err
		}
		if err := loans.CreateClientLoan(ctx, granted); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, dest.ID, dest.Balance); err != nil {
			return err
		}
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return txs.Create(ctx, entry)
	})
	if err != nil {
		service.LogFailure(logger, "Loan application", err)
		return nil, err
	}
	logger.Info("Loan granted", "product", granted.ProductID, "owed", granted.Amount)
	return &domain.Receipt{Message: msgGranted, Status: http.StatusCreated}, nil
}

// ListProducts returns the loan catalog.
func (s *Service) ListProducts(ctx context.Context) (products []*loan.Product, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		products, err = repo.ListProducts(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListClientLoans returns the loans granted to the caller, oldest first.
func (s *Service) ListClientLoans(
	ctx context.Context,
	id identity.Identity,
) (loans []*loan.ClientLoan, err error) {
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		loans, err = repo.ListClientLoans(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// SeedProducts stores products when the catalog is empty and reports how many
// were written. Every product is validated before anything is stored.
func (s *Service) SeedProducts(ctx context.Context, products []loan.Product) (seeded int, err error) {
	for i := range products {
		if err := s.validate.Struct(products[i]); err != nil {
			return 0, fmt.Errorf("invalid loan product %q: %w", products[i].Name, err)
		}
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		existing, err := repo.ListProducts(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for i := range products {
			p := products[i]
			if err := repo.CreateProduct(ctx, &p); err != nil {
				return fmt.Errorf("seed %s: %w", p.Name, err)
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Loan catalog seeding failed", "error", err)
		return 0, err
	}
	s.logger.Info("Loan catalog seeded", "products", seeded)
	return seeded, nil
}

package loan_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/internal/fixtures"
	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/account"
	domainloan "github.com/homebanking/corebank/pkg/domain/loan"
	"github.com/homebanking/corebank/pkg/domain/money"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/service/loan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func ptr[T any](v T) *T { return &v }

type ApplySuite struct {
	suite.Suite
	ctx    context.Context
	bank   *fixtures.Bank
	svc    *loan.Service
	owner  uuid.UUID
	client identity.Identity
}

func TestApplySuite(t *testing.T) {
	suite.Run(t, new(ApplySuite))
}

func (s *ApplySuite) SetupTest() {
	s.ctx = context.Background()
	s.bank = fixtures.NewBank()
	c, id := s.bank.Client(s.T(), "John", "Doe", "john.doe@test.com")
	s.owner, s.client = c.ID, id
	s.bank.Account(s.T(), c.ID, "014/5301", 5000)
	s.bank.Product(s.T(), domainloan.Product{
		ID: 1, Name: "Personal", MaxAmount: 50000, Payments: []int{12, 24, 36, 48},
	})
	s.svc = loan.New(s.bank.UoW, s.bank.Resolver, s.bank.Locker, discard)
}

func (s *ApplySuite) application() domainloan.Application {
	return domainloan.Application{
		ProductID:     ptr(int64(1)),
		Name:          "Personal",
		Amount:        ptr(10000.0),
		Payments:      ptr(12),
		AccountNumber: "014/5301",
	}
}

func (s *ApplySuite) TestGrantsTheLoan() {
	receipt, err := s.svc.Apply(s.ctx, s.client, s.application())
	s.Require().NoError(err)
	s.Equal(&domain.Receipt{Message: "Loan Completed", Status: http.StatusCreated}, receipt)
	s.Equal(15000.0, s.bank.Balance(s.T(), "014/5301"))

	loans := s.bank.ClientLoans(s.T(), s.owner)
	s.Require().Len(loans, 1)
	s.Equal(12000.0, loans[0].Amount)
	s.Equal(12, loans[0].Payments)
	s.Equal(int64(1), loans[0].ProductID)

	entries := s.bank.Ledger(s.T(), "014/5301")
	s.Require().Len(entries, 1)
	s.Equal(account.TypeLoanDisbursement, entries[0].Type)
	s.Equal(account.DirectionCredit, entries[0].Direction)
	s.Equal(10000.0, entries[0].Amount)
	s.Equal(15000.0, entries[0].Balance)
	s.Equal("Personal loan approved", entries[0].Description)
}

func (s *ApplySuite) TestPostsTheRoundedPrincipal() {
	app := s.application()
	app.Amount = ptr(10000.005)
	_, err := s.svc.Apply(s.ctx, s.client, app)
	s.Require().NoError(err)

	balance := s.bank.Balance(s.T(), "014/5301")
	s.Equal(15000.01, balance)
	entries := s.bank.Ledger(s.T(), "014/5301")
	s.Require().Len(entries, 1)
	s.Equal(10000.01, entries[0].Amount)
	s.Equal(entries[0].Amount, money.Sub(balance, 5000))

	loans := s.bank.ClientLoans(s.T(), s.owner)
	s.Require().Len(loans, 1)
	s.Equal(12000.01, loans[0].Amount)
}

func (s *ApplySuite) TestAcceptsTheBoundaries() {
	app := s.application()
	app.Amount = ptr(domainloan.MinAmount)
	_, err := s.svc.Apply(s.ctx, s.client, app)
	s.Require().NoError(err)

	app.Amount = ptr(50000.0)
	app.Payments = ptr(48)
	_, err = s.svc.Apply(s.ctx, s.client, app)
	s.Require().NoError(err)
	s.Equal(60000.0, s.bank.Balance(s.T(), "014/5301"))
}

func (s *ApplySuite) TestRejections() {
	other, _ := s.bank.Client(s.T(), "Other", "Client", "other@test.com")
	s.bank.Account(s.T(), other.ID, "014/5302", 0)

	cases := []struct {
		name    string
		id      identity.Identity
		edit    func(*domainloan.Application)
		kind    error
		message string
	}{
		{
			name:    "unknown client",
			id:      identity.Identity{Email: "ghost@test.com"},
			kind:    domain.ErrUnauthorized,
			message: "Authenticated client is not recognized",
		},
		{
			name:    "unknown account",
			edit:    func(a *domainloan.Application) { a.AccountNumber = "014/5399" },
			kind:    domain.ErrInvalidRequest,
			message: "The account entered is incorrect",
		},
		{
			name:    "empty account",
			edit:    func(a *domainloan.Application) { a.AccountNumber = "" },
			kind:    domain.ErrInvalidRequest,
			message: "The account entered is incorrect",
		},
		{
			name:    "account of another client",
			edit:    func(a *domainloan.Application) { a.AccountNumber = "014/5302" },
			kind:    domain.ErrInvalidRequest,
			message: "The account entered is not valid to the client authentication",
		},
		{
			name:    "missing product",
			edit:    func(a *domainloan.Application) { a.ProductID = nil },
			kind:    domain.ErrInvalidRequest,
			message: "Please fill in all the fields of the form",
		},
		{
			name:    "missing name",
			edit:    func(a *domainloan.Application) { a.Name = "" },
			kind:    domain.ErrInvalidRequest,
			message: "Please fill in all the fields of the form",
		},
		{
			name:    "missing payments",
			edit:    func(a *domainloan.Application) { a.Payments = nil },
			kind:    domain.ErrInvalidRequest,
			message: "Please fill in all the fields of the form",
		},
		{
			name:    "below the minimum",
			edit:    func(a *domainloan.Application) { a.Amount = ptr(4999.99) },
			kind:    domain.ErrInvalidRequest,
			message: "the minimum amount is $5.000",
		},
		{
			name:    "unknown product",
			edit:    func(a *domainloan.Application) { a.ProductID = ptr(int64(7)) },
			kind:    domain.ErrNotFound,
			message: "The requested loan does not exist",
		},
		{
			name:    "name of another product",
			edit:    func(a *domainloan.Application) { a.Name = "Mortgage" },
			kind:    domain.ErrInvalidRequest,
			message: "The values entered do not match the type of loan requested",
		},
		{
			name:    "term not offered",
			edit:    func(a *domainloan.Application) { a.Payments = ptr(6) },
			kind:    domain.ErrInvalidRequest,
			message: "The values entered do not match the type of loan requested",
		},
		{
			name:    "above the product maximum",
			edit:    func(a *domainloan.Application) { a.Amount = ptr(50000.01) },
			kind:    domain.ErrInvalidRequest,
			message: "The value amount entered do not match the type of loan requested",
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			app := s.application()
			if tc.edit != nil {
				tc.edit(&app)
			}
			id := tc.id
			if id.Email == "" {
				id = s.client
			}
			writes := s.bank.Store.Writes()

			receipt, err := s.svc.Apply(s.ctx, id, app)
			s.Nil(receipt)
			s.ErrorIs(err, tc.kind)
			s.EqualError(err, tc.message)
			s.Equal(http.StatusForbidden, domain.StatusCode(err))
			s.Equal(writes, s.bank.Store.Writes())
		})
	}
	s.Equal(5000.0, s.bank.Balance(s.T(), "014/5301"))
	s.Empty(s.bank.ClientLoans(s.T(), s.owner))
}

func (s *ApplySuite) TestPanicsOnMissingAmount() {
	app := s.application()
	app.Amount = nil
	s.Panics(func() {
		_, _ = s.svc.Apply(s.ctx, s.client, app)
	})
	s.Equal(5000.0, s.bank.Balance(s.T(), "014/5301"))

	// the account lock was released by the unwinding panic
	_, err := s.svc.Apply(s.ctx, s.client, s.application())
	s.NoError(err)
}

func (s *ApplySuite) TestMissingAccountIsCheckedBeforeAmount() {
	app := s.application()
	app.Amount = nil
	app.AccountNumber = "014/5399"
	_, err := s.svc.Apply(s.ctx, s.client, app)
	s.EqualError(err, "The account entered is incorrect")
}

func (s *ApplySuite) TestRollsBackWhenTheLedgerFails() {
	boom := errors.New("ledger unavailable")
	s.bank.Store.FailOn("transaction.create", boom)

	_, err := s.svc.Apply(s.ctx, s.client, s.application())
	s.ErrorIs(err, boom)
	s.Equal(http.StatusInternalServerError, domain.StatusCode(err))
	s.Equal(5000.0, s.bank.Balance(s.T(), "014/5301"))
	s.Empty(s.bank.ClientLoans(s.T(), s.owner))
	s.Empty(s.bank.Ledger(s.T(), "014/5301"))
}

func (s *ApplySuite) TestListClientLoans() {
	_, err := s.svc.Apply(s.ctx, s.client, s.application())
	s.Require().NoError(err)

	loans, err := s.svc.ListClientLoans(s.ctx, s.client)
	s.Require().NoError(err)
	s.Len(loans, 1)
}

func TestSeedProducts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("seeds an empty catalog once", func(t *testing.T) {
		t.Parallel()
		require := require.New(t)
		bank := fixtures.NewBank()
		svc := loan.New(bank.UoW, bank.Resolver, bank.Locker, discard)

		seeded, err := svc.SeedProducts(ctx, domainloan.DefaultCatalog())
		require.NoError(err)
		require.Equal(3, seeded)
		again, err := svc.SeedProducts(ctx, domainloan.DefaultCatalog())
		require.NoError(err)
		require.Zero(again)

		products, err := svc.ListProducts(ctx)
		require.NoError(err)
		names := make([]string, 0, len(products))
		for _, p := range products {
			names = append(names, p.Name)
			assert.NotZero(t, p.ID, "product %s has no id", p.Name)
		}
		require.Equal([]string{"Mortgage", "Personal", "Automotive"}, names)
	})

	t.Run("rejects an invalid product before writing", func(t *testing.T) {
		t.Parallel()
		bank := fixtures.NewBank()
		svc := loan.New(bank.UoW, bank.Resolver, bank.Locker, discard)

		_, err := svc.SeedProducts(ctx, []domainloan.Product{
			{Name: "Personal", MaxAmount: 100000, Payments: []int{6}},
			{Name: "Broken", MaxAmount: 0, Payments: nil},
		})
		require.Error(t, err)
		assert.Zero(t, bank.Store.Writes())
	})
}

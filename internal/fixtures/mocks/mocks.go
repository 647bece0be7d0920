// Package mocks holds testify mocks of the collaborator interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// Resolver is a mock of identity.Resolver.
type Resolver struct {
	mock.Mock
}

// NewResolver creates a Resolver whose expectations are asserted on cleanup.
func NewResolver(t testingT) *Resolver {
	m := &Resolver{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Resolver) Resolve(ctx context.Context, id identity.Identity) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

// Hasher is a mock of the credential hasher.
type Hasher struct {
	mock.Mock
}

// NewHasher creates a Hasher whose expectations are asserted on cleanup.
func NewHasher(t testingT) *Hasher {
	m := &Hasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Hasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// AccountProvisioner is a mock of the account opened on registration.
type AccountProvisioner struct {
	mock.Mock
}

// NewAccountProvisioner creates an AccountProvisioner whose expectations are asserted on cleanup.
func NewAccountProvisioner(t testingT) *AccountProvisioner {
	m := &AccountProvisioner{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AccountProvisioner) RegisterNewAccount(ctx context.Context, c *client.Client) (*account.Account, error) {
	args := m.Called(ctx, c)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

// UnitOfWork is a mock of repository.UnitOfWork. Do runs fn against the mock itself.
type UnitOfWork struct {
	mock.Mock
}

// NewUnitOfWork creates a UnitOfWork whose expectations are asserted on cleanup.
func NewUnitOfWork(t testingT) *UnitOfWork {
	m := &UnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *UnitOfWork) ClientRepository() (repository.ClientRepository, error) {
	args := m.Called()
	r, _ := args.Get(0).(repository.ClientRepository)
	return r, args.Error(1)
}

func (m *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	r, _ := args.Get(0).(repository.AccountRepository)
	return r, args.Error(1)
}

func (m *UnitOfWork) CardRepository() (repository.CardRepository, error) {
	args := m.Called()
	r, _ := args.Get(0).(repository.CardRepository)
	return r, args.Error(1)
}

func (m *UnitOfWork) LoanRepository() (repository.LoanRepository, error) {
	args := m.Called()
	r, _ := args.Get(0).(repository.LoanRepository)
	return r, args.Error(1)
}

func (m *UnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	args := m.Called()
	r, _ := args.Get(0).(repository.TransactionRepository)
	return r, args.Error(1)
}

// ClientRepository is a mock of repository.ClientRepository.
type ClientRepository struct {
	mock.Mock
}

// NewClientRepository creates a ClientRepository whose expectations are asserted on cleanup.
func NewClientRepository(t testingT) *ClientRepository {
	m := &ClientRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ClientRepository) Create(ctx context.Context, c *client.Client) (*client.Client, error) {
	args := m.Called(ctx, c)
	stored, _ := args.Get(0).(*client.Client)
	return stored, args.Error(1)
}

func (m *ClientRepository) Get(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

func (m *ClientRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

package repository

import (
	"context"

	"github.com/homebanking/corebank/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
// A Do issued on a UoW that is already inside a transaction joins it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) ClientRepository() (repository.ClientRepository, error) {
	return &clientRepository{db: u.session()}, nil
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{db: u.session()}, nil
}

func (u *UoW) CardRepository() (repository.CardRepository, error) {
	return &cardRepository{db: u.session()}, nil
}

func (u *UoW) LoanRepository() (repository.LoanRepository, error) {
	return &loanRepository{db: u.session()}, nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{db: u.session()}, nil
}

// Migrate creates or updates every table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}

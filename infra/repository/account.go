package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// Create implements repository.AccountRepository.
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(accountToModel(a)).Error
	})
}

// GetByNumber implements repository.AccountRepository.
func (r *accountRepository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	return r.getByNumber(r.db.WithContext(ctx), number)
}

// GetByNumberForUpdate implements repository.AccountRepository with SELECT ... FOR UPDATE,
// so the row stays locked until the surrounding transaction ends.
func (r *accountRepository) GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error) {
	return r.getByNumber(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), number)
}

func (r *accountRepository) getByNumber(db *gorm.DB, number string) (*account.Account, error) {
	var m Account
	if err := WrapError(func() error {
		return db.First(&m, "number = ?", number).Error
	}); err != nil {
		return nil, err
	}
	return accountFromModel(&m), nil
}

// ListByClient implements repository.AccountRepository.
func (r *accountRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*account.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at, number").
		Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*account.Account, 0, len(ms))
	for i := range ms {
		out = append(out, accountFromModel(&ms[i]))
	}
	return out, nil
}

// Count implements repository.AccountRepository.
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Account{}).Count(&n).Error
	})
	return n, err
}

// UpdateBalance implements repository.AccountRepository.
func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance float64) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).
			Model(&Account{}).
			Where("id = ?", id).
			Update("balance", balance).Error
	})
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/account"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// Create implements repository.TransactionRepository.
func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(transactionToModel(tx)).Error
	})
}

// ListByAccount implements repository.TransactionRepository.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	var ms []Transaction
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*account.Transaction, 0, len(ms))
	for i := range ms {
		out = append(out, transactionFromModel(&ms[i]))
	}
	return out, nil
}

package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/loan"
	"gorm.io/gorm"
)

type loanRepository struct {
	db *gorm.DB
}

// GetProduct implements repository.LoanRepository.
func (r *loanRepository) GetProduct(ctx context.Context, id int64) (*loan.Product, error) {
	var m LoanProduct
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}
	return productFromModel(&m), nil
}

// ListProducts implements repository.LoanRepository.
func (r *loanRepository) ListProducts(ctx context.Context) ([]*loan.Product, error) {
	var ms []LoanProduct
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*loan.Product, 0, len(ms))
	for i := range ms {
		out = append(out, productFromModel(&ms[i]))
	}
	return out, nil
}

// CreateProduct implements repository.LoanRepository. A zero ID is assigned by the database.
func (r *loanRepository) CreateProduct(ctx context.Context, p *loan.Product) error {
	m := &LoanProduct{ID: p.ID, Name: p.Name, MaxAmount: p.MaxAmount, Payments: slices.Clone(p.Payments)}
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	}); err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

// CreateClientLoan implements repository.LoanRepository.
func (r *loanRepository) CreateClientLoan(ctx context.Context, l *loan.ClientLoan) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&ClientLoan{
			ID:        l.ID,
			ClientID:  l.ClientID,
			ProductID: l.ProductID,
			Amount:    l.Amount,
			Payments:  l.Payments,
			CreatedAt: l.CreatedAt,
		}).Error
	})
}

// ListClientLoans implements repository.LoanRepository.
func (r *loanRepository) ListClientLoans(ctx context.Context, clientID uuid.UUID) ([]*loan.ClientLoan, error) {
	var ms []ClientLoan
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at").
		Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*loan.ClientLoan, 0, len(ms))
	for i := range ms {
		out = append(out, clientLoanFromModel(&ms[i]))
	}
	return out, nil
}

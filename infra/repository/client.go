package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/client"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// Create implements repository.ClientRepository.
func (r *clientRepository) Create(ctx context.Context, c *client.Client) (*client.Client, error) {
	m := clientToModel(c)
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).Create(m).Error
	}); err != nil {
		return nil, err
	}
	return clientFromModel(m), nil
}

// Get implements repository.ClientRepository.
func (r *clientRepository) Get(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var m Client
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}
	return clientFromModel(&m), nil
}

// GetByEmail implements repository.ClientRepository.
func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*client.Client, error) {
	var m Client
	if err := WrapError(func() error {
		return r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	}); err != nil {
		return nil, err
	}
	return clientFromModel(&m), nil
}

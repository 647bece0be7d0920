package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain/card"
	"gorm.io/gorm"
)

type cardRepository struct {
	db *gorm.DB
}

// Create implements repository.CardRepository.
func (r *cardRepository) Create(ctx context.Context, c *card.Card) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(cardToModel(c)).Error
	})
}

// ListByClient implements repository.CardRepository.
func (r *cardRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*card.Card, error) {
	var ms []Card
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("from_date").
		Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*card.Card, 0, len(ms))
	for i := range ms {
		out = append(out, cardFromModel(&ms[i]))
	}
	return out, nil
}

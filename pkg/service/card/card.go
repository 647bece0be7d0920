// Package card issues payment cards to clients.
package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/card"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/lock"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/homebanking/corebank/pkg/service"
)

const (
	msgClientLimit = "You have the maximum cards permitted"
	msgNoColor     = "You don't specified the color of card, try again "
	msgTypeLimit   = "Already have 3 cards %s yet"
)

// Service provides business logic for card issuance.
type Service struct {
	uow      repository.UnitOfWork
	resolver identity.Resolver
	locker   lock.Locker
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
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// IssueCard issues a card of the given type and color and returns every card
// the caller holds, oldest first.
//
// kind is dereferenced before color is checked: a nil kind panics.
func (s *Service) IssueCard(
	ctx context.Context,
	id identity.Identity,
	kind *card.Type,
	color *card.Color,
) (cards []*card.Card, err error) {
	logger := s.logger.With("email", id.Email)
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.Client(c.ID.String()))
	if err != nil {
		return nil, fmt.Errorf("issue card: %w", err)
	}
	defer unlock()

	var issued *card.Card
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		held, err := repo.ListByClient(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(held) >= card.MaxPerClient {
			return domain.Reject(domain.ErrLimitExceeded, msgClientLimit)
		}
		requested := *kind
		if color == nil {
			return domain.Reject(domain.ErrInvalidRequest, msgNoColor)
		}
		if card.CountOfType(held, requested) >= card.MaxPerType {
			return domain.Reject(
				domain.ErrLimitExceeded,
				fmt.Sprintf(msgTypeLimit, strings.ToLower(string(requested))),
			)
		}
		if issued, err = card.Issue(c.ID, c.FullName(), requested, *color, s.now()); err != nil {
			return err
		}
		if err := repo.Create(ctx, issued); err != nil {
			return err
		}
		cards, err = repo.ListByClient(ctx, c.ID)
		return err
	})
	if err != nil {
		service.LogFailure(logger, "Card issuance", err)
		return nil, err
	}
	logger.Info("Card issued", "type", issued.Type, "color", issued.Color)
	return cards, nil
}

// ListCards returns the caller's cards, oldest first.
func (s *Service) ListCards(
	ctx context.Context,
	id identity.Identity,
) (cards []*card.Card, err error) {
	c, err := identity.Require(ctx, s.resolver, id)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CardRepository()
		if err != nil {
			return err
		}
		cards, err = repo.ListByClient(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// Package identity maps an already authenticated caller to a client record.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/repository"
)

// Identity is the authenticated principal a request arrives with.
type Identity struct {
	Email string
}

// Resolver looks up the client behind an identity.
// It returns (nil, nil) when the identity is not recognized.
type Resolver interface {
	Resolve(ctx context.Context, id Identity) (*client.Client, error)
}

// StoreResolver resolves identities against the client repository.
type StoreResolver struct {
	uow repository.UnitOfWork
}

// NewStoreResolver creates a StoreResolver.
func NewStoreResolver(uow repository.UnitOfWork) *StoreResolver {
	return &StoreResolver{uow: uow}
}

// Resolve implements Resolver.
func (r *StoreResolver) Resolve(ctx context.Context, id Identity) (c *client.Client, err error) {
	email := strings.TrimSpace(id.Email)
	if email == "" {
		return nil, nil
	}
	err = r.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		c, err = repo.GetByEmail(ctx, email)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return c, nil
}

// UnrecognizedMessage is returned to callers whose identity maps to no client.
const UnrecognizedMessage = "Authenticated client is not recognized"

// Require resolves id and turns an unknown identity into an Unauthorized rejection.
func Require(ctx context.Context, r Resolver, id Identity) (*client.Client, error) {
	c, err := r.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Reject(domain.ErrUnauthorized, UnrecognizedMessage)
	}
	return c, nil
}

// Package client registers new clients.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/homebanking/corebank/pkg/service"
)

const (
	msgMissingData   = "Missing data"
	msgEmailTaken    = "Name already in use"
	msgNotAuthorized = "This Client is not Autorized"
)

// Hasher turns a plain credential into the form stored on the client.
type Hasher interface {
	Hash(password string) (string, error)
}

// AccountProvisioner opens the first account of a new client.
type AccountProvisioner interface {
	RegisterNewAccount(ctx context.Context, c *client.Client) (*account.Account, error)
}

// Service provides business logic for client registration.
type Service struct {
	uow      repository.UnitOfWork
	resolver identity.Resolver
	hasher   Hasher
	accounts AccountProvisioner
	logger   *slog.Logger
}

// New creates a new Service.
func New(
	uow repository.UnitOfWork,
	resolver identity.Resolver,
	hasher Hasher,
	accounts AccountProvisioner,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		resolver: resolver,
		hasher:   hasher,
		accounts: accounts,
		logger:   logger,
	}
}

// Registration is the result of a successful Register.
type Registration struct {
	Client *client.Client
	Status int
}

// Register stores a new client and then opens their first account.
// A failure to open the account is logged and does not fail the registration.
func (s *Service) Register(
	ctx context.Context,
	firstName, lastName, email, password string,
) (*Registration, error) {
	logger := s.logger.With("email", email)
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, domain.Reject(domain.ErrInvalidRequest, msgMissingData)
	}

	var stored *client.Client
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ClientRepository()
		if err != nil {
			return err
		}
		_, err = repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return domain.Reject(domain.ErrConflict, msgEmailTaken)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		stored, err = repo.Create(ctx, client.New(firstName, lastName, email, hashed))
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.Reject(domain.ErrConflict, msgEmailTaken)
		}
		return err
	})
	if err == nil && stored == nil {
		err = domain.Reject(domain.ErrUnauthorized, msgNotAuthorized)
	}
	if err != nil {
		service.LogFailure(logger, "Registration", err)
		return nil, err
	}
	logger.Info("Client registered", "id", stored.ID)

	if _, err := s.accounts.RegisterNewAccount(ctx, stored); err != nil {
		logger.Warn("Client registered without an account", "error", err)
	}
	return &Registration{Client: stored, Status: http.StatusCreated}, nil
}

// Current returns the client behind the caller's identity.
func (s *Service) Current(ctx context.Context, id identity.Identity) (*client.Client, error) {
	return identity.Require(ctx, s.resolver, id)
}

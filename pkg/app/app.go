// Package app wires the bank's managers over one set of infrastructure dependencies.
package app

import (
	"log/slog"

	"github.com/homebanking/corebank/pkg/config"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/lock"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/homebanking/corebank/pkg/service/account"
	"github.com/homebanking/corebank/pkg/service/card"
	"github.com/homebanking/corebank/pkg/service/client"
	"github.com/homebanking/corebank/pkg/service/loan"
	"github.com/homebanking/corebank/pkg/service/transfer"
)

// Deps contains the infrastructure every manager is built from.
type Deps struct {
	Uow      repository.UnitOfWork
	Locker   lock.Locker
	Resolver identity.Resolver
	Hasher   client.Hasher
	Logger   *slog.Logger
	// Close releases connections opened for the dependencies. May be nil.
	Close func() error
}

type App struct {
	Deps            *Deps
	Config          *config.App
	ClientService   *client.Service
	AccountService  *account.Service
	CardService     *card.Service
	TransferService *transfer.Service
	LoanService     *loan.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.AccountService = account.New(deps.Uow, deps.Resolver, deps.Locker, deps.Logger)
	app.ClientService = client.New(
		deps.Uow,
		deps.Resolver,
		deps.Hasher,
		app.AccountService,
		deps.Logger,
	)
	app.CardService = card.New(deps.Uow, deps.Resolver, deps.Locker, deps.Logger)
	app.TransferService = transfer.New(deps.Uow, deps.Resolver, deps.Locker, deps.Logger)
	app.LoanService = loan.New(deps.Uow, deps.Resolver, deps.Locker, deps.Logger)
	return app
}

// Close releases the dependencies' connections.
func (a *App) Close() error {
	if a.Deps.Close == nil {
		return nil
	}
	return a.Deps.Close()
}

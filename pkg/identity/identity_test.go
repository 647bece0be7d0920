package identity_test

import (
	"context"
	"testing"

	"github.com/homebanking/corebank/infra/repository/memory"
	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/identity"
	"github.com/homebanking/corebank/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreResolver(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUoW(memory.New())
	melba := client.New("Melba", "Morel", "melba@mindhub.com", "hash")
	require.NoError(t, uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, _ := uow.ClientRepository()
		_, err := repo.Create(ctx, melba)
		return err
	}))
	r := identity.NewStoreResolver(uow)

	got, err := r.Resolve(ctx, identity.Identity{Email: "melba@mindhub.com"})
	require.NoError(t, err)
	assert.Equal(t, melba.ID, got.ID)

	got, err = r.Resolve(ctx, identity.Identity{Email: "ghost@mindhub.com"})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.Resolve(ctx, identity.Identity{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	r := identity.NewStoreResolver(memory.NewUoW(memory.New()))

	_, err := identity.Require(ctx, r, identity.Identity{Email: "ghost@mindhub.com"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.EqualError(t, err, "Authenticated client is not recognized")
}

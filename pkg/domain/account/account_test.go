package account_test

import (
	"testing"
	"time"

	domainaccount "github.com/homebanking/corebank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	acc, err := domainaccount.New().
		WithClientID(uuid.New()).
		WithNumber("014/5301").
		Build()
	require.NoError(err)
	assert.NotEmpty(t, acc.ID, "Account ID should not be empty")
	assert.Zero(t, acc.Balance)
}

func TestBuildRequiresOwnerAndNumber(t *testing.T) {
	t.Parallel()
	_, err := domainaccount.New().WithNumber("014/5301").Build()
	assert.Error(t, err)
	_, err = domainaccount.New().WithClientID(uuid.New()).Build()
	assert.Error(t, err)
}

func TestNextNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		existing int64
		want     string
	}{
		{0, "014/5301"},
		{5, "014/5306"},
		{98, "014/5399"},
		{99, "014/53100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domainaccount.NextNumber(tt.existing))
	}
}

func TestDebitCredit(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	acc, err := domainaccount.New().
		WithClientID(uuid.New()).
		WithNumber("014/5301").
		WithBalance(1000).
		Build()
	require.NoError(t, err)

	t.Run("debit", func(t *testing.T) {
		tx, err := acc.Debit(domainaccount.TypeTransfer, 200, "rent", now)
		require.NoError(t, err)
		assert.Equal(t, 800.0, acc.Balance)
		assert.Equal(t, domainaccount.DirectionDebit, tx.Direction)
		assert.Equal(t, 200.0, tx.Amount)
		assert.Equal(t, 800.0, tx.Balance)
		assert.Equal(t, acc.ID, tx.AccountID)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		_, err := acc.Debit(domainaccount.TypeTransfer, 800.01, "too much", now)
		assert.ErrorIs(t, err, domainaccount.ErrInsufficientFunds)
		assert.Equal(t, 800.0, acc.Balance)
	})

	t.Run("credit", func(t *testing.T) {
		tx, err := acc.Credit(domainaccount.TypeLoanDisbursement, 10000, "Personal loan approved", now)
		require.NoError(t, err)
		assert.Equal(t, 10800.0, acc.Balance)
		assert.Equal(t, domainaccount.DirectionCredit, tx.Direction)
	})

	t.Run("non positive amount", func(t *testing.T) {
		_, err := acc.Credit(domainaccount.TypeTransfer, 0, "", now)
		assert.ErrorIs(t, err, domainaccount.ErrAmountMustBePositive)
		_, err = acc.Debit(domainaccount.TypeTransfer, -1, "", now)
		assert.ErrorIs(t, err, domainaccount.ErrAmountMustBePositive)
	})
}

func TestPostingsRoundOnce(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	build := func(balance float64) *domainaccount.Account {
		acc, err := domainaccount.New().
			WithClientID(uuid.New()).
			WithNumber("014/5301").
			WithBalance(balance).
			Build()
		require.NoError(t, err)
		return acc
	}

	from, to := build(1000), build(500)
	debit, err := from.Debit(domainaccount.TypeTransfer, 0.005, "", now)
	require.NoError(t, err)
	credit, err := to.Credit(domainaccount.TypeTransfer, 0.005, "", now)
	require.NoError(t, err)
	assert.Equal(t, 999.99, from.Balance)
	assert.Equal(t, 500.01, to.Balance)
	assert.Equal(t, 0.01, debit.Amount)
	assert.Equal(t, 0.01, credit.Amount)

	_, err = from.Debit(domainaccount.TypeTransfer, 0.004, "", now)
	assert.ErrorIs(t, err, domainaccount.ErrAmountMustBePositive)
	_, err = to.Credit(domainaccount.TypeTransfer, 0.004, "", now)
	assert.ErrorIs(t, err, domainaccount.ErrAmountMustBePositive)
	assert.Equal(t, 999.99, from.Balance)
	assert.Equal(t, 500.01, to.Balance)
}

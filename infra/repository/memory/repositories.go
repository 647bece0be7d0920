package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/homebanking/corebank/pkg/domain"
	"github.com/homebanking/corebank/pkg/domain/account"
	"github.com/homebanking/corebank/pkg/domain/card"
	"github.com/homebanking/corebank/pkg/domain/client"
	"github.com/homebanking/corebank/pkg/domain/loan"
)

type clientRepository struct {
	store *Store
	st    *state
}

func (r *clientRepository) Create(_ context.Context, c *client.Client) (*client.Client, error) {
	if err := r.store.write("client.create"); err != nil {
		return nil, err
	}
	if slices.ContainsFunc(r.st.clients, func(x client.Client) bool { return x.Email == c.Email }) {
		return nil, domain.ErrAlreadyExists
	}
	r.st.clients = append(r.st.clients, *c)
	stored := *c
	return &stored, nil
}

func (r *clientRepository) Get(_ context.Context, id uuid.UUID) (*client.Client, error) {
	return find(r.st.clients, func(x client.Client) bool { return x.ID == id })
}

func (r *clientRepository) GetByEmail(_ context.Context, email string) (*client.Client, error) {
	return find(r.st.clients, func(x client.Client) bool { return x.Email == email })
}

type accountRepository struct {
	store *Store
	st    *state
}

func (r *accountRepository) Create(_ context.Context, a *account.Account) error {
	if err := r.store.write("account.create"); err != nil {
		return err
	}
	if slices.ContainsFunc(r.st.accounts, func(x account.Account) bool { return x.Number == a.Number }) {
		return domain.ErrAlreadyExists
	}
	r.st.accounts = append(r.st.accounts, *a)
	return nil
}

func (r *accountRepository) GetByNumber(_ context.Context, number string) (*account.Account, error) {
	return find(r.st.accounts, func(x account.Account) bool { return x.Number == number })
}

// GetByNumberForUpdate needs no extra locking: units of work already run one at a time.
func (r *accountRepository) GetByNumberForUpdate(ctx context.Context, number string) (*account.Account, error) {
	return r.GetByNumber(ctx, number)
}

func (r *accountRepository) ListByClient(_ context.Context, clientID uuid.UUID) ([]*account.Account, error) {
	return filter(r.st.accounts, func(x account.Account) bool { return x.ClientID == clientID }), nil
}

func (r *accountRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.st.accounts)), nil
}

func (r *accountRepository) UpdateBalance(_ context.Context, id uuid.UUID, balance float64) error {
	if err := r.store.write("account.update_balance"); err != nil {
		return err
	}
	i := slices.IndexFunc(r.st.accounts, func(x account.Account) bool { return x.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	r.st.accounts[i].Balance = balance
	return nil
}

type cardRepository struct {
	store *Store
	st    *state
}

func (r *cardRepository) Create(_ context.Context, c *card.Card) error {
	if err := r.store.write("card.create"); err != nil {
		return err
	}
	r.st.cards = append(r.st.cards, *c)
	return nil
}

func (r *cardRepository) ListByClient(_ context.Context, clientID uuid.UUID) ([]*card.Card, error) {
	return filter(r.st.cards, func(x card.Card) bool { return x.ClientID == clientID }), nil
}

type loanRepository struct {
	store *Store
	st    *state
}

func (r *loanRepository) GetProduct(_ context.Context, id int64) (*loan.Product, error) {
	return find(r.st.products, func(x loan.Product) bool { return x.ID == id })
}

func (r *loanRepository) ListProducts(_ context.Context) ([]*loan.Product, error) {
	return filter(r.st.products, func(loan.Product) bool { return true }), nil
}

// CreateProduct assigns the next ID when p.ID is zero.
func (r *loanRepository) CreateProduct(_ context.Context, p *loan.Product) error {
	if err := r.store.write("loan.create_product"); err != nil {
		return err
	}
	if p.ID == 0 {
		for _, x := range r.st.products {
			p.ID = max(p.ID, x.ID)
		}
		p.ID++
	}
	if slices.ContainsFunc(r.st.products, func(x loan.Product) bool { return x.ID == p.ID }) {
		return domain.ErrAlreadyExists
	}
	stored := *p
	stored.Payments = slices.Clone(p.Payments)
	r.st.products = append(r.st.products, stored)
	return nil
}

func (r *loanRepository) CreateClientLoan(_ context.Context, l *loan.ClientLoan) error {
	if err := r.store.write("loan.create_client_loan"); err != nil {
		return err
	}
	r.st.loans = append(r.st.loans, *l)
	return nil
}

func (r *loanRepository) ListClientLoans(_ context.Context, clientID uuid.UUID) ([]*loan.ClientLoan, error) {
	return filter(r.st.loans, func(x loan.ClientLoan) bool { return x.ClientID == clientID }), nil
}

type transactionRepository struct {
	store *Store
	st    *state
}

func (r *transactionRepository) Create(_ context.Context, tx *account.Transaction) error {
	if err := r.store.write("transaction.create"); err != nil {
		return err
	}
	r.st.transactions = append(r.st.transactions, *tx)
	return nil
}

func (r *transactionRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	return filter(r.st.transactions, func(x account.Transaction) bool { return x.AccountID == accountID }), nil
}

// find returns a copy of the first match so callers cannot mutate stored data.
func find[T any](items []T, match func(T) bool) (*T, error) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	found := items[i]
	return &found, nil
}

func filter[T any](items []T, match func(T) bool) []*T {
	out := make([]*T, 0)
	for _, x := range items {
		x := x
		if match(x) {
			out = append(out, &x)
		}
	}
	return out
}

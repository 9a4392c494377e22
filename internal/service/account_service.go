package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/store"
)

// AccountInput is an account as typed by the user.
// InitialBalance uses the loose input format ("10", "10,5", "10,50"); empty means zero.
type AccountInput struct {
	Name           string
	Type           string
	InitialBalance string
}

type AccountService struct {
	repo store.Repository
}

func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{repo: repo}
}

func (as *AccountService) Create(ctx context.Context, input AccountInput) (*ledger.Account, error) {
	acc, err := buildAccount(uuid.NewString(), input)
	if err != nil {
		return nil, err
	}

	if err := as.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return &acc, nil
}

// Update replaces name, type and initial balance of an existing account.
func (as *AccountService) Update(ctx context.Context, id string, input AccountInput) (*ledger.Account, error) {
	acc, err := buildAccount(id, input)
	if err != nil {
		return nil, err
	}

	if err := as.repo.UpdateAccount(ctx, acc); err != nil {
		return nil, notFound(err, "account", id)
	}

	return &acc, nil
}

// Delete removes an account that no transaction references.
func (as *AccountService) Delete(ctx context.Context, id string) error {
	err := as.repo.DeleteAccount(ctx, id)
	if errors.Is(err, store.ErrConstraintViolation) {
		return apperr.NewValidation("account", "account '%s' still has transactions, delete them first", id)
	}
	return notFound(err, "account", id)
}

func (as *AccountService) Get(ctx context.Context, id string) (*ledger.Account, error) {
	acc, err := as.repo.FindAccountByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "account", id)
	}
	return acc, nil
}

// Resolve finds an account by id or by a unique id prefix, as shown in lists.
func (as *AccountService) Resolve(ctx context.Context, ref string) (*ledger.Account, error) {
	ref = strings.TrimSpace(ref)
	acc, err := as.repo.FindAccountByID(ctx, ref)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	accounts, err := as.List(ctx)
	if err != nil {
		return nil, err
	}
	match, err := uniquePrefix(accounts, ref, "account", func(a ledger.Account) string { return a.ID })
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (as *AccountService) List(ctx context.Context) ([]ledger.Account, error) {
	accounts, err := as.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Names maps account ids to display names.
func (as *AccountService) Names(ctx context.Context) (map[string]string, error) {
	accounts, err := as.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		names[acc.ID] = acc.Name
	}
	return names, nil
}

func buildAccount(id string, input AccountInput) (ledger.Account, error) {
	var errs []error

	name := strings.TrimSpace(input.Name)
	if err := ledger.ValidateAccountName(name); err != nil {
		errs = append(errs, err)
	}

	accType, err := ledger.ParseAccountType(input.Type)
	if err != nil {
		errs = append(errs, err)
	}

	balance := money.Zero
	if raw := strings.TrimSpace(input.InitialBalance); raw != "" {
		balance, err = money.ParseInput(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("initial balance: %w", err))
		}
	}

	if len(errs) > 0 {
		return ledger.Account{}, errors.Join(errs...)
	}

	acc := ledger.Account{
		ID:             id,
		Name:           name,
		Type:           accType,
		InitialBalance: balance,
	}
	if err := acc.Validate(); err != nil {
		return ledger.Account{}, err
	}
	return acc, nil
}

// uniquePrefix returns the single item whose id starts with ref.
func uniquePrefix[T any](items []T, ref, entity string, id func(T) string) (T, error) {
	var (
		zero    T
		matches []T
	)
	if ref != "" {
		for _, it := range items {
			if strings.HasPrefix(id(it), ref) {
				matches = append(matches, it)
			}
		}
	}

	switch len(matches) {
	case 0:
		return zero, apperr.NewNotFound(entity, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, apperr.NewValidation("id", "'%s' matches %d %ss, type more characters", ref, len(matches), entity)
	}
}

// notFound turns the store's missing-row sentinel into a NotFoundError.
func notFound(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		return apperr.NewNotFound(entity, id)
	}
	return err
}

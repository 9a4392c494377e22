package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/store"
)

type TransactionService struct {
	repo store.Repository
}

func NewTransactionService(repo store.Repository) *TransactionService {
	return &TransactionService{repo: repo}
}

// Create validates input, checks that the referenced accounts exist and stores
// the transaction in one SQL transaction.
func (ts *TransactionService) Create(ctx context.Context, input TransactionInput) (*ledger.Transaction, error) {
	tx, err := buildTransaction(uuid.NewString(), input)
	if err != nil {
		return nil, err
	}

	err = ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		if err := ensureAccounts(ctx, repo, tx); err != nil {
			return err
		}
		return repo.CreateTransaction(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (ts *TransactionService) CreateExternal(ctx context.Context, date, description, amount, accountID, kind string) (*ledger.Transaction, error) {
	return ts.Create(ctx, TransactionInput{
		Kind:         ledger.External,
		Date:         date,
		Description:  description,
		Amount:       amount,
		AccountID:    accountID,
		ExternalKind: kind,
	})
}

func (ts *TransactionService) CreateTransfer(ctx context.Context, date, description, amount, fromID, toID string) (*ledger.Transaction, error) {
	return ts.Create(ctx, TransactionInput{
		Kind:          ledger.Transfer,
		Date:          date,
		Description:   description,
		Amount:        amount,
		FromAccountID: fromID,
		ToAccountID:   toID,
	})
}

// Update replaces the whole record; the id is kept.
func (ts *TransactionService) Update(ctx context.Context, id string, input TransactionInput) (*ledger.Transaction, error) {
	tx, err := buildTransaction(id, input)
	if err != nil {
		return nil, err
	}

	err = ts.repo.ExecTx(ctx, func(repo store.Repository) error {
		if err := ensureAccounts(ctx, repo, tx); err != nil {
			return err
		}
		return notFound(repo.UpdateTransaction(ctx, tx), "transaction", id)
	})
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (ts *TransactionService) Delete(ctx context.Context, id string) error {
	return notFound(ts.repo.DeleteTransaction(ctx, id), "transaction", id)
}

func (ts *TransactionService) Get(ctx context.Context, id string) (*ledger.Transaction, error) {
	tx, err := ts.repo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return tx, nil
}

// Resolve finds a transaction by id or by a unique id prefix.
func (ts *TransactionService) Resolve(ctx context.Context, ref string) (*ledger.Transaction, error) {
	ref = strings.TrimSpace(ref)
	tx, err := ts.repo.FindTransactionByID(ctx, ref)
	if err == nil {
		return tx, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	txs, err := ts.repo.FindAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	match, err := uniquePrefix(txs, ref, "transaction", func(t ledger.Transaction) string { return t.ID })
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetDetail returns the transaction with the names of its accounts. A name is
// left empty when the referenced account no longer resolves.
func (ts *TransactionService) GetDetail(ctx context.Context, id string) (*TransactionDetail, error) {
	tx, err := ts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &TransactionDetail{Transaction: *tx}
	lookup := func(accountID string) string {
		acc, err := ts.repo.FindAccountByID(ctx, accountID)
		if err != nil {
			return ""
		}
		return acc.Name
	}

	switch tx.Kind {
	case ledger.External:
		detail.AccountName = lookup(tx.AccountID)
	case ledger.Transfer:
		detail.FromAccountName = lookup(tx.FromAccountID)
		detail.ToAccountName = lookup(tx.ToAccountID)
	}

	return detail, nil
}

// List returns up to limit transactions dated inside period, newest first.
// limit <= 0 means all.
func (ts *TransactionService) List(ctx context.Context, period ledger.Period, limit int) ([]ledger.Transaction, error) {
	txs, err := ts.repo.FindAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return newestFirst(within(txs, period), limit), nil
}

// ListByAccount returns the transactions touching accountID dated inside
// period, newest first.
func (ts *TransactionService) ListByAccount(ctx context.Context, accountID string, period ledger.Period, limit int) ([]ledger.Transaction, error) {
	if _, err := ts.repo.FindAccountByID(ctx, accountID); err != nil {
		return nil, notFound(err, "account", accountID)
	}

	txs, err := ts.repo.FindTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return newestFirst(within(txs, period), limit), nil
}

func within(txs []ledger.Transaction, period ledger.Period) []ledger.Transaction {
	return slices.DeleteFunc(txs, func(tx ledger.Transaction) bool {
		return !period.Contains(tx.Date)
	})
}

func newestFirst(txs []ledger.Transaction, limit int) []ledger.Transaction {
	slices.Reverse(txs)
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}

func ensureAccounts(ctx context.Context, repo store.AccountRepository, tx ledger.Transaction) error {
	for _, id := range tx.AccountIDs() {
		if _, err := repo.FindAccountByID(ctx, id); err != nil {
			return notFound(err, "account", id)
		}
	}
	return nil
}

func buildTransaction(id string, input TransactionInput) (ledger.Transaction, error) {
	var errs []error

	date := ledger.Today()
	if raw := strings.TrimSpace(input.Date); raw != "" {
		d, err := ledger.ParseDate(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("date: %w", err))
		}
		date = d
	}

	value, err := money.ParseInput(input.Amount)
	if err != nil {
		errs = append(errs, fmt.Errorf("amount: %w", err))
	}

	description := strings.TrimSpace(input.Description)

	var tx ledger.Transaction
	switch input.Kind {
	case ledger.External:
		kind, err := ledger.ParseExternalKind(input.ExternalKind)
		if err != nil {
			errs = append(errs, err)
		}
		tx = ledger.NewExternal(id, date, description, value, strings.TrimSpace(input.AccountID), kind)
	case ledger.Transfer:
		tx = ledger.NewTransfer(id, date, description, value,
			strings.TrimSpace(input.FromAccountID), strings.TrimSpace(input.ToAccountID))
	default:
		errs = append(errs, apperr.NewValidation("kind", "unknown transaction kind '%s'", input.Kind))
	}

	if len(errs) > 0 {
		return ledger.Transaction{}, errors.Join(errs...)
	}

	if err := tx.Validate(); err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

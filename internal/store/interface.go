package store

import (
	"context"

	"github.com/hance08/bolso/internal/ledger"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, acc ledger.Account) error
	UpdateAccount(ctx context.Context, acc ledger.Account) error
	DeleteAccount(ctx context.Context, id string) error
	FindAccountByID(ctx context.Context, id string) (*ledger.Account, error)
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx ledger.Transaction) error
	UpdateTransaction(ctx context.Context, tx ledger.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	FindTransactionByID(ctx context.Context, id string) (*ledger.Transaction, error)
	// FindAllTransactions returns every transaction ordered by date, then insertion order.
	FindAllTransactions(ctx context.Context) ([]ledger.Transaction, error)
	FindTransactionsByAccount(ctx context.Context, accountID string) ([]ledger.Transaction, error)
}

type Repository interface {
	AccountRepository
	TransactionRepository

	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}

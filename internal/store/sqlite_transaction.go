package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/bolso/internal/ledger"
)

const transactionColumns = `id, kind, date, description, value,
        account_id, external_kind, from_account_id, to_account_id`

func (s *Store) CreateTransaction(ctx context.Context, tx ledger.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO transactions (`+transactionColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
    `, transactionArgs(tx)...)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", classify(err))
	}

	s.changed()
	return nil
}

// UpdateTransaction replaces the whole record identified by tx.ID.
func (s *Store) UpdateTransaction(ctx context.Context, tx ledger.Transaction) error {
	args := transactionArgs(tx)
	byID := append(args[1:len(args):len(args)], args[0])
	result, err := s.db.ExecContext(ctx, `
        UPDATE transactions
        SET kind = ?, date = ?, description = ?, value = ?,
            account_id = ?, external_kind = ?, from_account_id = ?, to_account_id = ?
        WHERE id = ?
    `, byID...)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", classify(err))
	}

	if err := expectOneRow(result, "transaction", tx.ID); err != nil {
		return err
	}

	s.changed()
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := expectOneRow(result, "transaction", id); err != nil {
		return err
	}

	s.changed()
	return nil
}

func (s *Store) FindTransactionByID(ctx context.Context, id string) (*ledger.Transaction, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction '%s': %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) FindAllTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+transactionColumns+`
        FROM transactions
        ORDER BY date, seq
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (s *Store) FindTransactionsByAccount(ctx context.Context, accountID string) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+transactionColumns+`
        FROM transactions
        WHERE account_id = ? OR from_account_id = ? OR to_account_id = ?
        ORDER BY date, seq
    `, accountID, accountID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account '%s': %w", accountID, err)
	}
	return collectTransactions(rows)
}

func transactionArgs(tx ledger.Transaction) []any {
	return []any{
		tx.ID,
		string(tx.Kind),
		tx.Date,
		tx.Description,
		tx.Value,
		nullable(tx.AccountID),
		nullable(string(tx.ExternalKind)),
		nullable(tx.FromAccountID),
		nullable(tx.ToAccountID),
	}
}

func collectTransactions(rows *sql.Rows) ([]ledger.Transaction, error) {
	defer func() {
		_ = rows.Close()
	}()

	var transactions []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(row rowScanner) (*ledger.Transaction, error) {
	tx := &ledger.Transaction{}
	var (
		kind                       string
		accountID, externalKind    sql.NullString
		fromAccountID, toAccountID sql.NullString
	)

	err := row.Scan(
		&tx.ID, &kind, &tx.Date, &tx.Description, &tx.Value,
		&accountID, &externalKind, &fromAccountID, &toAccountID,
	)
	if err != nil {
		return nil, err
	}

	tx.Kind = ledger.TransactionKind(kind)
	tx.AccountID = accountID.String
	tx.ExternalKind = ledger.ExternalKind(externalKind.String)
	tx.FromAccountID = fromAccountID.String
	tx.ToAccountID = toAccountID.String

	return tx, nil
}

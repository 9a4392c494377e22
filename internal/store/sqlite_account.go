package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/bolso/internal/ledger"
)

const accountColumns = "id, name, type, initial_balance"

func (s *Store) CreateAccount(ctx context.Context, acc ledger.Account) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO accounts (id, name, type, initial_balance)
        VALUES (?, ?, ?, ?);
    `, acc.ID, acc.Name, string(acc.Type), acc.InitialBalance)
	if err != nil {
		return fmt.Errorf("failed to create account '%s': %w", acc.Name, classify(err))
	}

	s.changed()
	return nil
}

func (s *Store) UpdateAccount(ctx context.Context, acc ledger.Account) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE accounts
        SET name = ?, type = ?, initial_balance = ?
        WHERE id = ?
    `, acc.Name, string(acc.Type), acc.InitialBalance, acc.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", classify(err))
	}

	if err := expectOneRow(result, "account", acc.ID); err != nil {
		return err
	}

	s.changed()
	return nil
}

// DeleteAccount removes an account. It fails with ErrConstraintViolation while
// transactions still reference it.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", classify(err))
	}

	if err := expectOneRow(result, "account", id); err != nil {
		return err
	}

	s.changed()
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, id string) (*ledger.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s': %w", id, err)
	}

	return acc, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+accountColumns+" FROM accounts ORDER BY name, seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []ledger.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *acc)
	}

	return accounts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*ledger.Account, error) {
	acc := &ledger.Account{}
	var accType string

	if err := row.Scan(&acc.ID, &acc.Name, &accType, &acc.InitialBalance); err != nil {
		return nil, err
	}

	acc.Type = ledger.AccountType(accType)
	return acc, nil
}

func expectOneRow(result sql.Result, entity, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s '%s': %w", entity, id, ErrRecordNotFound)
	}

	return nil
}

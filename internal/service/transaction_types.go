package service

import (
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
)

// TransactionInput is a transaction as typed by the user. Kind selects which
// account fields are read.
type TransactionInput struct {
	Kind        ledger.TransactionKind
	Date        string // YYYY-MM-DD, empty means today
	Description string
	Amount      string // loose input, e.g. "10,50"

	// External
	AccountID    string
	ExternalKind string

	// Transfer
	FromAccountID string
	ToAccountID   string
}

// TransactionDetail is a transaction with the names of the accounts it touches.
type TransactionDetail struct {
	ledger.Transaction

	AccountName     string
	FromAccountName string
	ToAccountName   string
}

// ToInput turns a stored transaction back into editable input.
func ToInput(tx ledger.Transaction) TransactionInput {
	return TransactionInput{
		Kind:          tx.Kind,
		Date:          tx.Date.String(),
		Description:   tx.Description,
		Amount:        money.FormatInput(tx.Value),
		AccountID:     tx.AccountID,
		ExternalKind:  string(tx.ExternalKind),
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
	}
}

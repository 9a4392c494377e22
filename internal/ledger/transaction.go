package ledger

import (
	"strings"

	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/money"
)

// TransactionKind discriminates the two transaction variants.
type TransactionKind string

const (
	External TransactionKind = "external"
	Transfer TransactionKind = "transfer"
)

// ExternalKind tells whether an external transaction brings money in or out.
type ExternalKind string

const (
	Income  ExternalKind = "income"
	Expense ExternalKind = "expense"
)

// ParseExternalKind accepts income/expense and the labels "Receita"/"Despesa".
func ParseExternalKind(s string) (ExternalKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "receita":
		return Income, nil
	case "expense", "despesa":
		return Expense, nil
	default:
		return "", apperr.NewValidation("kind", "invalid transaction kind '%s' (must be income or expense)", s)
	}
}

func (k ExternalKind) Valid() bool { return k == Income || k == Expense }

// Label is the capitalized name shown to users.
func (k ExternalKind) Label() string {
	switch k {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return string(k)
	}
}

// Transaction is either an External posting on one account or a Transfer
// between two. Kind says which set of fields is meaningful.
//
// Value is always a non-negative magnitude; the sign is derived from Kind,
// ExternalKind and the account type when a balance is computed.
type Transaction struct {
	ID          string
	Kind        TransactionKind
	Date        Date
	Description string
	Value       money.Amount

	// External only.
	AccountID    string
	ExternalKind ExternalKind

	// Transfer only.
	FromAccountID string
	ToAccountID   string
}

// NewExternal builds an income or expense on accountID.
func NewExternal(id string, date Date, description string, value money.Amount, accountID string, kind ExternalKind) Transaction {
	return Transaction{
		ID:           id,
		Kind:         External,
		Date:         date,
		Description:  description,
		Value:        value,
		AccountID:    accountID,
		ExternalKind: kind,
	}
}

// NewTransfer builds a transfer from one account to another.
func NewTransfer(id string, date Date, description string, value money.Amount, fromID, toID string) Transaction {
	return Transaction{
		ID:            id,
		Kind:          Transfer,
		Date:          date,
		Description:   description,
		Value:         value,
		FromAccountID: fromID,
		ToAccountID:   toID,
	}
}

func (t Transaction) IsExternal() bool { return t.Kind == External }
func (t Transaction) IsTransfer() bool { return t.Kind == Transfer }

// Touches reports whether the transaction posts to accountID.
func (t Transaction) Touches(accountID string) bool {
	switch t.Kind {
	case External:
		return t.AccountID == accountID
	case Transfer:
		return t.FromAccountID == accountID || t.ToAccountID == accountID
	default:
		return false
	}
}

// AccountIDs returns the ids of the accounts the transaction references.
func (t Transaction) AccountIDs() []string {
	switch t.Kind {
	case External:
		return []string{t.AccountID}
	case Transfer:
		return []string{t.FromAccountID, t.ToAccountID}
	default:
		return nil
	}
}

// Validate checks the invariants required before a transaction is written.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return apperr.NewValidation("id", "transaction id can't be empty")
	}
	if t.Date.IsZero() {
		return apperr.NewValidation("date", "transaction date is required")
	}
	if !t.Value.IsPositive() {
		return apperr.NewValidation("value", "amount must be greater than zero")
	}

	switch t.Kind {
	case External:
		if t.AccountID == "" {
			return apperr.NewValidation("account", "account is required")
		}
		if !t.ExternalKind.Valid() {
			return apperr.NewValidation("kind", "invalid transaction kind '%s'", t.ExternalKind)
		}
	case Transfer:
		if t.FromAccountID == "" || t.ToAccountID == "" {
			return apperr.NewValidation("account", "both source and destination accounts are required")
		}
		if t.FromAccountID == t.ToAccountID {
			return apperr.NewValidation("to", "source and destination accounts must differ")
		}
	default:
		return apperr.NewValidation("kind", "unknown transaction variant '%s'", t.Kind)
	}

	return nil
}

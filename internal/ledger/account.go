package ledger

import (
	"fmt"
	"strings"

	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/money"
)

// MaxNameLen bounds account names.
const MaxNameLen = 100

// AccountType decides the sign convention applied to every posting on an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
)

// AccountTypes lists the valid account types in display order.
var AccountTypes = []AccountType{Asset, Liability}

// ParseAccountType accepts asset/liability, their initials and the labels
// "Ativo"/"Passivo" used by older exports.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset", "a", "ativo":
		return Asset, nil
	case "liability", "l", "passivo":
		return Liability, nil
	default:
		return "", apperr.NewValidation("type", "invalid account type '%s' (must be asset or liability)", s)
	}
}

func (t AccountType) Valid() bool { return t == Asset || t == Liability }

// Label is the capitalized name shown to users.
func (t AccountType) Label() string {
	switch t {
	case Asset:
		return "Asset"
	case Liability:
		return "Liability"
	default:
		return string(t)
	}
}

// Account is a read-only snapshot of a user account.
type Account struct {
	ID             string
	Name           string
	Type           AccountType
	InitialBalance money.Amount
}

// Validate checks the invariants required before an account is written.
func (a Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return apperr.NewValidation("id", "account id can't be empty")
	}
	return ValidateAccountFields(a.Name, a.Type)
}

// ValidateAccountFields checks user-editable account fields.
func ValidateAccountFields(name string, accType AccountType) error {
	if err := ValidateAccountName(name); err != nil {
		return err
	}
	if !accType.Valid() {
		return apperr.NewValidation("type", "invalid account type '%s'", accType)
	}
	return nil
}

func (a Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Type.Label())
}

// ValidateAccountName checks a display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.NewValidation("name", "account name can't be empty")
	}
	if len(name) > MaxNameLen {
		return apperr.NewValidation("name", "account name too long (max %d characters)", MaxNameLen)
	}
	return nil
}

// Package validation holds the field validators shared by interactive prompts
// and command flags. Each returns the message shown next to the field.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
)

// AccountName rejects blank and over-long names.
func AccountName(s string) error {
	return plain(ledger.ValidateAccountName(strings.TrimSpace(s)))
}

func AccountType(s string) error {
	_, err := ledger.ParseAccountType(s)
	return plain(err)
}

// Amount accepts a strictly positive value in the loose input format.
func Amount(s string) error {
	a, err := money.ParseInput(s)
	if err != nil {
		return fmt.Errorf("use digits with an optional comma and up to two decimals, e.g. 10,50")
	}
	if !a.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// InitialBalance is like Amount but allows empty (zero) and zero.
func InitialBalance(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := money.ParseInput(s); err != nil {
		return fmt.Errorf("use digits with an optional comma and up to two decimals, e.g. 10,50")
	}
	return nil
}

// Date accepts YYYY-MM-DD or empty for today.
func Date(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := ledger.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use the YYYY-MM-DD format")
	}
	return nil
}

func Month(s string) error {
	if _, err := ledger.ParseMonth(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use the YYYY-MM format")
	}
	return nil
}

func ExternalKind(s string) error {
	_, err := ledger.ParseExternalKind(s)
	return plain(err)
}

// Required rejects blank input.
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// plain drops the field prefix: a prompt already shows which field failed.
func plain(err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return errors.New(ve.Message)
	}
	return err
}

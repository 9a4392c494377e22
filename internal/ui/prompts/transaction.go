package prompts

import (
	"fmt"

	"github.com/hance08/bolso/internal/constants"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/validation"
)

// PromptTransactionMode prompts for expense, income or transfer.
func PromptTransactionMode(current string) (string, error) {
	options := []Option{
		{Label: "Record Expense", Value: constants.ModeExpense},
		{Label: "Record Income", Value: constants.ModeIncome},
		{Label: "Transfer", Value: constants.ModeTransfer},
	}

	if current == "" {
		current = constants.ModeExpense
	}
	return PromptSelect("Choose the transaction type:", options, current)
}

// PromptTransactionDate prompts for transaction date
func PromptTransactionDate(current string) (string, error) {
	if current == "" {
		current = ledger.Today().String()
	}
	return PromptDate("Transaction Date (YYYY-MM-DD):", current, "Press Enter to keep "+current)
}

// PromptAccountSelection prompts for one account. balances, when non-nil,
// decorates each option with its formatted balance. exclude hides one id.
func PromptAccountSelection(accounts []ledger.Account, message, current, exclude string, balances map[string]string) (string, error) {
	var options []Option
	for _, acc := range accounts {
		if acc.ID == exclude {
			continue
		}

		label := acc.String()
		if bal, ok := balances[acc.ID]; ok {
			label = fmt.Sprintf("%s (Balance: %s)", label, bal)
		}
		options = append(options, Option{Label: label, Value: acc.ID})
	}

	if len(options) == 0 {
		return "", fmt.Errorf("no available accounts, create one with 'bolso account create'")
	}
	if current == "" {
		current = options[0].Value
	}

	return PromptSelect(message, options, current)
}

// PromptTransaction walks through the transaction wizard starting from initial.
func PromptTransaction(initial service.TransactionInput, accounts []ledger.Account, balances map[string]string) (service.TransactionInput, error) {
	input := initial

	mode, err := PromptTransactionMode(modeOf(initial))
	if err != nil {
		return input, err
	}

	switch mode {
	case constants.ModeTransfer:
		input.Kind = ledger.Transfer
		input.FromAccountID, err = PromptAccountSelection(accounts, "Transfer from:", input.FromAccountID, "", balances)
		if err != nil {
			return input, err
		}
		input.ToAccountID, err = PromptAccountSelection(accounts, "Transfer to:", input.ToAccountID, input.FromAccountID, balances)
		if err != nil {
			return input, err
		}
	default:
		input.Kind = ledger.External
		input.ExternalKind = string(ledger.Expense)
		message := "Paid from account:"
		if mode == constants.ModeIncome {
			input.ExternalKind = string(ledger.Income)
			message = "Received into account:"
		}
		input.AccountID, err = PromptAccountSelection(accounts, message, input.AccountID, "", balances)
		if err != nil {
			return input, err
		}
	}

	if input.Date, err = PromptTransactionDate(input.Date); err != nil {
		return input, err
	}
	if input.Description, err = PromptDescription("Description:", input.Description, false); err != nil {
		return input, err
	}
	input.Amount, err = PromptAmount("Amount:", "e.g. 10, 10,5 or 10,50", input.Amount, validation.Amount)
	if err != nil {
		return input, err
	}

	return input, nil
}

func modeOf(input service.TransactionInput) string {
	switch {
	case input.Kind == ledger.Transfer:
		return constants.ModeTransfer
	case input.ExternalKind == string(ledger.Income):
		return constants.ModeIncome
	default:
		return constants.ModeExpense
	}
}

package views

import (
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/pterm/pterm"
)

// RenderTransactionSaved summarizes a stored transaction and the balance
// change it makes on each account.
func RenderTransactionSaved(tx ledger.Transaction, accounts map[string]ledger.Account, format *money.Formatter, action string) error {
	pterm.DefaultSection.Println("Transaction Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"ID", tx.ID},
		{"Date", tx.Date.String()},
		{"Description", orDash(tx.Description)},
		{"Amount", format.Format(tx.Value, true)},
	}
	for _, p := range Postings(tx, accounts) {
		tableData = append(tableData, []string{p.Account, format.Format(p.Effect, true)})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Printf("Transaction %s successfully!\n", action)
	return nil
}

package views

import (
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/ui"
	"github.com/pterm/pterm"
)

func RenderTransactionDeletePreview(tx ledger.Transaction, format *money.Formatter) error {
	pterm.Warning.Printf("About to delete transaction %s:\n", shortID(tx.ID))

	deletionInfo := pterm.TableData{
		{"Date", tx.Date.String()},
		{"Description", orDash(tx.Description)},
		{"Amount", format.Format(tx.Value, true)},
	}

	if err := pterm.DefaultTable.WithData(deletionInfo).Render(); err != nil {
		return err
	}
	pterm.Warning.Println("This action cannot be undone!")
	return nil
}

func RenderTransactionDeleteSuccess(id string) {
	pterm.Success.Printf("Transaction %s deleted successfully\n", shortID(id))
	ui.Separator()
}

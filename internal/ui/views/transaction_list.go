package views

import (
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/pterm/pterm"
)

type TransactionListView struct {
	format *money.Formatter
	names  map[string]string
}

// NewTransactionListView renders transactions; names maps account ids to names.
func NewTransactionListView(format *money.Formatter, names map[string]string) *TransactionListView {
	return &TransactionListView{format: format, names: names}
}

func (v *TransactionListView) Render(transactions []ledger.Transaction, title string) error {
	if len(transactions) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Println(title)

	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Account", "Description", "Amount"},
	}

	for _, tx := range transactions {
		label, account := v.describe(tx)
		amount := v.format.Format(tx.Value, true)

		var colored func(a ...interface{}) string
		switch label {
		case ledger.Expense.Label():
			colored = pterm.Red
		case ledger.Income.Label():
			colored = pterm.Green
		default:
			colored = pterm.Blue
		}

		tableData = append(tableData, []string{
			shortID(tx.ID),
			tx.Date.String(),
			colored(label),
			colored(account),
			tx.Description,
			colored(amount),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(transactions))
	return nil
}

func (v *TransactionListView) describe(tx ledger.Transaction) (string, string) {
	if tx.IsTransfer() {
		return "Transfer", v.name(tx.FromAccountID) + " -> " + v.name(tx.ToAccountID)
	}
	return tx.ExternalKind.Label(), v.name(tx.AccountID)
}

func (v *TransactionListView) name(id string) string {
	if n, ok := v.names[id]; ok {
		return n
	}
	return shortID(id)
}

package views

import (
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/ui"
	"github.com/pterm/pterm"
)

// AccountRow is one account with its balance as of the listed period.
type AccountRow struct {
	Account ledger.Account
	Balance money.Amount
	Err     error
}

type AccountListView struct {
	format *money.Formatter
}

func NewAccountListView(format *money.Formatter) *AccountListView {
	return &AccountListView{format: format}
}

func (v *AccountListView) Render(rows []AccountRow, period ledger.Period) error {
	if len(rows) == 0 {
		pterm.Warning.Println("No accounts found, create one with 'bolso account create'")
		return nil
	}

	tableData := pterm.TableData{{"ID", "Name", "Type", "Balance"}}

	for _, row := range rows {
		acc := row.Account

		var coloredType string
		switch acc.Type {
		case ledger.Asset:
			coloredType = pterm.Green(acc.Type.Label())
		case ledger.Liability:
			coloredType = pterm.Red(acc.Type.Label())
		default:
			coloredType = acc.Type.Label()
		}

		balance := pterm.Gray("unavailable")
		if row.Err == nil {
			balance = ui.Signed(v.format.Format(row.Balance, true), row.Balance.Sign())
		}

		tableData = append(tableData, []string{shortID(acc.ID), acc.Name, coloredType, balance})
	}

	pterm.DefaultSection.Printf("Accounts as of %s", period.End)
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(rows))
	for _, row := range rows {
		if row.Err != nil {
			pterm.Warning.Printf("%s: %v\n", row.Account.Name, row.Err)
		}
	}
	return nil
}

// shortID keeps list tables narrow; commands accept any unique id prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package views

import (
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/ui"
	"github.com/pterm/pterm"
)

type AccountSummaryItem struct {
	Account ledger.Account
	Period  ledger.Period
	Balance money.Amount
}

func RenderAccountSummary(data AccountSummaryItem, format *money.Formatter) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("ID"), data.Account.ID},
		{pterm.Blue("Name"), data.Account.Name},
		{pterm.Blue("Type"), data.Account.Type.Label()},
		{pterm.Blue("Initial Balance"), format.Format(data.Account.InitialBalance, true)},
		{pterm.Blue("Balance"), ui.Signed(format.Format(data.Balance, true), data.Balance.Sign())},
		{pterm.Blue("As Of"), data.Period.End.String()},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

// RenderAccountSaved confirms a create or edit.
func RenderAccountSaved(acc ledger.Account, format *money.Formatter, action string) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), acc.ID},
		{pterm.Blue("Name"), acc.Name},
		{pterm.Blue("Type"), acc.Type.Label()},
		{pterm.Blue("Initial Balance"), format.Format(acc.InitialBalance, true)},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Printf("Account %s successfully!\n", action)
	return nil
}

func RenderAccountDeletePreview(acc ledger.Account, format *money.Formatter) error {
	pterm.Warning.Printf("About to delete account %s:\n", acc.Name)

	tableData := pterm.TableData{
		{"ID", acc.ID},
		{"Type", acc.Type.Label()},
		{"Initial Balance", format.Format(acc.InitialBalance, true)},
	}
	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Warning.Println("This action cannot be undone!")
	return nil
}

func RenderBalance(acc ledger.Account, period ledger.Period, balance money.Amount, format *money.Formatter) {
	text := ui.Signed(format.Format(balance, true), balance.Sign())
	pterm.Printf("%s %s as of %s: %s\n", pterm.Bold.Sprint(acc.Name), pterm.Gray("("+acc.Type.Label()+")"), period.End, text)
}

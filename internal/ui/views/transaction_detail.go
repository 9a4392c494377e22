package views

import (
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/ui"
	"github.com/pterm/pterm"
)

// Posting is the signed effect of a transaction on one account.
type Posting struct {
	Role    string
	Account string
	Effect  money.Amount
}

// Postings lists the accounts a transaction touches with the change it makes
// to each balance. Accounts missing from accounts are skipped.
func Postings(tx ledger.Transaction, accounts map[string]ledger.Account) []Posting {
	var out []Posting
	add := func(role, id string) {
		acc, ok := accounts[id]
		if !ok {
			return
		}
		out = append(out, Posting{Role: role, Account: acc.Name, Effect: ledger.Effect(acc, tx)})
	}

	if tx.IsTransfer() {
		add("source account", tx.FromAccountID)
		add("receiving account", tx.ToAccountID)
		return out
	}

	if tx.ExternalKind == ledger.Income {
		add("receiving account", tx.AccountID)
	} else {
		add("payment account", tx.AccountID)
	}
	return out
}

func RenderTransactionDetail(detail *service.TransactionDetail, accounts map[string]ledger.Account, format *money.Formatter) error {
	kind := "Transfer"
	if detail.IsExternal() {
		kind = detail.ExternalKind.Label()
	}

	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", detail.ID},
		{"Date", detail.Date.String()},
		{"Type", kind},
		{"Description", orDash(detail.Description)},
		{"Amount", format.Format(detail.Value, true)},
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Balance Effect")
	postingData := pterm.TableData{{"Account", "Role", "Effect"}}
	for _, p := range Postings(detail.Transaction, accounts) {
		postingData = append(postingData, []string{
			p.Account,
			p.Role,
			ui.Signed(format.Format(p.Effect, true), p.Effect.Sign()),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(postingData).
		Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

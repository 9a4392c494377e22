package transaction

import (
	"fmt"

	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/service"
	"github.com/spf13/cobra"
)

// entryFlags describe one transaction on the command line. An external
// transaction uses --account and --kind, a transfer --from and --to.
type entryFlags struct {
	Date        string
	Description string
	Amount      string
	Account     string
	Kind        string
	From        string
	To          string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Date, "date", "d", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&f.Description, "desc", "", "Description")
	cmd.Flags().StringVarP(&f.Amount, "amount", "a", "", "Amount, e.g. 10, 10,5 or 10,50")
	cmd.Flags().StringVar(&f.Account, "account", "", "Account of an income or expense")
	cmd.Flags().StringVarP(&f.Kind, "kind", "k", "", "income or expense")
	cmd.Flags().StringVar(&f.From, "from", "", "Source account of a transfer")
	cmd.Flags().StringVar(&f.To, "to", "", "Destination account of a transfer")
	cmd.MarkFlagsMutuallyExclusive("account", "from")
	cmd.MarkFlagsMutuallyExclusive("account", "to")
	cmd.MarkFlagsMutuallyExclusive("kind", "from")
	cmd.MarkFlagsMutuallyExclusive("kind", "to")
}

func (f *entryFlags) set(cmd *cobra.Command) bool {
	for _, name := range []string{"date", "desc", "amount", "account", "kind", "from", "to"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply overlays the flags that were set on base. Account references are
// resolved by the caller.
func (f *entryFlags) apply(cmd *cobra.Command, base service.TransactionInput) (service.TransactionInput, error) {
	in := base
	changed := cmd.Flags().Changed

	if changed("date") {
		in.Date = f.Date
	}
	if changed("desc") {
		in.Description = f.Description
	}
	if changed("amount") {
		in.Amount = f.Amount
	}

	switch {
	case changed("from") || changed("to"):
		if in.Kind != ledger.Transfer {
			in.FromAccountID, in.ToAccountID = "", ""
		}
		in.Kind = ledger.Transfer
		in.AccountID, in.ExternalKind = "", ""
		if changed("from") {
			in.FromAccountID = f.From
		}
		if changed("to") {
			in.ToAccountID = f.To
		}
	case changed("account") || changed("kind"):
		if in.Kind != ledger.External {
			in.AccountID, in.ExternalKind = "", ""
		}
		in.Kind = ledger.External
		in.FromAccountID, in.ToAccountID = "", ""
		if changed("account") {
			in.AccountID = f.Account
		}
		if changed("kind") {
			in.ExternalKind = f.Kind
		}
	}

	if in.Kind == "" {
		return in, fmt.Errorf("use --account and --kind for income or expense, or --from and --to for a transfer")
	}
	return in, nil
}

package account

import (
	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Type   string
	Period cmdutil.PeriodFlags
}

type ListCommandRunner struct {
	app   *app.App
	flags *listFlags
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts with their balances",
		Long: `List all accounts with their balances as of the end of a period.
Balances are running totals: transactions before the period start count too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Filter accounts by type (asset, liability)")
	flags.Period.Bind(cmd)

	return cmd
}

func (r *ListCommandRunner) Run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	period, err := r.flags.Period.Period(ledger.Today())
	if err != nil {
		return err
	}

	accounts, err := r.app.Service.Account.List(ctx)
	if err != nil {
		return err
	}

	if r.flags.Type != "" {
		accType, err := ledger.ParseAccountType(r.flags.Type)
		if err != nil {
			return err
		}
		accounts = filterByType(accounts, accType)
	}

	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.ID)
	}

	results, err := r.app.Service.Balance.Balances(ctx, ids, period)
	if err != nil {
		return err
	}

	rows := make([]views.AccountRow, 0, len(accounts))
	for _, acc := range accounts {
		res := results[acc.ID]
		rows = append(rows, views.AccountRow{Account: acc, Balance: res.Balance, Err: res.Err})
	}

	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}
	return views.NewAccountListView(format).Render(rows, period)
}

func filterByType(accounts []ledger.Account, accType ledger.AccountType) []ledger.Account {
	var filtered []ledger.Account
	for _, acc := range accounts {
		if acc.Type == accType {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}

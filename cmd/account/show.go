package account

import (
	"fmt"

	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/constants"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type showFlags struct {
	Limit  int
	Period cmdutil.PeriodFlags
}

type ShowCommandRunner struct {
	app   *app.App
	flags *showFlags
}

func NewShowCmd(a *app.App) *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show <account-id>",
		Short: "Show an account, its balance and its recent transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd, args)
		},
	}

	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", constants.DefaultListLimit, "Maximum number of transactions to display")
	flags.Period.Bind(cmd)

	return cmd
}

func (r *ShowCommandRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	period, err := r.flags.Period.Period(ledger.Today())
	if err != nil {
		return err
	}

	acc, err := r.app.Service.Account.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	balance, err := r.app.Service.Balance.Balance(ctx, acc.ID, period)
	if err != nil {
		return err
	}

	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}

	summary := views.AccountSummaryItem{Account: *acc, Period: period, Balance: balance}
	if err := views.RenderAccountSummary(summary, format); err != nil {
		return err
	}

	upToEnd := ledger.Period{Start: ledger.AllTime().Start, End: period.End}
	txs, err := r.app.Service.Transaction.ListByAccount(ctx, acc.ID, upToEnd, r.flags.Limit)
	if err != nil {
		return err
	}
	names, err := r.app.Service.Account.Names(ctx)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Transactions of %s up to %s (limit: %d)", acc.Name, period.End, r.flags.Limit)
	return views.NewTransactionListView(format, names).Render(txs, title)
}

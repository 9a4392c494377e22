package cmd

import (
	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type balanceRunner struct {
	app    *app.App
	period *cmdutil.PeriodFlags
}

func NewBalanceCmd(a *app.App) *cobra.Command {
	period := &cmdutil.PeriodFlags{}

	cmd := &cobra.Command{
		Use:     "balance <account-id>...",
		Aliases: []string{"bal"},
		Short:   "Show account balances as of the end of a period",
		Long: `Show the balance of one or more accounts as of the end of a period.

The balance is a running total from the account's initial balance through the
period end: transactions dated before the period start are included, those
after the period end are not.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &balanceRunner{
				app:    a,
				period: period,
			}
			return runner.Run(cmd, args)
		},
	}

	period.Bind(cmd)

	return cmd
}

func (r *balanceRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	period, err := r.period.Period(ledger.Today())
	if err != nil {
		return err
	}
	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}

	accounts := make([]ledger.Account, 0, len(args))
	ids := make([]string, 0, len(args))
	for _, ref := range args {
		acc, err := r.app.Service.Account.Resolve(ctx, ref)
		if err != nil {
			return err
		}
		accounts = append(accounts, *acc)
		ids = append(ids, acc.ID)
	}

	if len(ids) == 1 {
		balance, err := r.app.Service.Balance.Balance(ctx, ids[0], period)
		if err != nil {
			return err
		}
		views.RenderBalance(accounts[0], period, balance, format)
		return nil
	}

	results, err := r.app.Service.Balance.Balances(ctx, ids, period)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		res := results[acc.ID]
		if res.Err != nil {
			return res.Err
		}
		views.RenderBalance(acc, period, res.Balance, format)
	}
	return nil
}

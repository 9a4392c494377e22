package transaction

import (
	"fmt"

	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/constants"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Account string
	Limit   int
	Period  cmdutil.PeriodFlags
}

type listRunner struct {
	app   *app.App
	flags *listFlags
}

func NewListCmd(a *app.App) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List recent transactions",
		Long: `List recent transactions, newest first.

This command displays a table of transactions with their date, type,
accounts, description and amount. --month or --from/--to narrow the list
to a date range; without them every date is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVar(&flags.Account, "account", "", "Only transactions touching this account")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", constants.DefaultListLimit, "Maximum number of transactions to display (0 for all)")
	flags.Period.Bind(cmd)

	return cmd
}

func (r *listRunner) Run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	period, err := r.flags.Period.Window(ledger.Today())
	if err != nil {
		return err
	}

	var (
		transactions []ledger.Transaction
		title        = fmt.Sprintf("Showing recent transactions (limit: %d)", r.flags.Limit)
	)
	if period != ledger.AllTime() {
		title = fmt.Sprintf("Showing transactions from %s to %s (limit: %d)", period.Start, period.End, r.flags.Limit)
	}

	if r.flags.Account != "" {
		acc, err := r.app.Service.Account.Resolve(ctx, r.flags.Account)
		if err != nil {
			return err
		}
		transactions, err = r.app.Service.Transaction.ListByAccount(ctx, acc.ID, period, r.flags.Limit)
		if err != nil {
			return err
		}
		title = fmt.Sprintf("Showing transactions of %s (limit: %d)", acc.Name, r.flags.Limit)
	} else {
		transactions, err = r.app.Service.Transaction.List(ctx, period, r.flags.Limit)
		if err != nil {
			return err
		}
	}

	names, err := r.app.Service.Account.Names(ctx)
	if err != nil {
		return err
	}
	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}

	return views.NewTransactionListView(format, names).Render(transactions, title)
}

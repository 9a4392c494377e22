package transaction

import (
	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type ShowCommandRunner struct {
	app *app.App
}

func NewShowCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				app: a,
			}
			return runner.Run(cmd, args)
		},
	}
}

func (r *ShowCommandRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tx, err := r.app.Service.Transaction.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	detail, err := r.app.Service.Transaction.GetDetail(ctx, tx.ID)
	if err != nil {
		return err
	}

	byID, _, err := cmdutil.AccountsByID(ctx, r.app)
	if err != nil {
		return err
	}
	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}

	return views.RenderTransactionDetail(detail, byID, format)
}

package transaction

import (
	"context"
	"fmt"

	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/ui/prompts"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type AddCommandRunner struct {
	app   *app.App
	flags *entryFlags
}

func NewAddCmd(a *app.App) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income, an expense or a transfer",
		Long: `Record a transaction. Without flags an interactive wizard is shown.

Examples:
  bolso add --account <id> --kind expense --amount 42,90 --desc groceries
  bolso add --from <id> --to <id> --amount 500 --date 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &AddCommandRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	flags.bind(cmd)

	return cmd
}

func (r *AddCommandRunner) Run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	byID, accounts, err := cmdutil.AccountsByID(ctx, r.app)
	if err != nil {
		return err
	}
	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}

	var input service.TransactionInput
	if r.flags.set(cmd) {
		if input, err = r.flags.apply(cmd, input); err != nil {
			return err
		}
		if input, err = resolveAccounts(ctx, r.app, input); err != nil {
			return err
		}
	} else {
		if !cmdutil.Interactive() {
			return fmt.Errorf("flags are required when not running in a terminal, see 'bolso add --help'")
		}
		balances := cmdutil.FormattedBalances(ctx, r.app, accounts, format)
		if input, err = prompts.PromptTransaction(input, accounts, balances); err != nil {
			return err
		}
	}

	tx, err := r.app.Service.Transaction.Create(ctx, input)
	if err != nil {
		return err
	}

	return views.RenderTransactionSaved(*tx, byID, format, "recorded")
}

// resolveAccounts expands account id prefixes typed on the command line.
func resolveAccounts(ctx context.Context, a *app.App, in service.TransactionInput) (service.TransactionInput, error) {
	for _, ref := range []*string{&in.AccountID, &in.FromAccountID, &in.ToAccountID} {
		if *ref == "" {
			continue
		}
		acc, err := a.Service.Account.Resolve(ctx, *ref)
		if err != nil {
			return in, err
		}
		*ref = acc.ID
	}
	return in, nil
}

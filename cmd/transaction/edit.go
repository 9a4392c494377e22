package transaction

import (
	"fmt"

	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/ui/prompts"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type EditCommandRunner struct {
	app   *app.App
	flags *entryFlags
}

func NewEditCmd(a *app.App) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction",
		Long: `Replace a transaction. Flags that are not given keep their current value;
switching between --account/--kind and --from/--to changes the transaction type.
Without flags the wizard is shown prefilled with the current values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &EditCommandRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd, args)
		},
	}

	flags.bind(cmd)

	return cmd
}

func (r *EditCommandRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tx, err := r.app.Service.Transaction.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	byID, accounts, err := cmdutil.AccountsByID(ctx, r.app)
	if err != nil {
		return err
	}
	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}

	input := service.ToInput(*tx)
	if r.flags.set(cmd) {
		if input, err = r.flags.apply(cmd, input); err != nil {
			return err
		}
		if input, err = resolveAccounts(ctx, r.app, input); err != nil {
			return err
		}
	} else {
		if !cmdutil.Interactive() {
			return fmt.Errorf("nothing to change, see 'bolso transaction edit --help'")
		}
		pterm.DefaultSection.Printf("Editing transaction %s", tx.ID)
		balances := cmdutil.FormattedBalances(ctx, r.app, accounts, format)
		if input, err = prompts.PromptTransaction(input, accounts, balances); err != nil {
			return err
		}
	}

	updated, err := r.app.Service.Transaction.Update(ctx, tx.ID, input)
	if err != nil {
		return err
	}

	return views.RenderTransactionSaved(*updated, byID, format, "updated")
}

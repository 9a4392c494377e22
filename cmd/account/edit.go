package account

import (
	"fmt"

	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/ui/prompts"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type EditCommandRunner struct {
	app   *app.App
	flags *createFlags
}

func NewEditCmd(a *app.App) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "edit <account-id>",
		Short: "Edit an account's name, type or initial balance",
		Long: `Edit an account. Flags that are not given keep their current value.
Without flags an interactive form prefilled with the current values is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &EditCommandRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd, args)
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "New account name")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "New account type: asset or liability")
	cmd.Flags().StringVarP(&flags.Balance, "initial-balance", "b", "", "New initial balance")

	return cmd
}

func (r *EditCommandRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	acc, err := r.app.Service.Account.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}

	input := service.AccountInput{
		Name:           acc.Name,
		Type:           string(acc.Type),
		InitialBalance: money.FormatInput(acc.InitialBalance),
	}

	changed := false
	if cmd.Flags().Changed("name") {
		input.Name, changed = r.flags.Name, true
	}
	if cmd.Flags().Changed("type") {
		input.Type, changed = r.flags.Type, true
	}
	if cmd.Flags().Changed("initial-balance") {
		input.InitialBalance, changed = r.flags.Balance, true
	}

	if !changed {
		if !cmdutil.Interactive() {
			return fmt.Errorf("nothing to change: pass --name, --type or --initial-balance")
		}
		if input, err = prompts.PromptAccount(input); err != nil {
			return err
		}
	}

	updated, err := r.app.Service.Account.Update(ctx, acc.ID, input)
	if err != nil {
		return err
	}

	return views.RenderAccountSaved(*updated, format, "updated")
}

package account

import (
	"fmt"

	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/ui/prompts"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/spf13/cobra"
)

type createFlags struct {
	Name    string
	Type    string
	Balance string
}

type CreateCommandRunner struct {
	app   *app.App
	flags *createFlags
}

func NewCreateCmd(a *app.App) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Long: `Create an asset (e.g. a bank account or wallet) or a liability
(e.g. a credit card). Without flags an interactive form is shown.

Example: bolso account create -n Bank -t asset -b 1500,00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &CreateCommandRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Account name")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Account type: asset or liability")
	cmd.Flags().StringVarP(&flags.Balance, "initial-balance", "b", "", "Initial balance, e.g. 1500 or 1500,50")

	return cmd
}

func (r *CreateCommandRunner) Run(cmd *cobra.Command) error {
	input := service.AccountInput{
		Name:           r.flags.Name,
		Type:           r.flags.Type,
		InitialBalance: r.flags.Balance,
	}

	hasFlags := cmd.Flags().Changed("name") || cmd.Flags().Changed("type")
	if !hasFlags {
		if !cmdutil.Interactive() {
			return fmt.Errorf("--name and --type are required when not running in a terminal")
		}

		var err error
		if input, err = prompts.PromptAccount(input); err != nil {
			return err
		}
	}

	acc, err := r.app.Service.Account.Create(cmd.Context(), input)
	if err != nil {
		return err
	}

	format, err := cmdutil.Formatter(r.app)
	if err != nil {
		return err
	}
	return views.RenderAccountSaved(*acc, format, "created")
}

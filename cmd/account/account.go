package account

import (
	"github.com/hance08/bolso/internal/app"
	"github.com/spf13/cobra"
)

func NewAccountCmd(a *app.App) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"acc"},
		Short:   "Create, edit, delete accounts and show their balances.",
		Long:    `Create, edit, delete accounts and show their balances.`,
	}

	accountCmd.AddCommand(NewCreateCmd(a))
	accountCmd.AddCommand(NewListCmd(a))
	accountCmd.AddCommand(NewShowCmd(a))
	accountCmd.AddCommand(NewEditCmd(a))
	accountCmd.AddCommand(NewDeleteCmd(a))

	return accountCmd
}

package transaction

import (
	"github.com/hance08/bolso/internal/app"
	"github.com/spf13/cobra"
)

func NewTransactionCmd(a *app.App) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    "Record, list, view, edit and delete income, expenses and transfers.",
	}

	transactionCmd.AddCommand(NewAddCmd(a))
	transactionCmd.AddCommand(NewListCmd(a))
	transactionCmd.AddCommand(NewShowCmd(a))
	transactionCmd.AddCommand(NewEditCmd(a))
	transactionCmd.AddCommand(NewDeleteCmd(a))

	return transactionCmd
}

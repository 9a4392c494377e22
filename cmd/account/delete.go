package account

import (
	"github.com/hance08/bolso/cmd/cmdutil"
	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/ui"
	"github.com/hance08/bolso/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type deleteFlags struct {
	Yes bool
}

type DeleteCommandRunner struct {
	app   *app.App
	flags *deleteFlags
}

func NewDeleteCmd(a *app.App) *cobra.Command {
	flags := &deleteFlags{}

	cmd := &cobra.Command{
		Use:     "delete <account-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an account",
		Long:    `Delete an account. Accounts still referenced by transactions cannot be deleted.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &DeleteCommandRunner{
				app:   a,
				flags: flags,
			}
			return runner.Run(cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (r *DeleteCommandRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	acc, err := r.app.Service.Account.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	if !r.flags.Yes {
		format, err := cmdutil.Formatter(r.app)
		if err != nil {
			return err
		}
		if err := views.RenderAccountDeletePreview(*acc, format); err != nil {
			return err
		}

		confirmed, err := ui.Confirm("Do you want to delete this account?")
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := r.app.Service.Account.Delete(ctx, acc.ID); err != nil {
		return err
	}

	pterm.Success.Printf("Account %s deleted successfully\n", acc.Name)
	ui.Separator()
	return nil
}

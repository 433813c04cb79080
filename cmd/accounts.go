package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/apperr"
	"github.com/derickschaefer/biapi/internal/budgea"
	"github.com/derickschaefer/biapi/internal/util"
)

var accountsCmd = &cobra.Command{
	Use:     "accounts",
	Aliases: []string{"acc"},
	Short:   "Manage bank accounts",
}

var accountsListExpand string

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch accounts",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.ListAccounts(ctx, accountsListExpand)
			},
			counted("Retrieved", "accounts"))
	},
}

var accountsGetExpand string

var accountsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get details of a specific account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch account "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.GetAccount(ctx, args[0], accountsGetExpand)
			},
			fixed("Account details retrieved"))
	},
}

var accountsUpdateFlags struct {
	Name     string
	Disabled string
}

var accountsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Example: `  biapi accounts update 12 --name "Joint account"
  biapi accounts update 12 --disabled true`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := budgea.AccountUpdate{Name: accountsUpdateFlags.Name}
		if cmd.Flags().Changed("disabled") {
			disabled, err := util.ParseBool("disabled", accountsUpdateFlags.Disabled)
			if err != nil {
				return err
			}
			upd.Disabled = &disabled
		}
		if upd.Name == "" && upd.Disabled == nil {
			return apperr.Inputf("nothing to update: pass --name or --disabled")
		}

		return runAPI(cmd, "update account "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.UpdateAccount(ctx, args[0], upd)
			},
			fixed("Account updated"))
	},
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "delete account "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.DeleteAccount(ctx, args[0])
			},
			fixed("Account deleted"))
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsGetCmd)
	accountsCmd.AddCommand(accountsUpdateCmd)
	accountsCmd.AddCommand(accountsDeleteCmd)

	accountsListCmd.Flags().StringVar(&accountsListExpand, "expand", "", "expand related resources (e.g. transactions)")
	accountsGetCmd.Flags().StringVar(&accountsGetExpand, "expand", "", "expand related resources (e.g. transactions)")
	accountsUpdateCmd.Flags().StringVar(&accountsUpdateFlags.Name, "name", "", "new account name")
	accountsUpdateCmd.Flags().StringVar(&accountsUpdateFlags.Disabled, "disabled", "", "disable or enable the account (true/false)")
}

package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/budgea"
	"github.com/derickschaefer/biapi/internal/util"
)

var transfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "Manage bank transfers",
	Long: `Create and execute bank transfers.

A transfer is created first and stays pending until it is executed:
  biapi transfers create --account 12 --recipient 7 --amount 150.00 --label rent
  biapi transfers execute <transfer-id>`,
}

var transfersListPage budgea.Page

var transfersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transfers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch transfers",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.ListTransfers(ctx, transfersListPage)
			},
			counted("Retrieved", "transfers"))
	},
}

var transfersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get details of a specific transfer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch transfer "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.GetTransfer(ctx, args[0])
			},
			fixed("Transfer details retrieved"))
	},
}

var transfersCreateFlags struct {
	Account   string
	Recipient string
	Amount    string
	Label     string
	ExecDate  string
}

var transfersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new transfer (pending until executed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fl := transfersCreateFlags
		amount, err := util.ParseAmount(fl.Amount)
		if err != nil {
			return err
		}
		if err := util.CheckDate("exec-date", fl.ExecDate); err != nil {
			return err
		}
		t := budgea.NewTransfer{
			AccountID:   fl.Account,
			RecipientID: fl.Recipient,
			Amount:      amount,
			Label:       fl.Label,
			ExecDate:    fl.ExecDate,
		}

		return runAPI(cmd, "create transfer",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.CreateTransfer(ctx, t)
			},
			fixed("Transfer created"))
	},
}

var transfersExecutePassword string

var transfersExecuteCmd = &cobra.Command{
	Use:   "execute <id>",
	Short: "Execute a pending transfer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "execute transfer "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.ExecuteTransfer(ctx, args[0], transfersExecutePassword)
			},
			fixed("Transfer executed"))
	},
}

var transfersCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a transfer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "cancel transfer "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.CancelTransfer(ctx, args[0])
			},
			fixed("Transfer cancelled"))
	},
}

func init() {
	rootCmd.AddCommand(transfersCmd)
	transfersCmd.AddCommand(transfersListCmd)
	transfersCmd.AddCommand(transfersGetCmd)
	transfersCmd.AddCommand(transfersCreateCmd)
	transfersCmd.AddCommand(transfersExecuteCmd)
	transfersCmd.AddCommand(transfersCancelCmd)

	transfersListCmd.Flags().IntVar(&transfersListPage.Limit, "limit", 50, "limit number of results")
	transfersListCmd.Flags().IntVar(&transfersListPage.Offset, "offset", 0, "offset for pagination")

	f := transfersCreateCmd.Flags()
	f.StringVar(&transfersCreateFlags.Account, "account", "", "source account ID")
	f.StringVar(&transfersCreateFlags.Recipient, "recipient", "", "recipient ID")
	f.StringVar(&transfersCreateFlags.Amount, "amount", "", "transfer amount")
	f.StringVar(&transfersCreateFlags.Label, "label", "", "transfer label")
	f.StringVar(&transfersCreateFlags.ExecDate, "exec-date", "", "execution date (YYYY-MM-DD)")
	for _, name := range []string{"account", "recipient", "amount", "label"} {
		_ = transfersCreateCmd.MarkFlagRequired(name)
	}

	transfersExecuteCmd.Flags().StringVar(&transfersExecutePassword, "password", "", "password if the bank requires it")
}

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

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "View and manage transactions",
}

var transactionsListFilter budgea.TransactionFilter

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Example: `  biapi transactions list --min-date 2024-01-01 --max-date 2024-03-31
  biapi transactions list --account 12 --limit 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := transactionsListFilter
		if err := util.CheckDate("min-date", f.MinDate); err != nil {
			return err
		}
		if err := util.CheckDate("max-date", f.MaxDate); err != nil {
			return err
		}

		return runAPI(cmd, "fetch transactions",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.ListTransactions(ctx, f)
			},
			counted("Retrieved", "transactions"))
	},
}

var transactionsGetExpand string

var transactionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get details of a specific transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch transaction "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.GetTransaction(ctx, args[0], transactionsGetExpand)
			},
			fixed("Transaction details retrieved"))
	},
}

var transactionsUpdateFlags struct {
	Comment  string
	Category int
}

var transactionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a transaction (comment, category)",
	Example: `  biapi transactions update 345 --comment "team lunch"
  biapi transactions update 345 --category 9998`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd budgea.TransactionUpdate
		if cmd.Flags().Changed("comment") {
			c := transactionsUpdateFlags.Comment
			upd.Comment = &c
		}
		upd.CategoryID = optionalInt(cmd, "category", transactionsUpdateFlags.Category)
		if upd.Comment == nil && upd.CategoryID == nil {
			return apperr.Inputf("nothing to update: pass --comment or --category")
		}

		return runAPI(cmd, "update transaction "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.UpdateTransaction(ctx, args[0], upd)
			},
			fixed("Transaction updated"))
	},
}

var transactionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "delete transaction "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.DeleteTransaction(ctx, args[0])
			},
			fixed("Transaction deleted"))
	},
}

func init() {
	rootCmd.AddCommand(transactionsCmd)
	transactionsCmd.AddCommand(transactionsListCmd)
	transactionsCmd.AddCommand(transactionsGetCmd)
	transactionsCmd.AddCommand(transactionsUpdateCmd)
	transactionsCmd.AddCommand(transactionsDeleteCmd)

	f := transactionsListCmd.Flags()
	f.StringVar(&transactionsListFilter.AccountID, "account", "", "filter by account ID")
	f.StringVar(&transactionsListFilter.MinDate, "min-date", "", "minimum date (YYYY-MM-DD)")
	f.StringVar(&transactionsListFilter.MaxDate, "max-date", "", "maximum date (YYYY-MM-DD)")
	f.IntVar(&transactionsListFilter.Page.Limit, "limit", 100, "limit number of results")
	f.IntVar(&transactionsListFilter.Page.Offset, "offset", 0, "offset for pagination")
	f.StringVar(&transactionsListFilter.Expand, "expand", "", "expand related resources (e.g. category)")

	transactionsGetCmd.Flags().StringVar(&transactionsGetExpand, "expand", "", "expand related resources (e.g. category)")
	transactionsUpdateCmd.Flags().StringVar(&transactionsUpdateFlags.Comment, "comment", "", "transaction comment")
	transactionsUpdateCmd.Flags().IntVar(&transactionsUpdateFlags.Category, "category", 0, "category ID")
}

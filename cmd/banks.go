package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/budgea"
)

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List and query available banks",
}

var banksListFlags struct {
	Page   budgea.Page
	Expand string
}

var banksListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all available banks",
	Example: `  biapi banks list --limit 10 --expand ""`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch banks",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.ListBanks(ctx, banksListFlags.Page, banksListFlags.Expand)
			},
			counted("Retrieved", "banks"))
	},
}

var banksGetExpand string

var banksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get details of a specific bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch bank "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.GetBank(ctx, args[0], banksGetExpand)
			},
			fixed("Bank details retrieved"))
	},
}

var banksSearchLimit int

var banksSearchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search banks by name",
	Example: `  biapi banks search "credit agricole" --limit 5`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, fmt.Sprintf("search banks for %q", args[0]),
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.SearchBanks(ctx, args[0], banksSearchLimit)
			},
			func(data json.RawMessage) string {
				return fmt.Sprintf("Found %d banks", countOf(data, "banks"))
			})
	},
}

func init() {
	rootCmd.AddCommand(banksCmd)
	banksCmd.AddCommand(banksListCmd)
	banksCmd.AddCommand(banksGetCmd)
	banksCmd.AddCommand(banksSearchCmd)

	f := banksListCmd.Flags()
	f.IntVar(&banksListFlags.Page.Limit, "limit", 50, "limit number of results")
	f.IntVar(&banksListFlags.Page.Offset, "offset", 0, "offset for pagination")
	f.StringVar(&banksListFlags.Expand, "expand", "fields", "expand related resources (e.g. fields)")

	banksGetCmd.Flags().StringVar(&banksGetExpand, "expand", "fields", "expand related resources (e.g. fields)")
	banksSearchCmd.Flags().IntVar(&banksSearchLimit, "limit", 20, "limit number of results")
}

package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/budgea"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var usersMeExpand string

var usersMeCmd = &cobra.Command{
	Use:     "me",
	Short:   "Get current user information",
	Example: `  biapi users me --expand connections,accounts`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch user information",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.Me(ctx, usersMeExpand)
			},
			fixed("User information retrieved"))
	},
}

var usersListPage budgea.Page

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users (admin only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch users",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.ListUsers(ctx, usersListPage)
			},
			counted("Retrieved", "users"))
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "delete user",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.DeleteMe(ctx)
			},
			fixed("User deleted"))
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersMeCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersMeCmd.Flags().StringVar(&usersMeExpand, "expand", "", "expand related resources (e.g. connections,accounts)")
	usersListCmd.Flags().IntVar(&usersListPage.Limit, "limit", 50, "limit number of results")
	usersListCmd.Flags().IntVar(&usersListPage.Offset, "offset", 0, "offset for pagination")
}

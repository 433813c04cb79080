package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/util"
)

var connectionsCmd = &cobra.Command{
	Use:     "connections",
	Aliases: []string{"conn"},
	Short:   "Manage bank connections",
}

var connectionsListExpand string

var connectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all connections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch connections",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.ListConnections(ctx, connectionsListExpand)
			},
			counted("Retrieved", "connections"))
	},
}

var connectionsGetExpand string

var connectionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get details of a specific connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "fetch connection "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.GetConnection(ctx, args[0], connectionsGetExpand)
			},
			fixed("Connection details retrieved"))
	},
}

var connectionsCreateFile string

var connectionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new bank connection",
	Long: `Create a new bank connection from a JSON file holding the bank id and
login fields, for example:

  {"id_connector": 40, "login": "12345678", "password": "1234"}`,
	Example: `  biapi connections create -f connection.json`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := util.ReadJSONFile(connectionsCreateFile)
		if err != nil {
			return err
		}
		return runAPI(cmd, "create connection",
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.CreateConnection(ctx, body)
			},
			fixed("Connection created"))
	},
}

var connectionsUpdateFile string

var connectionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := util.ReadJSONFile(connectionsUpdateFile)
		if err != nil {
			return err
		}
		return runAPI(cmd, "update connection "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.UpdateConnection(ctx, args[0], body)
			},
			fixed("Connection updated"))
	},
}

var connectionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "delete connection "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.DeleteConnection(ctx, args[0])
			},
			fixed("Connection deleted"))
	},
}

var connectionsSyncCmd = &cobra.Command{
	Use:   "sync <id>",
	Short: "Trigger synchronization for a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI(cmd, "sync connection "+args[0],
			func(ctx context.Context, deps *app.Deps) (json.RawMessage, error) {
				return deps.Client.SyncConnection(ctx, args[0])
			},
			fixed("Connection sync triggered"))
	},
}

func init() {
	rootCmd.AddCommand(connectionsCmd)
	connectionsCmd.AddCommand(connectionsListCmd)
	connectionsCmd.AddCommand(connectionsGetCmd)
	connectionsCmd.AddCommand(connectionsCreateCmd)
	connectionsCmd.AddCommand(connectionsUpdateCmd)
	connectionsCmd.AddCommand(connectionsDeleteCmd)
	connectionsCmd.AddCommand(connectionsSyncCmd)

	connectionsListCmd.Flags().StringVar(&connectionsListExpand, "expand", "accounts", "expand related resources (e.g. accounts)")
	connectionsGetCmd.Flags().StringVar(&connectionsGetExpand, "expand", "", "expand related resources (e.g. accounts)")

	connectionsCreateCmd.Flags().StringVarP(&connectionsCreateFile, "file", "f", "", "JSON file with connection data")
	_ = connectionsCreateCmd.MarkFlagRequired("file")
	connectionsUpdateCmd.Flags().StringVarP(&connectionsUpdateFile, "file", "f", "", "JSON file with update data")
	_ = connectionsUpdateCmd.MarkFlagRequired("file")
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/auth"
	"github.com/derickschaefer/biapi/internal/render"
	"github.com/derickschaefer/biapi/internal/settings"
	"github.com/derickschaefer/biapi/internal/util"
)

// maskedKeys are truncated by `config list`.
var maskedKeys = map[string]bool{
	settings.KeyAccessToken:  true,
	settings.KeyClientSecret: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Read and write biapi settings stored in the local settings file.

Known keys: accessToken, baseUrl, domain, clientId, clientSecret.
Defaults come from BIAPI_ACCESS_TOKEN, BIAPI_BASE_URL, BIAPI_DOMAIN,
BIAPI_CLIENT_ID and BIAPI_CLIENT_SECRET when the settings file is created.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		all, err := deps.Settings.GetAll()
		if err != nil {
			return err
		}
		for k := range maskedKeys {
			if v, ok := all[k]; ok {
				all[k] = util.Mask(v, 10)
			}
		}

		out := cmd.OutOrStdout()
		if deps.Config.Format == render.FormatJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		}

		fmt.Fprintln(out, cyan("Current configuration:"))
		rows := make([][]string, 0, len(all))
		for _, k := range settings.SortedKeys(all) {
			rows = append(rows, []string{k, all[k]})
		}
		render.KVTable(out, []string{"KEY", "VALUE"}, rows)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		v, ok, err := deps.Settings.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), yellow(fmt.Sprintf("Key %q not found", args[0])))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Example: `  biapi config set accessToken <your-token>
  biapi config set baseUrl https://mydomain.biapi.pro/2.0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Settings.Set(key, val); err != nil {
			return err
		}
		if key == settings.KeyAccessToken && !auth.ValidTokenFormat(val) {
			warn(cmd, "access token looks too short; check that it was copied completely")
		}
		succeed(cmd, deps.Config.Quiet, fmt.Sprintf("Set %s = %s", key, util.Truncate(val, 20)))
		return nil
	},
}

var configDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Settings.Delete(args[0]); err != nil {
			return err
		}
		succeed(cmd, deps.Config.Quiet, "Deleted "+args[0])
		return nil
	},
}

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Settings.Clear(); err != nil {
			return err
		}
		succeed(cmd, deps.Config.Quiet, "Configuration cleared")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		fmt.Fprintln(cmd.OutOrStdout(), deps.Settings.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configDeleteCmd)
	configCmd.AddCommand(configClearCmd)
	configCmd.AddCommand(configPathCmd)
}

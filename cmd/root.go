// Package cmd implements the biapi CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/config"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	Format   string
	Out      string
	Settings string
	Quiet    bool
	Debug    bool
}

// rootCmd is the base command. Running `biapi` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "biapi",
	Short: "biapi: Budgea API CLI for banking aggregation and financial data",
	Long: `biapi is a command-line client for the Budgea (Powens) banking aggregation API:
users, banks, connections, accounts, transactions, transfers and auth tokens.

API documentation: https://budgea.biapi.pro/2.0/doc/

Quick start:
  biapi config set accessToken <your-token>
  biapi banks list --limit 10
  biapi connections list --expand accounts
  biapi accounts list
  biapi transactions list --min-date 2024-01-01 --max-date 2024-12-31
  biapi transfers list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), globalFlags.Debug)
	},
}

// Execute is the entry point called by main.
func Execute() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command tree and returns the process exit code: 0 on
// success, 1 on any error.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, red("Error:"), err)
		return 1
	}
	return 0
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE. Callers must Close it.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load(config.Flags{
		SettingsPath: globalFlags.Settings,
		Format:       globalFlags.Format,
		Out:          globalFlags.Out,
		Quiet:        globalFlags.Quiet,
		Debug:        globalFlags.Debug,
	})
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

// setupLogging routes slog to stderr; --debug enables request tracing.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: pretty|json (default: pretty, env BIAPI_FORMAT)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Settings, "settings", "",
		"settings file path (env BIAPI_SETTINGS_PATH)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress success messages")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log HTTP requests and responses (token never logged)")
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/app"
	"github.com/derickschaefer/biapi/internal/render"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// apiCall issues exactly one request through deps.Client.
type apiCall func(ctx context.Context, deps *app.Deps) (json.RawMessage, error)

// runAPI builds deps, performs call, and prints the result. what names the
// operation in error messages ("fetch accounts: ..."); success builds the
// confirmation line from the response.
func runAPI(cmd *cobra.Command, what string, call apiCall, success func(json.RawMessage) string) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	data, err := call(cmd.Context(), deps)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return emit(cmd, deps, data, success(data))
}

// emit prints the success line on stderr and the rendered data on stdout
// (or --out).
func emit(cmd *cobra.Command, deps *app.Deps, data json.RawMessage, success string) error {
	succeed(cmd, deps.Config.Quiet, success)

	w, closeFn, err := outputWriter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := render.Write(w, data, deps.Config.Format); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}

// outputWriter returns def, or the --out file when one was given.
func outputWriter(def io.Writer) (io.Writer, func() error, error) {
	if globalFlags.Out == "" {
		return def, func() error { return nil }, nil
	}
	f, err := os.Create(globalFlags.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

func succeed(cmd *cobra.Command, quiet bool, msg string) {
	if quiet || msg == "" {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), green("✓"), msg)
}

func warn(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.ErrOrStderr(), yellow("!"), msg)
}

// fixed returns a success builder that ignores the response.
func fixed(msg string) func(json.RawMessage) string {
	return func(json.RawMessage) string { return msg }
}

// counted returns a success builder reporting the length of the named array
// field, e.g. "Retrieved 3 accounts".
func counted(verb, field string) func(json.RawMessage) string {
	return func(data json.RawMessage) string {
		return fmt.Sprintf("%s %d %s", verb, countOf(data, field), field)
	}
}

// countOf returns the length of the array at data[field], or 0.
func countOf(data json.RawMessage, field string) int {
	var obj map[string]json.RawMessage
	if json.Unmarshal(data, &obj) != nil {
		return 0
	}
	var items []json.RawMessage
	if json.Unmarshal(obj[field], &items) != nil {
		return 0
	}
	return len(items)
}

// optionalInt returns a pointer to the flag value only when the user set it.
func optionalInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

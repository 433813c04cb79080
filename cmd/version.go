package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/biapi/internal/budgea"
)

// Version is overwritten for release builds:
//
//	go build -ldflags "-X github.com/derickschaefer/biapi/cmd.Version=v1.1.0"
var Version = "v1.0.0"

// BuildTime is optionally injected alongside Version.
var BuildTime = ""

type versionInfo struct {
	Version   string `json:"version"`
	UserAgent string `json:"user_agent"`
	GoVersion string `json:"go_version"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	BuildTime string `json:"build_time,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the biapi version and build information",
	Long: `Print the biapi version string and build metadata.

Default output is plain text. Use --format json for structured output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := versionInfo{
			Version:   Version,
			UserAgent: budgea.UserAgent,
			GoVersion: runtime.Version(),
			GOOS:      runtime.GOOS,
			GOARCH:    runtime.GOARCH,
			BuildTime: BuildTime,
		}

		out := cmd.OutOrStdout()
		if globalFlags.Format == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}

		fmt.Fprintf(out, "biapi   %s\n", info.Version)
		fmt.Fprintf(out, "agent   %s\n", info.UserAgent)
		fmt.Fprintf(out, "go      %s\n", info.GoVersion)
		fmt.Fprintf(out, "os      %s/%s\n", info.GOOS, info.GOARCH)
		if info.BuildTime != "" {
			fmt.Fprintf(out, "built   %s\n", info.BuildTime)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

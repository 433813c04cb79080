package cmd

// cmd/llm.go: machine-readable context document for LLM onboarding.
//
// Usage:
//   biapi llm                          # start bundle, paste into your LLM session
//   biapi llm --topic toc              # table of contents / two-step handshake
//   biapi llm --topic commands         # command reference built from the command tree
//   biapi llm --topic auth,gotchas     # comma-separated multi-topic
//   biapi llm --topic all              # everything

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/derickschaefer/biapi/internal/apperr"
	"github.com/derickschaefer/biapi/internal/budgea"
	"github.com/derickschaefer/biapi/internal/settings"
)

// ─── Topic registry ───────────────────────────────────────────────────────────

type llmTopic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var topicRegistry = []llmTopic{
	{"start", "Onboarding bundle: commands, auth and gotchas in one document."},
	{"toc", "Topic index. Use for the two-step handshake pattern."},
	{"commands", "Every command with its arguments and flags."},
	{"auth", "Where credentials come from and in which order they are resolved."},
	{"errors", "Error categories and exit codes."},
	{"gotchas", "Sharp edges: transfers, secrets in output, flag formats."},
	{"version", "Build metadata for provenance."},
}

// ─── Command ──────────────────────────────────────────────────────────────────

var llmTopicFlag string

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Emit a machine-readable context document for LLM onboarding",
	Long: `Emit a JSON document describing biapi's commands, credential resolution,
error handling and known gotchas, for pasting into an LLM session.

Two-step handshake:
  1. biapi llm --topic toc
  2. biapi llm --topic <requested topics>`,
	Example: `  biapi llm
  biapi llm --topic commands,errors
  biapi llm --topic all | pbcopy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := parseLLMTopics(llmTopicFlag)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(buildLLMDoc(topics))
	},
}

func init() {
	rootCmd.AddCommand(llmCmd)
	llmCmd.Flags().StringVar(&llmTopicFlag, "topic", "start",
		"topic(s) to emit: start|toc|commands|auth|errors|gotchas|version|all (comma-separated)")
}

// ─── Topic parsing ────────────────────────────────────────────────────────────

func parseLLMTopics(flag string) ([]string, error) {
	if strings.TrimSpace(flag) == "" {
		flag = "start"
	}
	if flag == "all" {
		all := make([]string, len(topicRegistry))
		for i, t := range topicRegistry {
			all[i] = t.Name
		}
		return all, nil
	}
	known := make(map[string]bool, len(topicRegistry))
	for _, t := range topicRegistry {
		known[t.Name] = true
	}
	parts := strings.Split(flag, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !known[p] {
			return nil, apperr.Inputf("unknown topic %q (see biapi llm --topic toc)", p)
		}
		out = append(out, p)
	}
	return out, nil
}

// ─── Document builder ─────────────────────────────────────────────────────────

func buildLLMDoc(topics []string) map[string]any {
	doc := map[string]any{
		"tool":    "biapi",
		"version": Version,
		"llm_note": "Generated by `biapi llm`. It describes this build of the biapi CLI, " +
			"a client for the Budgea (Powens) banking aggregation API.",
	}
	for _, t := range topics {
		switch t {
		case "start":
			doc["start"] = buildStart()
		case "toc":
			doc["toc"] = buildTOC()
		case "commands":
			doc["commands"] = buildCommands(rootCmd)
		case "auth":
			doc["auth"] = buildAuth()
		case "errors":
			doc["errors"] = buildErrors()
		case "gotchas":
			doc["gotchas"] = buildGotchas()
		case "version":
			doc["version_detail"] = map[string]any{
				"version":    Version,
				"build_time": BuildTime,
				"user_agent": budgea.UserAgent,
			}
		}
	}
	return doc
}

func buildStart() map[string]any {
	return map[string]any{
		"suggested_prompt": "I am pasting the output of `biapi llm`. It is the reference for a CLI " +
			"called biapi that calls the Budgea banking API. Every command makes at most one HTTP request. " +
			"Use --format json when you need to parse output. Tell me when you are ready.",
		"commands": buildCommands(rootCmd),
		"auth":     buildAuth(),
		"gotchas":  buildGotchas(),
	}
}

func buildTOC() map[string]any {
	topics := make([]map[string]any, len(topicRegistry))
	for i, t := range topicRegistry {
		topics[i] = map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"fetch":       fmt.Sprintf("biapi llm --topic %s", t.Name),
		}
	}
	return map[string]any{
		"description":  "biapi is a Go CLI for the Budgea banking aggregation API.",
		"topics":       topics,
		"full_context": "biapi llm --topic all",
	}
}

// ─── Commands ─────────────────────────────────────────────────────────────────

type llmFlag struct {
	Name    string `json:"name"`
	Default string `json:"default,omitempty"`
	Usage   string `json:"usage"`
}

type llmCommand struct {
	Path    string    `json:"path"`
	Summary string    `json:"summary"`
	Flags   []llmFlag `json:"flags,omitempty"`
}

// buildCommands lists every runnable command under root, sorted by path.
// Global flags are reported once rather than on each command.
func buildCommands(root *cobra.Command) map[string]any {
	var cmds []llmCommand
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if c.Hidden || c.Name() == "help" {
			return
		}
		if c.Runnable() && c != root {
			cmds = append(cmds, llmCommand{
				Path:    c.UseLine(),
				Summary: c.Short,
				Flags:   collectFlags(c.LocalNonPersistentFlags()),
			})
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(root)
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Path < cmds[j].Path })

	return map[string]any{
		"global_flags": collectFlags(root.PersistentFlags()),
		"commands":     cmds,
	}
}

func collectFlags(fs *pflag.FlagSet) []llmFlag {
	var out []llmFlag
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}
		out = append(out, llmFlag{Name: "--" + f.Name, Default: f.DefValue, Usage: f.Usage})
	})
	return out
}

// ─── Auth / errors / gotchas ──────────────────────────────────────────────────

func buildAuth() map[string]any {
	return map[string]any{
		"resolution_order": []string{
			"value stored with `biapi config set <key> <value>`",
			"default captured from the environment when the settings file was created",
			"environment variable at call time",
		},
		"keys": map[string]string{
			settings.KeyAccessToken:  settings.EnvAccessToken,
			settings.KeyBaseURL:      settings.EnvBaseURL,
			settings.KeyDomain:       settings.EnvDomain,
			settings.KeyClientID:     settings.EnvClientID,
			settings.KeyClientSecret: settings.EnvClientSecret,
		},
		"default_base_url": settings.DefaultBaseURL,
		"header":           "Authorization: Bearer <accessToken>",
		"note":             "Without an access token no request is sent and the command exits 1.",
	}
}

func buildErrors() map[string]any {
	kinds := []apperr.Kind{apperr.KindConfiguration, apperr.KindInput, apperr.KindNetwork, apperr.KindAPI}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return map[string]any{
		"exit_codes": map[string]string{"0": "success", "1": "any error"},
		"kinds":      names,
		"api_error":  "Non-2xx responses print `API error (HTTP <status>): <detail>` taken from the response body.",
		"retries":    "None. A failed request is reported once and never repeated.",
	}
}

func buildGotchas() []map[string]any {
	return []map[string]any{
		{
			"id":     "transfers-two-step",
			"title":  "Transfers are created then executed",
			"detail": "`transfers create` leaves a pending transfer. `transfers execute <id>` validates it. A failed execute does not cancel the transfer; use `transfers cancel <id>`.",
		},
		{
			"id":     "secrets-in-output",
			"title":  "Only config list masks secrets",
			"detail": "`config list` truncates accessToken and clientSecret. `config get` and API responses (e.g. auth init) print tokens in full.",
		},
		{
			"id":     "success-on-stderr",
			"title":  "Success lines go to stderr",
			"detail": "Data is written to stdout (or --out). Confirmation lines such as 'Retrieved 3 accounts' go to stderr; --quiet suppresses them.",
		},
		{
			"id":      "bool-flags",
			"title":   "Some booleans are string flags",
			"detail":  "`auth jwt --expire` and `accounts update --disabled` take the words true or false.",
			"correct": "biapi accounts update 12 --disabled true",
		},
	}
}

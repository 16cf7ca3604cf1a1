package cli

import (
	"github.com/spf13/cobra"
)

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command { return buildRootCmdWith(&Options{LogLevel: "info"}) }

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(o *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "cloudlamma",
		Short:         "Run Ollama locally and expose it through a Cloudflare tunnel",
		Long:          "cloudlamma installs Ollama and cloudflared when missing, starts the local\nmodel server, pulls a default model, and opens a temporary public tunnel to it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnUp(cmd.Context(), o)
		},
	}

	root.PersistentFlags().BoolVarP(&o.AssumeYes, "yes", "y", false, "Answer yes to install prompts")
	root.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "Echo cloudflared output")
	root.PersistentFlags().StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug|info|warn|error (defaults CLOUDLAMMA_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&o.ConfigPath, "config", "", "Path to a config file (yaml, json or toml)")

	up := &cobra.Command{Use: "up", Short: "Start the server and open a tunnel (same as the bare command)", RunE: func(cmd *cobra.Command, args []string) error {
		return fnUp(cmd.Context(), o)
	}}
	check := &cobra.Command{Use: "check", Short: "Report host readiness without changing anything", RunE: func(cmd *cobra.Command, args []string) error {
		return fnCheck(cmd.Context(), o)
	}}
	pull := &cobra.Command{Use: "pull [model]", Short: "Download a model (defaults to the configured one)", Args: cobra.MaximumNArgs(1), Example: "  cloudlamma pull llama3", RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return fnPull(cmd.Context(), o, name)
	}}
	run := &cobra.Command{Use: "run [model]", Short: "Chat with a model interactively, pulling it first if needed", Args: cobra.MaximumNArgs(1), Example: "  cloudlamma run llama3", RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return fnRunModel(cmd.Context(), o, name)
	}}
	models := &cobra.Command{Use: "models", Short: "List installed models", RunE: func(cmd *cobra.Command, args []string) error {
		return fnModels(cmd.Context(), o)
	}}
	domains := &cobra.Command{Use: "domains", Short: "List domains visible to your Cloudflare API token", RunE: func(cmd *cobra.Command, args []string) error {
		return fnDomains(cmd.Context(), o)
	}}

	root.AddCommand(up, check, pull, run, models, domains)
	return root
}

// Package cli provides the command-line interface for glot.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glot/internal/cli/commands"
	"github.com/leapstack-labs/glot/internal/cli/config"
	"github.com/leapstack-labs/glot/pkg/glot"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glot",
		Short: "glot - SQL parser and transpiler",
		Long: `glot parses SQL into a dialect independent syntax tree and renders it
back in any registered dialect.

Settings are read from glot.yaml in the current directory or one of its
parents, then from GLOT_* environment variables, then from flags.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, config.LoggerKey(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: nearest glot.yaml)")
	flags.StringP("read", "r", "", "Dialect the input is written in")
	flags.StringP("write", "w", "", "Dialect to render (default: the read dialect)")
	flags.Bool("pretty", false, "Render multi-line output")
	flags.Bool("identify", false, "Quote every identifier")
	flags.Bool("normalize", false, "Normalize unquoted identifiers to the dialect's case")
	flags.Bool("leading-comma", false, "Put commas at the start of lines when pretty printing")
	flags.String("unsupported", "", "How unsupported constructs are reported (ignore|warn|raise|immediate)")
	flags.Int("max-unsupported", 0, "Maximum number of unsupported messages in an error")
	flags.Int("pad", 0, "Indent width when pretty printing")
	flags.Int("max-text-width", 0, "Line width before pretty output wraps")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "AST encoding for the ast command (yaml|json|msgpack)")

	dialectCompletion := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return glot.Dialects(), cobra.ShellCompDirectiveNoFileComp
	}
	_ = rootCmd.RegisterFlagCompletionFunc("read", dialectCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("write", dialectCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("unsupported", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ignore", "warn", "raise", "immediate"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputYAML, config.OutputJSON, config.OutputMsgpack}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewTranspileCommand())
	rootCmd.AddCommand(commands.NewASTCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewLineageCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger builds the stderr logger. Unsupported warnings are logged at
// warn level, so they show by default; verbose adds debug output.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for glot.

To load completions:

Bash:
  $ source <(glot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ glot completion bash > /etc/bash_completion.d/glot
  # macOS:
  $ glot completion bash > $(brew --prefix)/etc/bash_completion.d/glot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ glot completion zsh > "${fpath[1]}/_glot"

Fish:
  $ glot completion fish | source

PowerShell:
  PS> glot completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

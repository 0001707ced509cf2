package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/gitstrap/internal/logger"
	"github.com/rileyhilliard/gitstrap/internal/ui"
)

// Global flags shared by every command.
var (
	configFlag         string
	nonInteractiveFlag bool
	verboseFlag        bool
	noColorFlag        bool
)

// rootCmd is the base command. Running gitstrap with no subcommand runs the
// full setup sequence, mirroring how the bootstrap script behaves when
// executed directly.
var rootCmd = &cobra.Command{
	Use:   "gitstrap",
	Short: "Bootstrap a machine for git over SSH",
	Long: `gitstrap prepares a fresh machine for working with git repositories.

It installs git and curl, configures your git identity, generates an
Ed25519 SSH key, registers it with the ssh-agent, and verifies SSH
connectivity to your git hosting provider.

Run with no arguments to execute the whole sequence:

  gitstrap

Or run an individual step:

  gitstrap setup     # the full sequence, explicitly
  gitstrap clone     # clone a repository over SSH
  gitstrap doctor    # diagnose the current machine state`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupCommand()
	},
}

// Execute runs the CLI and exits non-zero on any fatal error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// Config returns the value of the global --config flag.
func Config() string {
	return configFlag
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&nonInteractiveFlag, "non-interactive", false, "never prompt; fail when a value is missing")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColorFlag || !ui.ColorsEnabled() {
			ui.DisableColor()
		}
		if verboseFlag {
			os.Setenv("GITSTRAP_DEBUG", "1")
		}
		logger.SetDefault(logger.NewEnvLogger("[cli]"))
	}
}

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/gitstrap/internal/config"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/launcher"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

var launchURLFlag string

// launchCmd downloads the bootstrap script and runs it, forwarding the
// script's exit code. This is the two-stage entry point used by
// `curl | gitstrap launch` style installs.
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Download and run the bootstrap script",
	Long: `Download the bootstrap script to a private temp file and execute it.

The temp file is removed when the script finishes, fails, or the process
is interrupted. The script's exit code becomes gitstrap's exit code.

Examples:
  gitstrap launch
  gitstrap launch --url https://example.com/bootstrap.sh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchCommand(launchURLFlag)
	},
}

func launchCommand(url string) error {
	cfg, err := config.Load(Config())
	if err != nil {
		return err
	}
	if url == "" {
		url = cfg.ScriptURL
	}

	l := launcher.NewLauncher(exec.NewLocal(), logger.Default())
	code, err := l.Launch(url)
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func init() {
	launchCmd.Flags().StringVar(&launchURLFlag, "url", "", "bootstrap script URL (overrides config)")
	rootCmd.AddCommand(launchCmd)
}

package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/gitstrap/internal/config"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/gitid"
	"github.com/rileyhilliard/gitstrap/internal/logger"
	"github.com/rileyhilliard/gitstrap/internal/pkgmgr"
	"github.com/rileyhilliard/gitstrap/internal/platform"
	"github.com/rileyhilliard/gitstrap/internal/sshkey"
	"github.com/rileyhilliard/gitstrap/internal/ui"
	"github.com/rileyhilliard/gitstrap/internal/verify"
)

// setupCmd runs the full machine setup sequence explicitly. The bare
// `gitstrap` invocation does the same thing.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install tools, configure git, and set up SSH access",
	Long: `Run the full setup sequence:

  1. Detect the operating system
  2. Install git and curl via the platform package manager
  3. Configure the global git identity (user.name, user.email)
  4. Generate an Ed25519 SSH key if none exists
  5. Register the key with the ssh-agent
  6. Verify SSH connectivity to the git hosting provider

The sequence is idempotent: existing keys, identity values, and running
agents are reused, never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setupCommand()
	},
}

// setupCommand orchestrates the setup sequence end to end.
func setupCommand() error {
	cfg, err := config.Load(Config())
	if err != nil {
		return err
	}

	runner := exec.NewLocal()
	log := logger.Default()
	prompter := ui.NewPrompter(nonInteractiveFlag)

	// Step 1: platform detection
	detected := platform.Detect()
	headerStyle := lipgloss.NewStyle().Bold(true)
	fmt.Println(headerStyle.Render("gitstrap") + "  " + detected.String())
	fmt.Println()

	// Step 2: required tools
	if err := stepInstallTools(runner, log, detected); err != nil {
		return err
	}

	// Step 3: git identity
	identity, err := gitid.Configure(runner, prompter, log, cfg.DefaultBranch)
	if err != nil {
		return err
	}

	// Steps 4-5: SSH key and agent
	if err := stepSSHKey(runner, log, prompter, cfg, identity, detected); err != nil {
		return err
	}

	// Step 6: connectivity
	if err := stepVerify(runner, log, cfg); err != nil {
		return err
	}

	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	fmt.Println()
	fmt.Printf("%s Setup complete. You can now clone over SSH:\n", successStyle.Render(ui.SymbolSuccess))
	fmt.Printf("  gitstrap clone\n")
	return nil
}

// stepInstallTools ensures git and curl via the platform's package manager.
func stepInstallTools(runner exec.Runner, log logger.Logger, os platform.OS) error {
	spinner := ui.NewSpinner("Checking required tools")
	spinner.Start()

	err := pkgmgr.ForOS(os).EnsureTools(runner, log)
	if err != nil {
		spinner.Fail()
		return err
	}

	spinner.Success()
	return nil
}

// stepSSHKey ensures the key pair exists, shows the public key so the
// operator can register it with the provider, and registers it with the
// agent.
func stepSSHKey(runner exec.Runner, log logger.Logger, prompter *ui.Prompter, cfg *config.Config, identity gitid.Identity, detected platform.OS) error {
	keys := sshkey.NewManager(runner, log)

	if err := sshkey.EnsureDir(cfg.SSHDir()); err != nil {
		return err
	}

	generated := false
	if sshkey.Exists(cfg.KeyPath) {
		log.Info("reusing existing key at %s", cfg.KeyPath)
	} else {
		comment, err := prompter.Input("Key comment",
			"Identifies the key in your provider's key list.",
			identity.Email, identity.Email)
		if err != nil {
			return err
		}

		spinner := ui.NewSpinner("Generating Ed25519 SSH key")
		spinner.Start()
		if err := keys.Generate(cfg.KeyPath, comment); err != nil {
			spinner.Fail()
			return err
		}
		spinner.Success()
		generated = true
	}

	if generated {
		pubKey, err := sshkey.ReadPublicKey(cfg.PublicKeyPath())
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(sshkey.Describe(pubKey))
		fmt.Println()
		fmt.Printf("Add this public key to your %s account before continuing.\n", cfg.GitHost)
		if _, err := prompter.Confirm("Key registered with "+cfg.GitHost+"?",
			"The connectivity check will fail until the key is registered.", true); err != nil {
			return err
		}
	}

	agent := sshkey.NewAgent(runner, log, osGetenv, osSetenv)
	return agent.Ensure(detected.AlwaysEnsureAgent(), cfg.KeyPath)
}

// stepVerify runs the fatal connectivity gate.
func stepVerify(runner exec.Runner, log logger.Logger, cfg *config.Config) error {
	if override := verify.IdentityOverride(cfg.GitHost, cfg.KeyPath); override != "" {
		log.Warn("~/.ssh/config points %s at %s; the connectivity check will use that key", cfg.GitHost, override)
	}

	spinner := ui.NewSpinner("Verifying SSH connectivity to " + cfg.GitHost)
	spinner.Start()

	if err := verify.NewVerifier(runner, log).Check(cfg.GitSSHUser, cfg.GitHost); err != nil {
		spinner.Fail()
		return err
	}

	spinner.Success()
	return nil
}

// Indirection over the process environment, mirrored by tests.
var (
	osGetenv = os.Getenv
	osSetenv = os.Setenv
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/gitstrap/internal/clone"
	"github.com/rileyhilliard/gitstrap/internal/config"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
	"github.com/rileyhilliard/gitstrap/internal/ui"
)

var (
	cloneAccountFlag string
	cloneRepoFlag    string
	cloneDirFlag     string
)

// cloneCmd clones a repository over the SSH remote that setup verified.
var cloneCmd = &cobra.Command{
	Use:   "clone [account/repo]",
	Short: "Clone a repository over SSH",
	Long: `Clone a repository from the configured git host using SSH.

Prompts for the account when not given; the account is remembered in the
global config for next time. The repository name defaults to "dotfiles".

Examples:
  gitstrap clone
  gitstrap clone jane/dotfiles
  gitstrap clone --account jane --repo notes --dir ~/src`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec := ""
		if len(args) == 1 {
			spec = args[0]
		}
		return cloneCommand(spec, cloneAccountFlag, cloneRepoFlag, cloneDirFlag)
	},
}

func cloneCommand(spec, account, repo, dir string) error {
	cfg, err := config.Load(Config())
	if err != nil {
		return err
	}

	if spec != "" {
		account, repo = splitSpec(spec)
	}
	if account == "" {
		account = cfg.Clone.Account
	}
	if repo == "" {
		repo = cfg.Clone.Repo
	}

	prompter := ui.NewPrompter(nonInteractiveFlag)
	account, err = prompter.Input("Account",
		"The "+cfg.GitHost+" account or organization owning the repository.",
		"jane", account)
	if err != nil {
		return err
	}
	repo, err = prompter.Input("Repository",
		"The repository name to clone.",
		config.DefaultCloneRepo, repo)
	if err != nil {
		return err
	}

	log := logger.Default()
	err = clone.Run(exec.NewLocal(), log, clone.Options{
		Host:    cfg.GitHost,
		SSHUser: cfg.GitSSHUser,
		Account: account,
		Repo:    repo,
		Dir:     dir,
	})
	if err != nil {
		return err
	}

	rememberAccount(cfg, account, log)
	return nil
}

// splitSpec parses "account/repo" into its halves; a bare value is treated
// as the account.
func splitSpec(spec string) (account, repo string) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == '/' {
			return spec[:i], spec[i+1:]
		}
	}
	return spec, ""
}

// rememberAccount persists the account to the global config so the next
// clone pre-fills it. Best effort; a read-only home is not an error.
func rememberAccount(cfg *config.Config, account string, log logger.Logger) {
	if account == "" || cfg.Clone.Account == account {
		return
	}

	path, err := config.GlobalPath()
	if err != nil {
		log.Debug("not persisting account: %v", err)
		return
	}

	cfg.Clone.Account = account
	if err := config.Save(cfg, path); err != nil {
		log.Warn("could not persist account to %s: %v", path, err)
		return
	}
	fmt.Printf("Saved account %q to %s\n", account, path)
}

func init() {
	cloneCmd.Flags().StringVar(&cloneAccountFlag, "account", "", "account or organization owning the repository")
	cloneCmd.Flags().StringVar(&cloneRepoFlag, "repo", "", "repository name")
	cloneCmd.Flags().StringVar(&cloneDirFlag, "dir", "", "parent directory for the clone (defaults to the current directory)")
	rootCmd.AddCommand(cloneCmd)
}

// Package clone clones a repository from the configured git host over SSH.
// It is wired to its own subcommand and not part of the default setup path.
package clone

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

// Options selects what to clone and where.
type Options struct {
	Host    string // git hosting provider, e.g. github.com
	SSHUser string // almost always "git"
	Account string
	Repo    string
	Dir     string // parent directory; empty means the current directory
}

// RemoteURL renders the SSH clone URL for the options.
func (o Options) RemoteURL() string {
	return fmt.Sprintf("%s@%s:%s/%s.git", o.SSHUser, o.Host, o.Account, o.Repo)
}

// Run clones the repository into a directory named after it. When a
// same-named directory already exists the clone is skipped with a warning;
// existing checkouts are never touched.
func Run(r exec.Runner, log logger.Logger, opts Options) error {
	if opts.Account == "" || opts.Repo == "" {
		return errors.New(errors.ErrConfig,
			"Account and repository name are both required",
			"")
	}

	parent := opts.Dir
	if parent == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Cannot determine current directory",
				"")
		}
		parent = cwd
	}

	target := filepath.Join(parent, opts.Repo)
	if _, err := os.Stat(target); err == nil {
		log.Warn("directory %s already exists, skipping clone", target)
		return nil
	}

	url := opts.RemoteURL()
	log.Info("cloning %s", url)

	code, err := r.Run("git", "clone", url, target)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.New(errors.ErrGit,
			fmt.Sprintf("git clone of %s failed with status %d", url, code),
			"Check the account and repository names, and that your key has access.")
	}

	return nil
}

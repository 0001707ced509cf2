// Package gitid configures the global git identity: user name, email, and
// the default initial branch name.
package gitid

import (
	"strings"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

// Prompter collects a value from the operator when a config entry is empty.
type Prompter interface {
	Input(title, description, placeholder, initial string) (string, error)
}

// Identity is the resolved global git identity after Configure runs.
type Identity struct {
	Name  string
	Email string
}

// Configure ensures user.name and user.email are set globally, prompting for
// any empty value, and forces init.defaultBranch to defaultBranch.
//
// Idempotent: existing non-empty values are never prompted for or rewritten.
func Configure(r exec.Runner, p Prompter, log logger.Logger, defaultBranch string) (Identity, error) {
	var id Identity

	name, err := ensureValue(r, p, "user.name",
		"Your full name", "Used for git commit authorship", "Ada Lovelace")
	if err != nil {
		return id, err
	}
	id.Name = name

	email, err := ensureValue(r, p, "user.email",
		"Your email address", "Used for git commit authorship", "ada@example.com")
	if err != nil {
		return id, err
	}
	id.Email = email

	// The default branch is forced, not prompted; setting it is idempotent.
	if err := setGlobal(r, "init.defaultBranch", defaultBranch); err != nil {
		return id, err
	}
	log.Debug("git identity: name=%q email=%q defaultBranch=%q", id.Name, id.Email, defaultBranch)

	return id, nil
}

// ReadGlobal returns the global git config value for key, or empty when unset.
func ReadGlobal(r exec.Runner, key string) (string, error) {
	res, err := r.Output("git", "config", "--global", key)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		// git exits 1 for an unset key.
		return "", nil
	}
	return strings.TrimSpace(res.Output), nil
}

// ensureValue reads a global config key and prompts-and-writes when empty.
func ensureValue(r exec.Runner, p Prompter, key, title, description, placeholder string) (string, error) {
	current, err := ReadGlobal(r, key)
	if err != nil {
		return "", err
	}
	if current != "" {
		return current, nil
	}

	value, err := p.Input(title, description, placeholder, "")
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New(errors.ErrGit,
			"No value entered for "+key,
			"Set it manually: git config --global "+key+" <value>")
	}

	if err := setGlobal(r, key, value); err != nil {
		return "", err
	}
	return value, nil
}

func setGlobal(r exec.Runner, key, value string) error {
	res, err := r.Output("git", "config", "--global", key, value)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errors.New(errors.ErrGit,
			"Failed to write git config "+key,
			"Check that ~/.gitconfig is writable: "+res.Output)
	}
	return nil
}

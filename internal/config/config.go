// Package config loads and persists gitstrap's optional configuration file.
//
// All settings have working defaults; a missing config file is not an error.
package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".gitstrap.yaml"
	// GlobalConfigDir is the directory for global config, under $HOME.
	GlobalConfigDir = ".config/gitstrap"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Defaults applied when no config file overrides them.
const (
	DefaultScriptURL   = "https://raw.githubusercontent.com/rileyhilliard/gitstrap/main/scripts/bootstrap.sh"
	DefaultGitHost     = "github.com"
	DefaultGitSSHUser  = "git"
	DefaultBranch      = "main"
	DefaultCloneRepo   = "dotfiles"
	DefaultKeyFileName = "id_ed25519"
)

// CloneDefaults seeds the prompts of the repository cloner.
type CloneDefaults struct {
	Account string `yaml:"account,omitempty" mapstructure:"account"`
	Repo    string `yaml:"repo,omitempty" mapstructure:"repo"`
}

// Config holds every tunable the setup sequence reads.
type Config struct {
	// ScriptURL is the bootstrap payload fetched by `gitstrap launch`.
	ScriptURL string `yaml:"script_url,omitempty" mapstructure:"script_url"`

	// GitHost is the hosting provider used for key registration and the
	// connectivity check (`ssh -T git@<host>`).
	GitHost string `yaml:"git_host,omitempty" mapstructure:"git_host"`

	// GitSSHUser is the SSH user for the hosting provider, almost always "git".
	GitSSHUser string `yaml:"git_ssh_user,omitempty" mapstructure:"git_ssh_user"`

	// KeyPath is the private key location. Empty means ~/.ssh/id_ed25519.
	KeyPath string `yaml:"key_path,omitempty" mapstructure:"key_path"`

	// DefaultBranch is forced into git's global init.defaultBranch.
	DefaultBranch string `yaml:"default_branch,omitempty" mapstructure:"default_branch"`

	// Clone seeds the account/repo prompts of `gitstrap clone`.
	Clone CloneDefaults `yaml:"clone,omitempty" mapstructure:"clone"`
}

// Default returns a config populated with every built-in default.
func Default() *Config {
	return &Config{
		ScriptURL:     DefaultScriptURL,
		GitHost:       DefaultGitHost,
		GitSSHUser:    DefaultGitSSHUser,
		KeyPath:       defaultKeyPath(),
		DefaultBranch: DefaultBranch,
		Clone: CloneDefaults{
			Repo: DefaultCloneRepo,
		},
	}
}

// applyDefaults fills any field the config file left empty.
func (c *Config) applyDefaults() {
	d := Default()
	if c.ScriptURL == "" {
		c.ScriptURL = d.ScriptURL
	}
	if c.GitHost == "" {
		c.GitHost = d.GitHost
	}
	if c.GitSSHUser == "" {
		c.GitSSHUser = d.GitSSHUser
	}
	if c.KeyPath == "" {
		c.KeyPath = d.KeyPath
	}
	if c.DefaultBranch == "" {
		c.DefaultBranch = d.DefaultBranch
	}
	if c.Clone.Repo == "" {
		c.Clone.Repo = d.Clone.Repo
	}
}

// SSHDir returns the directory holding the key pair.
func (c *Config) SSHDir() string {
	return filepath.Dir(c.KeyPath)
}

// PublicKeyPath returns the public half of the configured key pair.
func (c *Config) PublicKeyPath() string {
	return c.KeyPath + ".pub"
}

// defaultKeyPath returns ~/.ssh/id_ed25519, falling back to a relative path
// when the home directory cannot be determined.
func defaultKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ssh", DefaultKeyFileName)
	}
	return filepath.Join(home, ".ssh", DefaultKeyFileName)
}
